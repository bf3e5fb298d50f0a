// Package jsonadapter converts an EPCIS 2.0 JSON-LD document's eventList
// into the same normalized canontree.Node shape xmladapter produces
// (spec 4.C "JSON-LD adapter", spec 4.D "Structural Reconciler"). Ported
// from the reference implementation's json_to_py.py and
// json_xml_model_mismatch_correction.py, merged into a single pass: Go's
// static typing makes reconciling a field's shape while we still know
// its original key simpler than replaying a second correction pass over
// an already-built tree.
package jsonadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/trackvision/epcis-hashgen/canonerr"
	"github.com/trackvision/epcis-hashgen/canontree"
	"github.com/trackvision/epcis-hashgen/ldcontext"
	"github.com/trackvision/epcis-hashgen/logging"
)

// Event is one parsed EPCIS event: Type is the event's declared type
// (from "type" or the legacy "isA"); Node carries its children.
type Event struct {
	Type string
	Node *canontree.Node
}

// pairListKeys are the JSON-LD list keys whose array items are
// (type, value) pairs, not plain values (spec 4.D.2).
var pairListKeys = map[string]bool{
	"sourceList":         true,
	"destinationList":    true,
	"bizTransactionList": true,
}

// renameTo corrects inconsistent child names JSON omits relative to XML
// (spec 4.D.4): inputEPC/outputEPC -> epc,
// inputQuantity/outputQuantity/childQuantity -> quantityElement.
var renameTo = map[string]string{
	"inputEPC":      "epc",
	"outputEPC":     "epc",
	"inputQuantity": "quantityElement",
	"outputQuantity": "quantityElement",
	"childQuantity":  "quantityElement",
}

// promotedIDFields carry their identifier as a bare JSON string where
// XML nests it under a child "id" (spec 4.D.3).
var promotedIDFields = map[string]bool{
	"readPoint":   true,
	"bizLocation": true,
}

// bareVocabFields lists the element names whose JSON-LD value may be a
// bare CBV shorthand term (spec 4.C: `bizStep: "shipping"` is shorthand
// for the full BizStep URL) needing expansion before the generic value
// canonicalizer ever sees it.
var bareVocabFields = map[string]string{
	"bizStep":     "https://ref.gs1.org/cbv/BizStep-",
	"disposition": "https://ref.gs1.org/cbv/Disp-",
}

func expandBareVocab(name, val string) string {
	prefix, ok := bareVocabFields[name]
	if !ok || strings.ContainsAny(val, ":/") {
		return val
	}
	return prefix + val
}

// ParseEvents reads an EPCIS JSON-LD document and returns its events in
// document order. loader resolves @context URLs (spec 4.H); it may be
// nil, in which case only inline @context objects contribute prefixes.
func ParseEvents(ctx context.Context, jsonBytes []byte, loader ldcontext.Loader) ([]Event, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return nil, canonerr.New(canonerr.UnparseableDocument, err)
	}

	prefixes, err := collectNamespaces(ctx, doc["@context"], loader)
	if err != nil {
		return nil, err
	}

	body, _ := doc["epcisBody"].(map[string]interface{})
	if body == nil {
		return nil, canonerr.New(canonerr.UnparseableDocument, fmt.Errorf("jsonadapter: missing epcisBody"))
	}
	rawEvents, _ := body["eventList"].([]interface{})
	if rawEvents == nil {
		return nil, canonerr.New(canonerr.UnparseableDocument, fmt.Errorf("jsonadapter: missing epcisBody.eventList"))
	}

	events := make([]Event, 0, len(rawEvents))
	for i, raw := range rawEvents {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			logging.Warn("jsonadapter: skipping unparseable event", zap.Int("index", i), zap.Error(fmt.Errorf("event is not a JSON object")))
			continue
		}
		eventType := eventTypeOf(obj)
		if eventType == "" {
			logging.Warn("jsonadapter: skipping unparseable event", zap.Int("index", i), zap.Error(fmt.Errorf("event missing type/isA")))
			continue
		}
		children := convertObject(obj, prefixes)
		events = append(events, Event{Type: eventType, Node: canontree.Branch(eventType, children...)})
	}
	return events, nil
}

func eventTypeOf(obj map[string]interface{}) string {
	if t, ok := obj["type"].(string); ok {
		return t
	}
	if t, ok := obj["isA"].(string); ok {
		return t
	}
	return ""
}

// collectNamespaces builds the short-name -> IRI prefix map from
// @context (spec 4.C: "builds a prefix map"). Inline objects contribute
// directly; string URLs are resolved through loader when one is given.
func collectNamespaces(ctx context.Context, rawContext interface{}, loader ldcontext.Loader) (map[string]string, error) {
	prefixes := map[string]string{}
	var entries []interface{}
	switch v := rawContext.(type) {
	case nil:
		return prefixes, nil
	case []interface{}:
		entries = v
	default:
		entries = []interface{}{v}
	}
	for _, entry := range entries {
		switch e := entry.(type) {
		case map[string]interface{}:
			for k, v := range e {
				if iri, ok := v.(string); ok {
					prefixes[k] = iri
				}
			}
		case string:
			if loader == nil {
				continue
			}
			doc, err := loader.Load(ctx, e)
			if err != nil {
				return nil, canonerr.New(canonerr.ContextUnavailable, err)
			}
			for k, v := range doc.Context {
				if iri, ok := v.(string); ok {
					prefixes[k] = iri
				}
			}
		}
	}
	return prefixes, nil
}

// resolveName expands a "prefix:local" key to "{iri}local" when prefix is
// known, leaving ordinary EPCIS field names untouched.
func resolveName(key string, prefixes map[string]string) string {
	idx := strings.IndexByte(key, ':')
	if idx < 0 {
		return key
	}
	prefix, local := key[:idx], key[idx+1:]
	if iri, ok := prefixes[prefix]; ok {
		return "{" + iri + "}" + local
	}
	return key
}

func renamed(name string) string {
	if r, ok := renameTo[name]; ok {
		return r
	}
	return name
}

// convertObject walks one JSON object's fields into sibling nodes,
// skipping the identity fields the caller already consumed.
func convertObject(obj map[string]interface{}, prefixes map[string]string) []*canontree.Node {
	var out []*canontree.Node
	for key, val := range obj {
		if key == "type" || key == "isA" || key == "#text" || strings.HasPrefix(key, "@") {
			continue
		}
		out = append(out, fieldToNodes(key, val, prefixes)...)
	}
	return out
}

// fieldToNodes converts one JSON key/value pair into the node(s) it
// contributes to its parent, applying the structural reconciliation
// rules of spec 4.D along the way.
func fieldToNodes(key string, val interface{}, prefixes map[string]string) []*canontree.Node {
	if key == "childEPCs" {
		if arr, ok := val.([]interface{}); ok {
			epcs := make([]*canontree.Node, 0, len(arr))
			for _, item := range arr {
				epcs = append(epcs, canontree.Leaf("epc", fmt.Sprint(item)))
			}
			return []*canontree.Node{canontree.Branch("childEPCs", epcs...)}
		}
	}

	if pairListKeys[key] {
		arr, _ := val.([]interface{})
		out := make([]*canontree.Node, 0, len(arr))
		for _, item := range arr {
			if itemObj, ok := item.(map[string]interface{}); ok {
				out = append(out, buildPairNode(key, itemObj))
			}
		}
		return out
	}

	if strings.HasSuffix(key, "List") {
		itemName := renamed(strings.TrimSuffix(key, "List"))
		if itemName == "quantity" {
			itemName = "quantityElement"
		}
		arr, _ := val.([]interface{})
		items := make([]*canontree.Node, 0, len(arr))
		for _, item := range arr {
			items = append(items, buildLeafOrObject(itemName, item, prefixes))
		}
		return []*canontree.Node{canontree.Branch(key, items...)}
	}

	name := resolveName(key, prefixes)

	switch v := val.(type) {
	case map[string]interface{}:
		if key == "quantity" {
			name = "quantityElement"
		} else {
			name = renamed(name)
		}
		return []*canontree.Node{canontree.Branch(name, convertObject(v, prefixes)...)}
	case []interface{}:
		out := make([]*canontree.Node, 0, len(v))
		for _, item := range v {
			out = append(out, buildLeafOrObject(name, item, prefixes))
		}
		return out
	default:
		if promotedIDFields[key] {
			return []*canontree.Node{canontree.Branch(name, canontree.Leaf("id", fmt.Sprint(v)))}
		}
		return []*canontree.Node{canontree.Leaf(name, expandBareVocab(name, fmt.Sprint(v)))}
	}
}

func buildLeafOrObject(name string, item interface{}, prefixes map[string]string) *canontree.Node {
	if obj, ok := item.(map[string]interface{}); ok {
		return canontree.Branch(name, convertObject(obj, prefixes)...)
	}
	return canontree.Leaf(name, expandBareVocab(name, fmt.Sprint(item)))
}

// buildPairNode builds the (type, value) pair node for one
// sourceList/destinationList/bizTransactionList array item
// (spec 4.D.2). The value's field name inside the item is the list name
// with "List" stripped -- "source", "destination", "bizTransaction".
func buildPairNode(listKey string, item map[string]interface{}) *canontree.Node {
	valueKey := strings.TrimSuffix(listKey, "List")
	typeVal, _ := item["type"].(string)
	typeNode := canontree.Leaf("type", typeVal)
	typeNode.Paired = true
	valueNode := canontree.Leaf(valueKey, fmt.Sprint(item[valueKey]))
	valueNode.Paired = true
	return canontree.Branch(listKey, typeNode, valueNode)
}
