// Package xmladapter converts an EPCIS 2.0 XML document's EventList into
// the normalized canontree.Node shape the serializer walks (spec 4.C,
// "XML adapter"). Grounded on the reference implementation's
// xml_to_py.py for the extension-stripping and document-order
// preservation behavior, reimplemented against github.com/beevik/etree
// rather than hand-rolled SAX/DOM walking.
package xmladapter

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/trackvision/epcis-hashgen/canonerr"
	"github.com/trackvision/epcis-hashgen/canontree"
	"github.com/trackvision/epcis-hashgen/logging"
)

// shortPrefixes expands known short-name prefixes in attribute and text
// values at parse time (spec 4.C, "Short prefix expansion").
var shortPrefixes = []struct{ prefix, expansion string }{
	{"gs1:", "https://gs1.org/voc/"},
	{"cbv:", "https://ref.gs1.org/cbv/"},
}

func expandShortPrefix(value string) string {
	for _, p := range shortPrefixes {
		if strings.HasPrefix(value, p.prefix) {
			return p.expansion + strings.TrimPrefix(value, p.prefix)
		}
	}
	return value
}

// pairListWrappers maps the XML list-wrapper element name
// (bizTransactionList/sourceList/destinationList) to the singular item
// element name it contains (spec 4.C, "attribute-bearing list items";
// spec 4.D.2). Each item becomes its own pair node named after the
// wrapper, flattened as a sibling rather than nested under it, matching
// the flat shape jsonadapter.buildPairNode produces for the same input.
var pairListWrappers = map[string]string{
	"bizTransactionList": "bizTransaction",
	"sourceList":         "source",
	"destinationList":    "destination",
}

// Event is one parsed EPCIS event: Type is the bare element name
// (ObjectEvent, AggregationEvent, ...); Node carries its children.
type Event struct {
	Type string
	Node *canontree.Node
}

// removeExtensionWrappers strips the presentation-only <extension> and
// <baseExtension> wrapper tags, ported verbatim from
// xml_to_py.removeExtensionTags.
func removeExtensionWrappers(data string) string {
	r := strings.NewReplacer(
		"<extension>", "",
		"</extension>", "",
		"<baseExtension>", "",
		"</baseExtension>", "",
	)
	return r.Replace(data)
}

// ParseEvents reads an EPCIS XML document and returns its events in
// document order (spec 4.C: "the event list itself preserves document
// order").
func ParseEvents(xmlBytes []byte) ([]Event, error) {
	cleaned := removeExtensionWrappers(string(xmlBytes))

	doc := etree.NewDocument()
	if err := doc.ReadFromString(cleaned); err != nil {
		return nil, canonerr.New(canonerr.UnparseableDocument, err)
	}

	eventList := doc.FindElement("//EventList")
	if eventList == nil {
		return nil, canonerr.New(canonerr.UnparseableDocument, fmt.Errorf("xmladapter: no EventList element found"))
	}

	defaultNS := namespaceURI(eventList, eventList.Space)

	var events []Event
	for _, child := range eventList.ChildElements() {
		node, err := convertElement(child, defaultNS)
		if err != nil {
			logging.Warn("xmladapter: skipping unparseable event", zap.String("type", child.Tag), zap.Error(err))
			continue
		}
		events = append(events, Event{Type: child.Tag, Node: node})
	}
	return events, nil
}

// convertElement walks one XML element into a canontree.Node, per the
// conversion xml_to_py.py performs: attributes and children both become
// child nodes, text is kept only on elements with no children.
func convertElement(e *etree.Element, defaultNS string) (*canontree.Node, error) {
	var children []*canontree.Node
	for _, attr := range e.Attr {
		if isNamespaceDecl(attr) {
			continue
		}
		children = append(children, canontree.Leaf(attr.Key, expandShortPrefix(attr.Value)))
	}
	rest, err := convertChildElements(e.ChildElements(), defaultNS)
	if err != nil {
		return nil, err
	}
	children = append(children, rest...)

	name := elementName(e, defaultNS)
	if len(children) == 0 {
		return canontree.Leaf(name, expandShortPrefix(strings.TrimSpace(e.Text()))), nil
	}
	return canontree.Branch(name, children...), nil
}

// convertChildElements converts sibling XML elements into their
// canontree representation. A bizTransactionList/sourceList/
// destinationList wrapper is flattened into one pair node per item
// instead of nesting the items under an extra wrapper branch, matching
// the flat shape jsonadapter.buildPairNode builds for the same list
// (spec 4.C, 4.D.2).
func convertChildElements(elements []*etree.Element, defaultNS string) ([]*canontree.Node, error) {
	var out []*canontree.Node
	for _, e := range elements {
		itemTag, isWrapper := pairListWrappers[e.Tag]
		if !isWrapper {
			child, err := convertElement(e, defaultNS)
			if err != nil {
				return nil, err
			}
			out = append(out, child)
			continue
		}
		for _, item := range e.ChildElements() {
			if item.Tag != itemTag {
				continue
			}
			if pair, ok := convertPairElement(e.Tag, item, defaultNS); ok {
				out = append(out, pair)
			}
		}
	}
	return out, nil
}

// convertPairElement builds the two-child (type, value) pair node for
// one bizTransaction/source/destination item under its list wrapper
// (spec 4.C, 4.D.2). listName is the wrapper's tag, used as the pair
// node's own name so the serializer's paired-list lookup
// (schema.IsPairedList) matches it.
func convertPairElement(listName string, e *etree.Element, defaultNS string) (*canontree.Node, bool) {
	if len(e.ChildElements()) != 0 {
		return nil, false
	}
	typeAttr := e.SelectAttr("type")
	if typeAttr == nil {
		return nil, false
	}
	valueName := elementName(e, defaultNS)
	typeNode := canontree.Leaf("type", expandShortPrefix(typeAttr.Value))
	typeNode.Paired = true
	valueNode := canontree.Leaf(valueName, expandShortPrefix(strings.TrimSpace(e.Text())))
	valueNode.Paired = true
	return canontree.Branch(listName, typeNode, valueNode), true
}

func isNamespaceDecl(attr etree.Attr) bool {
	return attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns")
}

// elementName returns the element's bare local name when it belongs to
// the document's default EPCIS namespace, or a "{uri}local" qualified
// name otherwise (spec 4.C: "Element-qualified names use {uri}local
// form"). Keeping standard elements bare lets the schema package match
// them by name; qualifying everything else is what lets generic
// extensions survive serialization without colliding with schema names.
func elementName(e *etree.Element, defaultNS string) string {
	uri := namespaceURI(e, e.Space)
	if uri == "" || uri == defaultNS {
		return e.Tag
	}
	return "{" + uri + "}" + e.Tag
}

// namespaceURI resolves prefix (e.Space; "" means the default namespace)
// by walking up the tree looking for the declaring xmlns attribute, the
// way xml.etree.ElementTree resolves qualified names in the Python
// reference implementation.
func namespaceURI(e *etree.Element, prefix string) string {
	for el := e; el != nil; el = el.Parent() {
		for _, a := range el.Attr {
			if prefix == "" {
				if a.Space == "" && a.Key == "xmlns" {
					return a.Value
				}
			} else if a.Space == "xmlns" && a.Key == prefix {
				return a.Value
			}
		}
	}
	return ""
}
