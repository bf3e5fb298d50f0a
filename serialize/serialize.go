// Package serialize implements the canonical serializer (spec component
// E): it walks a reconciled canontree.Node tree guided by the
// schema package's property-order table, sorting repeated siblings
// lexicographically, passing user extensions through generically, and
// producing the pre-hash string that component G hashes.
package serialize

import (
	"sort"
	"strings"

	"github.com/trackvision/epcis-hashgen/canontree"
	"github.com/trackvision/epcis-hashgen/schema"
	"github.com/trackvision/epcis-hashgen/value"
)

// alwaysIgnored elements never contribute to the hash, at any nesting
// level they might appear (spec 4.E.3).
var alwaysIgnored = map[string]bool{
	"recordTime": true,
	"eventID":    true,
}

// topOnlyIgnored elements are dropped only at the top level of an event.
var topOnlyIgnored = map[string]bool{
	"type":             true,
	"errorDeclaration": true,
}

// Event produces the full pre-hash string for one event:
// "eventType=" + name + JOIN + ordered-part + JOIN + extension-part
// (spec 4.E, "Top-level framing").
func Event(eventType string, children []*canontree.Node, join string) string {
	ordered, generic := computeLevel(children, schema.EventOrder, join, true)
	return "eventType=" + eventType + join + ordered + join + generic
}

// computeLevel runs one pass of the algorithm in spec 4.E.1-2 over
// children: schema-ordered pieces first (siblings of the same name
// sorted, except paired lists which stay in document order), then
// whatever schema didn't claim is treated as generic extension content.
func computeLevel(children []*canontree.Node, order []schema.Entry, join string, topLevel bool) (orderedJoined, genericJoined string) {
	remaining := stripIgnored(children, topLevel)

	var orderedPieces []string
	for _, entry := range order {
		var matches []*canontree.Node
		matches, remaining = extractNamed(remaining, entry.Name)
		if len(matches) == 0 {
			continue
		}
		if entry.Paired || schema.IsPairedList(entry.Name) {
			for _, m := range matches {
				if p := pairPiece(m, entry.Children, join); p != "" {
					orderedPieces = append(orderedPieces, p)
				}
			}
			continue
		}
		var group []string
		for _, m := range matches {
			if p := piece(entry.Name, m, entry.Children, join); p != "" {
				group = append(group, p)
			}
		}
		sort.Strings(group)
		orderedPieces = append(orderedPieces, group...)
	}

	return strings.Join(orderedPieces, join), strings.Join(genericPieces(remaining, join), join)
}

// piece builds one schema-entry's pre-hash fragment (spec 4.E.1.b):
// name, optionally "=" + canonicalized value, optionally a recursively
// serialized grandchild string. Both parts absent means the piece is
// empty and contributes nothing.
func piece(name string, node *canontree.Node, childOrder []schema.Entry, join string) string {
	v := ""
	if node.IsLeaf() {
		v = canonicalLeafValue(name, node.Value)
	}
	g := ""
	if !node.IsLeaf() {
		ordered, generic := computeLevel(node.Children, childOrder, join, false)
		g = strings.Join(nonEmpty(ordered, generic), join)
	}
	if v == "" && g == "" {
		return ""
	}
	out := name
	if v != "" {
		out += "=" + v
	}
	return out + g
}

// pairPiece builds the pre-hash fragment for one bizTransaction/source/
// destination list item: its two children (attribute then value, as the
// adapter built them) emitted in declared document order, never sorted
// (spec 4.E.1.d). childOrder is the pair entry's own schema children
// (e.g. bizTransactionList's [type, bizTransaction]), carried down so a
// non-leaf pair child still recurses against its declared order instead
// of falling through to alphabetically-sorted generic handling.
func pairPiece(node *canontree.Node, childOrder []schema.Entry, join string) string {
	var pieces []string
	for _, c := range node.Children {
		if p := piece(c.Name, c, entryChildren(childOrder, c.Name), join); p != "" {
			pieces = append(pieces, p)
		}
	}
	return strings.Join(pieces, join)
}

// entryChildren finds name's own declared sub-schema within entries.
func entryChildren(entries []schema.Entry, name string) []schema.Entry {
	for _, e := range entries {
		if e.Name == name {
			return e.Children
		}
	}
	return nil
}

// genericPieces serializes whatever the schema pass left behind: user
// extensions, sorted lexicographically like any other sibling group
// since no declared order applies to them (spec 4.E.2).
func genericPieces(remaining []*canontree.Node, join string) []string {
	var pieces []string
	for _, n := range remaining {
		if p := piece(n.Name, n, nil, join); p != "" {
			pieces = append(pieces, p)
		}
	}
	sort.Strings(pieces)
	return pieces
}

func canonicalLeafValue(name, raw string) string {
	if value.IsTimestampElement(name) {
		if canon, ok := value.CanonicalizeTimestamp(raw); ok {
			return canon
		}
		return raw
	}
	return value.Canonicalize(raw)
}

func stripIgnored(children []*canontree.Node, topLevel bool) []*canontree.Node {
	out := make([]*canontree.Node, 0, len(children))
	for _, c := range children {
		if alwaysIgnored[c.Name] {
			continue
		}
		if topLevel && topOnlyIgnored[c.Name] {
			continue
		}
		out = append(out, c)
	}
	return out
}

func extractNamed(children []*canontree.Node, name string) (matches, rest []*canontree.Node) {
	for _, c := range children {
		if c.Name == name {
			matches = append(matches, c)
		} else {
			rest = append(rest, c)
		}
	}
	return matches, rest
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
