// Package canontree defines the normalized tree shared by the XML and
// JSON-LD input adapters (spec section 3). A Node is either a leaf
// carrying Value, or a branch carrying Children -- never both.
package canontree

// Node is the single in-memory shape both input adapters produce.
// Name is either a local element name ("eventTime", "epc") or a
// fully-qualified extension name in "{namespace-uri}localName" form.
type Node struct {
	Name     string
	Value    string
	Children []*Node

	// Paired marks a node as one half of a (type, value) pair under
	// bizTransactionList/sourceList/destinationList. Pair nodes are
	// emitted by the serializer in declared order, never sorted.
	Paired bool
}

// Leaf builds a childless node carrying a text value.
func Leaf(name, value string) *Node {
	return &Node{Name: name, Value: value}
}

// Branch builds a node with children and no text value.
func Branch(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// IsLeaf reports whether n carries a value rather than children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Clone deep-copies a node and its descendants. The serializer does not
// modify the tree it walks, so a parsed tree can be serialized again
// without cloning it first.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{Name: n.Name, Value: n.Value, Paired: n.Paired}
	if len(n.Children) > 0 {
		clone.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			clone.Children[i] = c.Clone()
		}
	}
	return clone
}

// ChildrenNamed returns the direct children whose Name equals name, in
// the order they currently appear.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// RemoveChildren deletes every direct child present in toRemove (compared
// by pointer identity), preserving the relative order of the rest.
func (n *Node) RemoveChildren(toRemove []*Node) {
	if len(toRemove) == 0 {
		return
	}
	dead := make(map[*Node]bool, len(toRemove))
	for _, c := range toRemove {
		dead[c] = true
	}
	kept := n.Children[:0]
	for _, c := range n.Children {
		if !dead[c] {
			kept = append(kept, c)
		}
	}
	n.Children = kept
}
