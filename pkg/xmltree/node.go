// Package xmltree parses XML documents into immutable element trees and
// renders them back as deterministic, whitespace-stable text. The trees
// feed the structural and schema differs; the rendered line sequences
// feed the textual differ. Nodes are never mutated after parsing.
package xmltree

// Attr is one attribute of an element. Attribute order is preserved as
// written in the document and is treated as significant.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a parsed document
type Node struct {
	// Tag is the element name. For namespaced elements the resolved
	// namespace is kept as a prefix: "uri:local".
	Tag string

	// Attrs are the attributes in document order
	Attrs []Attr

	// Children are the child elements in document order
	Children []*Node

	// Text is the element's own character data, whitespace-trimmed
	Text string
}

// Attr returns the value of the named attribute and whether it exists
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the value of the named attribute or a fallback
func (n *Node) AttrOr(name, fallback string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return fallback
}
