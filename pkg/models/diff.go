package models

import (
	"fmt"
	"strings"
)

// DiffType classifies a single diff record
type DiffType string

const (
	// DiffAdded indicates the item exists only in the new document
	DiffAdded DiffType = "added"
	// DiffRemoved indicates the item exists only in the old document
	DiffRemoved DiffType = "removed"
	// DiffModified indicates the item exists on both sides with differences
	DiffModified DiffType = "modified"
	// DiffUnchanged indicates the item is identical on both sides
	DiffUnchanged DiffType = "unchanged"
)

// Valid reports whether t is one of the four known diff types
func (t DiffType) Valid() bool {
	switch t {
	case DiffAdded, DiffRemoved, DiffModified, DiffUnchanged:
		return true
	}
	return false
}

// PathSegment locates one step of a node path: the element tag and its
// ordinal index among same-named siblings under the same parent
type PathSegment struct {
	Tag   string
	Index int
}

// Path locates a node positionally from the document root. Identity is
// path-based, not content-based: two nodes are "the same node" only if
// they are reachable by the same path in both trees, so inserting or
// removing a sibling shifts the paths of the nodes after it.
type Path []PathSegment

// String renders the path as /tag[index]/tag[index]/...
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range p {
		fmt.Fprintf(&b, "/%s[%d]", seg.Tag, seg.Index)
	}
	return b.String()
}

// Child returns a new path extended by one segment. The receiver is
// copied so records never share backing arrays.
func (p Path) Child(tag string, index int) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = PathSegment{Tag: tag, Index: index}
	return child
}

// AttrChange represents a single attribute-level difference on a node
type AttrChange struct {
	// Name is the attribute name
	Name string

	// Type is added, removed or modified; unchanged attributes are
	// never emitted
	Type DiffType

	// OldValue is the attribute value in the old document ("" when added)
	OldValue string

	// NewValue is the attribute value in the new document ("" when removed)
	NewValue string
}

// NodeChange represents one tree-level diff record. A subtree present on
// only one side is summarized by a single record at its topmost node;
// descendants are not separately emitted.
type NodeChange struct {
	// Path positionally locates the node
	Path Path

	// Type classifies the change
	Type DiffType

	// OldValue is the node text content in the old document
	OldValue string

	// NewValue is the node text content in the new document
	NewValue string

	// OldTag and NewTag are set only when the element name itself
	// differs, which can only happen at the document root
	OldTag string
	NewTag string

	// AttrChanges lists attribute-level differences in attribute
	// document order, old side first
	AttrChanges []AttrChange
}
