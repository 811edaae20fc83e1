package diff

import (
	"github.com/hvanbelle/xmldelta/pkg/models"
	"github.com/hvanbelle/xmldelta/pkg/xmltree"
)

// Trees compares two element trees positionally and returns the change
// records in pre-order together with node-level stats. Children are
// matched by (tag name, ordinal among same-named siblings) under the
// same parent; a node present on one side only is summarized by a
// single record at its topmost element. Unchanged nodes are counted in
// the stats but not emitted.
//
// Either side may be nil: the other side is then reported as fully
// added or removed. Two nil trees yield an empty result.
func Trees(old, new *xmltree.Node) ([]models.NodeChange, models.TreeStats) {
	return diffTrees(old, new, false)
}

// TreesFull behaves like Trees but also emits a record for every
// unchanged node, for callers that render the whole tree.
func TreesFull(old, new *xmltree.Node) ([]models.NodeChange, models.TreeStats) {
	return diffTrees(old, new, true)
}

func diffTrees(old, new *xmltree.Node, emitUnchanged bool) ([]models.NodeChange, models.TreeStats) {
	w := &treeWalker{emitUnchanged: emitUnchanged}

	switch {
	case old == nil && new == nil:
	case old == nil:
		w.emitOneSide(new, models.Path{}.Child(new.Tag, 0), models.DiffAdded)
	case new == nil:
		w.emitOneSide(old, models.Path{}.Child(old.Tag, 0), models.DiffRemoved)
	default:
		w.walk(old, new, models.Path{}.Child(old.Tag, 0))
	}

	return w.changes, w.stats
}

type treeWalker struct {
	emitUnchanged bool
	changes       []models.NodeChange
	stats         models.TreeStats
}

// childKey pairs children across the two trees: the tag name plus the
// ordinal of the child among same-named siblings.
type childKey struct {
	tag string
	ord int
}

func (w *treeWalker) walk(old, new *xmltree.Node, path models.Path) {
	w.stats.Total++

	attrChanges := diffAttrs(old.Attrs, new.Attrs)
	record := models.NodeChange{Path: path, Type: models.DiffModified, AttrChanges: attrChanges}

	changed := len(attrChanges) > 0
	if old.Text != new.Text {
		changed = true
		record.OldValue = old.Text
		record.NewValue = new.Text
	}
	// A tag mismatch is only reachable at the root; the path keeps the
	// old document's name and the record carries both tags.
	if old.Tag != new.Tag {
		changed = true
		record.OldTag = old.Tag
		record.NewTag = new.Tag
	}

	if changed {
		w.stats.Modified++
		w.changes = append(w.changes, record)
	} else {
		w.stats.Unchanged++
		if w.emitUnchanged {
			w.changes = append(w.changes, models.NodeChange{
				Path:     path,
				Type:     models.DiffUnchanged,
				OldValue: old.Text,
				NewValue: new.Text,
			})
		}
	}

	// Pair children by key, then visit old-side children in document
	// order followed by new-only children in document order.
	newByKey := make(map[childKey]*xmltree.Node, len(new.Children))
	ordinals := make(map[string]int)
	for _, child := range new.Children {
		key := childKey{tag: child.Tag, ord: ordinals[child.Tag]}
		ordinals[child.Tag]++
		newByKey[key] = child
	}

	clear(ordinals)
	for _, child := range old.Children {
		key := childKey{tag: child.Tag, ord: ordinals[child.Tag]}
		ordinals[child.Tag]++
		childPath := path.Child(key.tag, key.ord)
		if counterpart, ok := newByKey[key]; ok {
			delete(newByKey, key)
			w.walk(child, counterpart, childPath)
		} else {
			w.emitOneSide(child, childPath, models.DiffRemoved)
		}
	}

	clear(ordinals)
	for _, child := range new.Children {
		key := childKey{tag: child.Tag, ord: ordinals[child.Tag]}
		ordinals[child.Tag]++
		if _, unmatched := newByKey[key]; unmatched {
			w.emitOneSide(child, path.Child(key.tag, key.ord), models.DiffAdded)
		}
	}
}

// emitOneSide records a whole subtree present on a single side as one
// summarized record at its topmost node.
func (w *treeWalker) emitOneSide(node *xmltree.Node, path models.Path, typ models.DiffType) {
	w.stats.Total++
	record := models.NodeChange{Path: path, Type: typ}
	switch typ {
	case models.DiffAdded:
		w.stats.Added++
		record.NewValue = node.Text
	case models.DiffRemoved:
		w.stats.Removed++
		record.OldValue = node.Text
	}
	w.changes = append(w.changes, record)
}

// diffAttrs compares two ordered attribute lists. Old-side attributes
// are reported first in their document order (removed or modified),
// then new-only attributes in theirs.
func diffAttrs(old, new []xmltree.Attr) []models.AttrChange {
	var changes []models.AttrChange

	newValues := make(map[string]string, len(new))
	for _, a := range new {
		newValues[a.Name] = a.Value
	}

	oldSeen := make(map[string]struct{}, len(old))
	for _, a := range old {
		oldSeen[a.Name] = struct{}{}
		newValue, ok := newValues[a.Name]
		switch {
		case !ok:
			changes = append(changes, models.AttrChange{
				Name: a.Name, Type: models.DiffRemoved, OldValue: a.Value,
			})
		case newValue != a.Value:
			changes = append(changes, models.AttrChange{
				Name: a.Name, Type: models.DiffModified, OldValue: a.Value, NewValue: newValue,
			})
		}
	}

	for _, a := range new {
		if _, ok := oldSeen[a.Name]; !ok {
			changes = append(changes, models.AttrChange{
				Name: a.Name, Type: models.DiffAdded, NewValue: a.Value,
			})
		}
	}

	return changes
}
