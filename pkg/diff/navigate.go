package diff

import (
	"sort"

	"github.com/hvanbelle/xmldelta/pkg/models"
)

// NavIndex assigns dense zero-based ordinals to the positions of a
// record sequence that are non-unchanged and pass the active type
// filter. It is a pure function of (types, filter): rebuild it whenever
// the filter changes instead of patching it, so it can never desync.
type NavIndex struct {
	filter    models.TypeFilter
	positions []int       // ordinal -> record position
	ordinals  map[int]int // record position -> ordinal
}

// NewNavIndex builds the index over a type sequence. Use the matching
// extractor (RowKinds, NodeTypes, SchemaTypes, OpTypes) to obtain the
// sequence for a record slice; positions refer to indexes in that slice.
func NewNavIndex(types []models.DiffType, filter models.TypeFilter) *NavIndex {
	idx := &NavIndex{
		filter:   filter,
		ordinals: make(map[int]int),
	}
	for pos, t := range types {
		if filter.Match(t) {
			idx.ordinals[pos] = len(idx.positions)
			idx.positions = append(idx.positions, pos)
		}
	}
	return idx
}

// Count returns the number of navigable records
func (x *NavIndex) Count() int {
	return len(x.positions)
}

// Filter returns the filter the index was built with
func (x *NavIndex) Filter() models.TypeFilter {
	return x.filter
}

// IndexOf returns the dense ordinal of a record position, or -1 when
// the record is unchanged or filtered out
func (x *NavIndex) IndexOf(position int) int {
	if ordinal, ok := x.ordinals[position]; ok {
		return ordinal
	}
	return -1
}

// At returns the record position for a dense ordinal, or -1 when the
// ordinal is out of range
func (x *NavIndex) At(ordinal int) int {
	if ordinal < 0 || ordinal >= len(x.positions) {
		return -1
	}
	return x.positions[ordinal]
}

// Next returns the first navigable position strictly after position,
// or -1 when there is none
func (x *NavIndex) Next(position int) int {
	i := sort.SearchInts(x.positions, position+1)
	if i == len(x.positions) {
		return -1
	}
	return x.positions[i]
}

// Prev returns the last navigable position strictly before position,
// or -1 when there is none
func (x *NavIndex) Prev(position int) int {
	i := sort.SearchInts(x.positions, position)
	if i == 0 {
		return -1
	}
	return x.positions[i-1]
}
