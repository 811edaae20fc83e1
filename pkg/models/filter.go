package models

import (
	"fmt"
	"strings"
)

// TypeFilter selects which change types a consumer currently wants to
// see. Unchanged records never pass a filter regardless of its state.
type TypeFilter struct {
	Added    bool
	Removed  bool
	Modified bool
}

// AllTypes returns a filter with every change type enabled
func AllTypes() TypeFilter {
	return TypeFilter{Added: true, Removed: true, Modified: true}
}

// Match reports whether records of type t pass the filter
func (f TypeFilter) Match(t DiffType) bool {
	switch t {
	case DiffAdded:
		return f.Added
	case DiffRemoved:
		return f.Removed
	case DiffModified:
		return f.Modified
	}
	return false
}

// Empty reports whether no change type is enabled
func (f TypeFilter) Empty() bool {
	return !f.Added && !f.Removed && !f.Modified
}

// String renders the enabled types as a comma-separated list
func (f TypeFilter) String() string {
	var types []string
	if f.Added {
		types = append(types, string(DiffAdded))
	}
	if f.Removed {
		types = append(types, string(DiffRemoved))
	}
	if f.Modified {
		types = append(types, string(DiffModified))
	}
	return strings.Join(types, ",")
}

// ParseTypeFilter builds a filter from a comma-separated type list such
// as "added,modified". Unchanged is not a valid filter member.
func ParseTypeFilter(s string) (TypeFilter, error) {
	var f TypeFilter
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch DiffType(part) {
		case DiffAdded:
			f.Added = true
		case DiffRemoved:
			f.Removed = true
		case DiffModified:
			f.Modified = true
		default:
			return TypeFilter{}, fmt.Errorf("unknown diff type %q", part)
		}
	}
	if f.Empty() {
		return TypeFilter{}, fmt.Errorf("filter selects no diff types")
	}
	return f, nil
}
