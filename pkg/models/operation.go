package models

import (
	"time"
)

// View selects which diff granularities a comparison computes
type View string

const (
	// ViewTree compares element trees structurally
	ViewTree View = "tree"
	// ViewLines compares pretty-printed text line by line
	ViewLines View = "lines"
	// ViewSchema compares extracted table definitions
	ViewSchema View = "schema"
	// ViewAll computes every granularity
	ViewAll View = "all"
)

// Includes reports whether the view covers the other view
func (v View) Includes(other View) bool {
	return v == ViewAll || v == other
}

// CompareOperation represents a comparison run configuration
type CompareOperation struct {
	ID            string
	OldPath       string
	NewPath       string
	View          View
	Filter        TypeFilter
	Context       int // context lines around unified hunks
	EmitUnchanged bool
	MaxLCSCells   int64 // DP cell bound before the approximate fallback
	TableTags     []string
	FieldTags     []string
	CreatedAt     time.Time
}

// Validate checks if the operation configuration is valid
func (op *CompareOperation) Validate() error {
	if op.OldPath == "" {
		return &ValidationError{Field: "OldPath", Message: "old document path is required"}
	}
	if op.NewPath == "" {
		return &ValidationError{Field: "NewPath", Message: "new document path is required"}
	}
	switch op.View {
	case ViewTree, ViewLines, ViewSchema, ViewAll:
	default:
		return &ValidationError{Field: "View", Message: "view must be tree, lines, schema or all"}
	}
	if op.Context < 0 {
		return &ValidationError{Field: "Context", Message: "context lines must not be negative"}
	}
	if op.MaxLCSCells < 1024 {
		return &ValidationError{Field: "MaxLCSCells", Message: "LCS cell bound must be at least 1024"}
	}
	if op.Filter.Empty() {
		return &ValidationError{Field: "Filter", Message: "filter must enable at least one diff type"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
