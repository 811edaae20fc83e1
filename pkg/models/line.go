package models

// LineOpType classifies a single edit-script operation
type LineOpType string

const (
	// OpEqual indicates the line is present on both sides
	OpEqual LineOpType = "equal"
	// OpDelete indicates the line is present only in the old document
	OpDelete LineOpType = "delete"
	// OpInsert indicates the line is present only in the new document
	OpInsert LineOpType = "insert"
)

// LineOp is one operation of a line-level edit script. The full op
// sequence satisfies the round-trip invariant: keeping equal and delete
// ops reproduces the old line sequence exactly, keeping equal and insert
// ops reproduces the new one.
type LineOp struct {
	// Type is the edit operation
	Type LineOpType

	// Line is the line text, without trailing newline
	Line string

	// OldLine is the 1-based line number in the old document, 0 for inserts
	OldLine int

	// NewLine is the 1-based line number in the new document, 0 for deletes
	NewLine int
}

// UnifiedType classifies a line of unified (single-column) output
type UnifiedType string

const (
	// UnifiedContext indicates a line present on both sides
	UnifiedContext UnifiedType = "context"
	// UnifiedAdded indicates a line present only in the new document
	UnifiedAdded UnifiedType = "added"
	// UnifiedRemoved indicates a line present only in the old document
	UnifiedRemoved UnifiedType = "removed"
)

// DiffType maps the unified classification to the shared DiffType enum
func (t UnifiedType) DiffType() DiffType {
	switch t {
	case UnifiedAdded:
		return DiffAdded
	case UnifiedRemoved:
		return DiffRemoved
	default:
		return DiffUnchanged
	}
}

// UnifiedLine is one line of unified output, derived 1:1 from a LineOp
type UnifiedLine struct {
	// Type is the unified classification
	Type UnifiedType

	// Content is the line text
	Content string

	// OldLine is the 1-based old line number, 0 when absent
	OldLine int

	// NewLine is the 1-based new line number, 0 when absent
	NewLine int
}

// UnifiedHunk groups a run of unified lines for display, padded with
// context lines on both ends
type UnifiedHunk struct {
	// OldStart is the 1-based first old line covered by the hunk
	OldStart int

	// OldCount is the number of old lines covered
	OldCount int

	// NewStart is the 1-based first new line covered by the hunk
	NewStart int

	// NewCount is the number of new lines covered
	NewCount int

	// Lines are the unified lines of the hunk in document order
	Lines []UnifiedLine
}

// RowCell is one side of a side-by-side row
type RowCell struct {
	// Line is the 1-based line number on this side
	Line int

	// Content is the line text
	Content string
}

// AlignedRow pairs an old-side and a new-side line for side-by-side
// display. At least one cell is always present: both for unchanged and
// modified rows, only Left for removed rows, only Right for added rows.
type AlignedRow struct {
	// Kind classifies the row
	Kind DiffType

	// Left is the old-side cell, nil for added rows
	Left *RowCell

	// Right is the new-side cell, nil for removed rows
	Right *RowCell
}
