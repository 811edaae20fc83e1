package models

import (
	"time"
)

// CompareReport represents the results of one comparison run
type CompareReport struct {
	// Operation details
	OperationID string
	OldPath     string
	NewPath     string
	View        View

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Per-view results, nil when the view was not requested
	Tree   *TreeResult
	Lines  *LineResult
	Schema *SchemaResult

	// Overall status
	Status Status
}

// TreeResult holds the structural diff output
type TreeResult struct {
	// Changes are the emitted node records in document order
	Changes []NodeChange

	// Stats covers all comparison slots including unchanged nodes
	Stats TreeStats
}

// LineResult holds the textual diff output
type LineResult struct {
	// Ops is the raw edit script
	Ops []LineOp

	// Unified is the inline single-column rendering of the script
	Unified []UnifiedLine

	// Hunks groups the unified lines using the operation's context setting
	Hunks []UnifiedHunk

	// Rows is the side-by-side rendering of the script
	Rows []AlignedRow

	// Stats covers the aligned rows
	Stats LineStats

	// Approximate is set when the bounded fallback replaced the exact
	// edit-script computation
	Approximate bool
}

// SchemaResult holds the logical-schema diff output
type SchemaResult struct {
	// Changes are the schema items in deterministic table/field order
	Changes []SchemaChange

	// Stats covers table and field slots
	Stats SchemaStats
}

// HasDifferences reports whether any requested view found a change
func (r *CompareReport) HasDifferences() bool {
	if r.Tree != nil && r.Tree.Stats.Added+r.Tree.Stats.Removed+r.Tree.Stats.Modified > 0 {
		return true
	}
	if r.Lines != nil && r.Lines.Stats.Added+r.Lines.Stats.Removed+r.Lines.Stats.Modified > 0 {
		return true
	}
	if r.Schema != nil && r.Schema.Stats.Added+r.Schema.Stats.Removed+r.Schema.Stats.Modified > 0 {
		return true
	}
	return false
}

// Status represents the overall result of a comparison run
type Status string

const (
	// StatusIdentical indicates the documents match in every requested view
	StatusIdentical Status = "identical"
	// StatusDifferent indicates at least one difference was found
	StatusDifferent Status = "different"
	// StatusFailed indicates the comparison could not complete
	StatusFailed Status = "failed"
	// StatusCancelled indicates the run was cancelled before completion
	StatusCancelled Status = "cancelled"
)

// ExitCode returns the process exit code for the status, following the
// diff convention: 0 identical, 1 different, 2 failed
func (s Status) ExitCode() int {
	switch s {
	case StatusIdentical:
		return 0
	case StatusDifferent:
		return 1
	case StatusFailed:
		return 2
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}
