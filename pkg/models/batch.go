package models

import (
	"time"
)

// PairStatus classifies one file pair of a batch comparison
type PairStatus string

const (
	// PairIdentical indicates byte-identical or diff-identical documents
	PairIdentical PairStatus = "identical"
	// PairDifferent indicates the documents differ
	PairDifferent PairStatus = "different"
	// PairOldOnly indicates the file exists only under the old root
	PairOldOnly PairStatus = "old-only"
	// PairNewOnly indicates the file exists only under the new root
	PairNewOnly PairStatus = "new-only"
	// PairFailed indicates the pair could not be compared
	PairFailed PairStatus = "failed"
)

// PairResult represents the outcome for one file pair
type PairResult struct {
	// RelativePath is the path relative to both roots
	RelativePath string

	// Status classifies the pair
	Status PairStatus

	// TreeChanges is the number of changed node slots
	TreeChanges int

	// LineHunks is the number of changed-row runs
	LineHunks int

	// SchemaChanges is the number of changed schema slots
	SchemaChanges int

	// Approximate is set when the line diff used the bounded fallback
	Approximate bool

	// Error describes the failure for failed pairs
	Error string
}

// BatchStats holds batch comparison metrics
type BatchStats struct {
	PairsScanned   int
	PairsIdentical int
	PairsDifferent int
	FilesOldOnly   int
	FilesNewOnly   int
	PairsFailed    int
}

// BatchReport represents the results of a batch comparison run
type BatchReport struct {
	// Operation details
	OperationID string
	OldRoot     string
	NewRoot     string

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Results are per-pair outcomes sorted by relative path
	Results []PairResult

	// Stats are the aggregate counters
	Stats BatchStats

	// Overall status
	Status Status
}

// HasDifferences reports whether any pair differs or exists on one side only
func (r *BatchReport) HasDifferences() bool {
	return r.Stats.PairsDifferent+r.Stats.FilesOldOnly+r.Stats.FilesNewOnly > 0
}
