package output

import (
	"io"

	"github.com/hvanbelle/xmldelta/pkg/models"
)

// ProgressUpdate represents a progress notification during a comparison
type ProgressUpdate struct {
	// Phase is the engine phase: "format", "tree", "lines", "schema", "stats"
	Phase string

	// Fraction is the completion of the current phase, between 0 and 1
	Fraction float64

	// Pair is the relative path of the pair being compared in batch mode
	Pair string

	// PairsDone and PairsTotal track batch completion; PairsTotal is
	// zero for single comparisons
	PairsDone  int
	PairsTotal int
}

// Formatter defines the interface for output formatting
// Implementations include human-readable and JSON formatters
type Formatter interface {
	// Start initializes the formatter for a new compare operation
	Start(writer io.Writer, operation *models.CompareOperation) error

	// Progress reports progress during the comparison
	Progress(update ProgressUpdate) error

	// Complete finalizes output and renders the comparison report
	Complete(report *models.CompareReport) error

	// CompleteBatch finalizes output and renders a batch report
	CompleteBatch(report *models.BatchReport) error

	// Error reports an error during the comparison
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
