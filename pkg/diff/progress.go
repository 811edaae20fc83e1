package diff

// Comparison phases reported through ProgressFunc
const (
	PhaseFormat = "format"
	PhaseTree   = "tree"
	PhaseLines  = "lines"
	PhaseSchema = "schema"
	PhaseStats  = "stats"
)

// ProgressFunc receives incremental progress for a comparison phase.
// fraction grows from 0 to 1 within the phase. Implementations must be
// fast and must not block; a nil ProgressFunc disables reporting.
type ProgressFunc func(phase string, fraction float64)

// report invokes fn when set
func (fn ProgressFunc) report(phase string, fraction float64) {
	if fn != nil {
		fn(phase, fraction)
	}
}
