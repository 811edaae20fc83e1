package output

import (
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/hvanbelle/xmldelta/pkg/models"
)

// progressScale is the bar resolution for fractional phase updates
const progressScale = 1000

const (
	phaseTemplate = `{{string . "phase" | printf "%-7s"}} {{bar . "[" "=" ">" " " "]"}} {{percent .}}`
	batchTemplate = `{{string . "pair" | printf "%-40s"}} {{bar . "[" "=" ">" " " "]"}} {{counters .}}`
)

// ProgressFormatter renders a live progress bar during the comparison
// and hands the finished report to the human formatter. The bar writes
// to stderr so stdout stays clean for the report itself.
type ProgressFormatter struct {
	human *HumanFormatter

	mu    sync.Mutex
	bar   *pb.ProgressBar
	phase string
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter(sideBySide bool) *ProgressFormatter {
	return &ProgressFormatter{human: NewHumanFormatter(sideBySide)}
}

// Start initializes the formatter
func (f *ProgressFormatter) Start(writer io.Writer, operation *models.CompareOperation) error {
	return f.human.Start(writer, operation)
}

// Progress updates the bar. Single comparisons show per-phase
// completion, batch runs show pair counts.
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if update.PairsTotal > 0 {
		if f.bar == nil {
			f.bar = pb.New(update.PairsTotal)
			f.bar.SetTemplateString(batchTemplate)
			f.bar.SetWriter(os.Stderr)
			f.bar.Start()
		}
		f.bar.Set("pair", clip(update.Pair, 40))
		f.bar.SetCurrent(int64(update.PairsDone))
		return nil
	}

	if f.bar == nil {
		f.bar = pb.New(progressScale)
		f.bar.SetTemplateString(phaseTemplate)
		f.bar.SetWriter(os.Stderr)
		f.bar.Start()
	}
	if update.Phase != "" && update.Phase != f.phase {
		f.phase = update.Phase
		f.bar.Set("phase", update.Phase)
	}
	current := int64(update.Fraction * progressScale)
	if current > progressScale {
		current = progressScale
	}
	f.bar.SetCurrent(current)
	return nil
}

// Complete stops the bar and renders the report
func (f *ProgressFormatter) Complete(report *models.CompareReport) error {
	f.finishBar()
	return f.human.Complete(report)
}

// CompleteBatch stops the bar and renders the batch report
func (f *ProgressFormatter) CompleteBatch(report *models.BatchReport) error {
	f.finishBar()
	return f.human.CompleteBatch(report)
}

// Error stops the bar and reports the error
func (f *ProgressFormatter) Error(err error) error {
	f.finishBar()
	return f.human.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

func (f *ProgressFormatter) finishBar() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
		f.phase = ""
	}
}
