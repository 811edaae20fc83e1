package batch

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hvanbelle/xmldelta/pkg/diff"
	"github.com/hvanbelle/xmldelta/pkg/logging"
	"github.com/hvanbelle/xmldelta/pkg/models"
	"github.com/hvanbelle/xmldelta/pkg/output"
)

// Runner orchestrates a producer-consumer batch comparison: scan both
// roots, queue the discovered pairs, compare them on a bounded worker
// pool and aggregate the per-pair outcomes into one report.
type Runner struct {
	formatter output.Formatter
	logger    logging.Logger

	// operation is the template for per-pair comparisons; its paths
	// carry the two root directories
	operation *models.CompareOperation
	oldRoot   string
	newRoot   string
	exclude   []string

	// Task queue
	taskQueue  chan *PairTask
	maxWorkers int

	// State tracking
	pairsTotal int
	pairsDone  atomic.Int32

	// Results collection
	results   []*PairTask
	resultsMu sync.Mutex
}

// RunnerConfig holds configuration for the batch runner
type RunnerConfig struct {
	MaxWorkers int
	QueueSize  int // Buffer size for the task queue
}

// DefaultRunnerConfig returns sensible defaults
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		MaxWorkers: 5,
		QueueSize:  256,
	}
}

// NewRunner creates a batch runner. Formatter and logger may be nil
// for library use.
func NewRunner(
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.CompareOperation,
	exclude []string,
	config RunnerConfig,
) *Runner {
	if config.MaxWorkers < 1 {
		config.MaxWorkers = 1
	}
	if config.QueueSize < 16 {
		config.QueueSize = 16
	}

	return &Runner{
		formatter:  formatter,
		logger:     logger,
		operation:  operation,
		oldRoot:    operation.OldPath,
		newRoot:    operation.NewPath,
		exclude:    exclude,
		taskQueue:  make(chan *PairTask, config.QueueSize),
		maxWorkers: config.MaxWorkers,
		results:    make([]*PairTask, 0),
	}
}

// Run executes the batch comparison and returns the aggregated report.
// Pair failures are recorded and never abort the run. A cancelled run
// returns no report, only the context error.
func (r *Runner) Run(ctx context.Context) (*models.BatchReport, error) {
	startTime := time.Now()
	report := &models.BatchReport{
		OperationID: r.operation.ID,
		OldRoot:     r.oldRoot,
		NewRoot:     r.newRoot,
		StartTime:   startTime,
	}

	if r.logger != nil {
		r.logger.Info(ctx, "Starting batch comparison", logging.Fields{
			"operation_id": r.operation.ID,
			"old_root":     r.oldRoot,
			"new_root":     r.newRoot,
			"max_workers":  r.maxWorkers,
		})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if r.formatter != nil {
		if err := r.formatter.Start(nil, r.operation); err != nil {
			return nil, err
		}
	}

	// Phase 1: discover pairs under both roots
	scan, err := Scan(ctx, r.oldRoot, r.newRoot, r.exclude)
	if err != nil {
		r.reportError(err)
		return nil, err
	}
	r.pairsTotal = len(scan.Pairs)

	if r.logger != nil {
		r.logger.Info(ctx, "Scan complete", logging.Fields{
			"pairs":    len(scan.Pairs),
			"old_only": len(scan.OldOnly),
			"new_only": len(scan.NewOnly),
		})
	}

	// One-sided files need no worker, record them directly
	for _, rel := range scan.OldOnly {
		r.addResult(&PairTask{
			RelativePath: rel,
			Status:       TaskCompleted,
			Outcome:      models.PairResult{RelativePath: rel, Status: models.PairOldOnly},
		})
	}
	for _, rel := range scan.NewOnly {
		r.addResult(&PairTask{
			RelativePath: rel,
			Status:       TaskCompleted,
			Outcome:      models.PairResult{RelativePath: rel, Status: models.PairNewOnly},
		})
	}

	// Phase 2: start workers, then feed the queue
	var workersWg sync.WaitGroup
	for i := 0; i < r.maxWorkers; i++ {
		workersWg.Add(1)
		go r.runWorker(ctx, i, &workersWg)
	}

	queueErr := r.queuePairs(ctx, scan.Pairs)
	close(r.taskQueue)
	workersWg.Wait()

	if queueErr != nil {
		r.reportError(queueErr)
		return nil, queueErr
	}
	if err := ctx.Err(); err != nil {
		r.reportError(err)
		return nil, err
	}

	// Phase 3: aggregate results
	r.buildReport(report)

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	if r.logger != nil {
		r.logger.Info(ctx, "Batch comparison completed", logging.Fields{
			"duration":        report.Duration.String(),
			"status":          string(report.Status),
			"pairs_scanned":   report.Stats.PairsScanned,
			"pairs_identical": report.Stats.PairsIdentical,
			"pairs_different": report.Stats.PairsDifferent,
			"pairs_failed":    report.Stats.PairsFailed,
		})
	}

	if r.formatter != nil {
		if err := r.formatter.CompleteBatch(report); err != nil {
			return report, err
		}
	}

	return report, nil
}

// queuePairs feeds discovered pairs to the workers
func (r *Runner) queuePairs(ctx context.Context, pairs []string) error {
	for _, rel := range pairs {
		task := NewPairTask(rel,
			filepath.Join(r.oldRoot, filepath.FromSlash(rel)),
			filepath.Join(r.newRoot, filepath.FromSlash(rel)))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case r.taskQueue <- task:
		}
	}
	return nil
}

// runWorker consumes pair tasks until the queue drains or the context
// is cancelled
func (r *Runner) runWorker(ctx context.Context, workerID int, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-r.taskQueue:
			if !ok {
				return
			}
			r.processTask(ctx, workerID, task)
		}
	}
}

// processTask compares one pair: the content precheck first, the full
// engine only when the bytes differ
func (r *Runner) processTask(ctx context.Context, workerID int, task *PairTask) {
	startTime := time.Now()
	task.MarkProcessing(workerID)

	outcome, err := r.comparePair(ctx, task)
	if err != nil {
		if ctx.Err() != nil {
			// Cancelled mid-comparison, the run reports the context error
			return
		}
		task.MarkError(err, time.Since(startTime))
		if r.logger != nil {
			r.logger.Error(ctx, "Pair comparison failed", err, logging.Fields{
				"path":      task.RelativePath,
				"worker_id": workerID,
			})
		}
	} else {
		task.MarkCompleted(outcome, time.Since(startTime))
	}

	r.addResult(task)

	done := int(r.pairsDone.Add(1))
	if r.formatter != nil {
		r.formatter.Progress(output.ProgressUpdate{
			Pair:       task.RelativePath,
			PairsDone:  done,
			PairsTotal: r.pairsTotal,
		})
	}
}

// comparePair produces the outcome for one pair
func (r *Runner) comparePair(ctx context.Context, task *PairTask) (models.PairResult, error) {
	result := models.PairResult{RelativePath: task.RelativePath}

	same, err := identicalFiles(ctx, task.OldPath, task.NewPath)
	if err != nil {
		return result, err
	}
	if same {
		result.Status = models.PairIdentical
		return result, nil
	}

	engine := diff.NewEngine(nil, r.pairLogger(task), r.pairOperation(task))
	report, err := engine.Run(ctx)
	if err != nil {
		return result, err
	}

	if report.Tree != nil {
		stats := report.Tree.Stats
		result.TreeChanges = stats.Added + stats.Removed + stats.Modified
	}
	if report.Lines != nil {
		result.LineHunks = report.Lines.Stats.Hunks
		result.Approximate = report.Lines.Approximate
	}
	if report.Schema != nil {
		stats := report.Schema.Stats
		result.SchemaChanges = stats.Added + stats.Removed + stats.Modified
	}

	if report.HasDifferences() {
		result.Status = models.PairDifferent
	} else {
		result.Status = models.PairIdentical
	}
	return result, nil
}

// pairOperation derives the per-pair comparison from the template
func (r *Runner) pairOperation(task *PairTask) *models.CompareOperation {
	op := *r.operation
	op.OldPath = task.OldPath
	op.NewPath = task.NewPath
	return &op
}

func (r *Runner) pairLogger(task *PairTask) logging.Logger {
	if r.logger == nil {
		return nil
	}
	return r.logger.WithFields(logging.Fields{"path": task.RelativePath})
}

func (r *Runner) addResult(task *PairTask) {
	r.resultsMu.Lock()
	r.results = append(r.results, task)
	r.resultsMu.Unlock()
}

// buildReport aggregates per-pair outcomes into the report, sorted by
// relative path
func (r *Runner) buildReport(report *models.BatchReport) {
	r.resultsMu.Lock()
	defer r.resultsMu.Unlock()

	sort.Slice(r.results, func(i, j int) bool {
		return r.results[i].RelativePath < r.results[j].RelativePath
	})

	report.Results = make([]models.PairResult, 0, len(r.results))
	for _, task := range r.results {
		report.Results = append(report.Results, task.Outcome)

		switch task.Outcome.Status {
		case models.PairIdentical:
			report.Stats.PairsIdentical++
		case models.PairDifferent:
			report.Stats.PairsDifferent++
		case models.PairOldOnly:
			report.Stats.FilesOldOnly++
		case models.PairNewOnly:
			report.Stats.FilesNewOnly++
		case models.PairFailed:
			report.Stats.PairsFailed++
		}
	}
	report.Stats.PairsScanned = r.pairsTotal

	switch {
	case report.Stats.PairsFailed > 0:
		report.Status = models.StatusFailed
	case report.HasDifferences():
		report.Status = models.StatusDifferent
	default:
		report.Status = models.StatusIdentical
	}
}

func (r *Runner) reportError(err error) {
	if r.formatter != nil {
		r.formatter.Error(err)
	}
}
