package batch

import (
	"time"

	"github.com/hvanbelle/xmldelta/pkg/models"
)

// TaskStatus represents the state of a pair task in the runner
type TaskStatus string

const (
	// TaskPending indicates the task is waiting for a worker
	TaskPending TaskStatus = "pending"
	// TaskProcessing indicates a worker is comparing the pair
	TaskProcessing TaskStatus = "processing"
	// TaskCompleted indicates the comparison finished
	TaskCompleted TaskStatus = "completed"
	// TaskError indicates the comparison failed
	TaskError TaskStatus = "error"
)

// PairTask represents one file pair queued for comparison
type PairTask struct {
	// RelativePath is the path relative to both roots
	RelativePath string

	// OldPath and NewPath are the full document paths
	OldPath string
	NewPath string

	// Status tracks the current state of this task
	Status TaskStatus

	// Outcome is the per-pair result, valid once the task completed
	Outcome models.PairResult

	// ProcessingDuration tracks how long the worker spent on this pair
	ProcessingDuration time.Duration

	// WorkerID identifies which worker processed this task
	WorkerID int
}

// NewPairTask creates a pending task for one discovered pair
func NewPairTask(relativePath, oldPath, newPath string) *PairTask {
	return &PairTask{
		RelativePath: relativePath,
		OldPath:      oldPath,
		NewPath:      newPath,
		Status:       TaskPending,
		Outcome:      models.PairResult{RelativePath: relativePath},
	}
}

// MarkProcessing marks the task as claimed by a worker
func (t *PairTask) MarkProcessing(workerID int) {
	t.Status = TaskProcessing
	t.WorkerID = workerID
}

// MarkCompleted records the comparison outcome
func (t *PairTask) MarkCompleted(outcome models.PairResult, duration time.Duration) {
	t.Status = TaskCompleted
	t.Outcome = outcome
	t.ProcessingDuration = duration
}

// MarkError records a comparison failure. Failed pairs stay in the
// report; they never abort the batch.
func (t *PairTask) MarkError(err error, duration time.Duration) {
	t.Status = TaskError
	t.Outcome = models.PairResult{
		RelativePath: t.RelativePath,
		Status:       models.PairFailed,
		Error:        err.Error(),
	}
	t.ProcessingDuration = duration
}
