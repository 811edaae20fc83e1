package diff

import (
	"context"
	"time"

	"github.com/hvanbelle/xmldelta/pkg/models"
)

const (
	// DefaultMaxLCSCells bounds the DP table before the approximate
	// fallback takes over (cells = (N+1)*(M+1) after trimming the
	// common prefix and suffix).
	DefaultMaxLCSCells = 8_000_000

	// lineProgressInterval throttles progress callbacks during the
	// table fill
	lineProgressInterval = 100 * time.Millisecond
)

// LineOptions tunes a Lines computation. The zero value uses the
// default cell bound and no progress reporting.
type LineOptions struct {
	// MaxCells overrides DefaultMaxLCSCells when positive
	MaxCells int64

	// Progress receives phase "lines" updates, may be nil
	Progress ProgressFunc
}

// Lines computes the shortest edit script between two line sequences.
// Equality is exact string equality, whitespace included. The returned
// ops satisfy the round-trip invariant: equal+delete ops reproduce old,
// equal+insert ops reproduce new, both in original order. When multiple
// minimal scripts exist, matches are taken as early as possible in both
// sequences and deletes are preferred before inserts.
//
// The second result is true when the input exceeded the cell bound and
// the bounded fallback replaced the exact computation: the common
// prefix and suffix still align, and the middle is reported as one
// whole-block replacement. Cancellation is checked between rows of the
// table fill; a cancelled call returns (nil, false, ctx.Err()).
func Lines(ctx context.Context, old, new []string, opts LineOptions) ([]models.LineOp, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	maxCells := opts.MaxCells
	if maxCells <= 0 {
		maxCells = DefaultMaxLCSCells
	}

	e := &emitter{ops: make([]models.LineOp, 0, len(old)+len(new))}

	// Common prefix and suffix never participate in the DP table.
	prefix := 0
	for prefix < len(old) && prefix < len(new) && old[prefix] == new[prefix] {
		prefix++
	}
	suffix := 0
	limit := min(len(old), len(new)) - prefix
	for suffix < limit && old[len(old)-1-suffix] == new[len(new)-1-suffix] {
		suffix++
	}

	for i := 0; i < prefix; i++ {
		e.equal(old[i])
	}

	midOld := old[prefix : len(old)-suffix]
	midNew := new[prefix : len(new)-suffix]

	approximate := false
	switch {
	case len(midOld) == 0:
		for _, line := range midNew {
			e.insert(line)
		}
	case len(midNew) == 0:
		for _, line := range midOld {
			e.delete(line)
		}
	default:
		cells := int64(len(midOld)+1) * int64(len(midNew)+1)
		if cells > maxCells {
			// Bounded fallback: one whole-block replacement keeps the
			// round-trip invariant without a table.
			approximate = true
			for _, line := range midOld {
				e.delete(line)
			}
			for _, line := range midNew {
				e.insert(line)
			}
		} else {
			if err := lcsWalk(ctx, e, midOld, midNew, opts.Progress); err != nil {
				return nil, false, err
			}
		}
	}

	for i := len(old) - suffix; i < len(old); i++ {
		e.equal(old[i])
	}

	opts.Progress.report(PhaseLines, 1)
	return e.ops, approximate, nil
}

// lcsWalk fills a suffix LCS table over the trimmed middles and walks
// it forward, emitting the edit script in document order. table[i][j]
// holds the LCS length of old[i:] and new[j:], flattened row-major.
func lcsWalk(ctx context.Context, e *emitter, old, new []string, progress ProgressFunc) error {
	n, m := len(old), len(new)
	stride := m + 1
	table := make([]int32, (n+1)*stride)

	lastReport := time.Now()
	for i := n - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		row := i * stride
		below := row + stride
		for j := m - 1; j >= 0; j-- {
			if old[i] == new[j] {
				table[row+j] = table[below+j+1] + 1
			} else {
				table[row+j] = max(table[below+j], table[row+j+1])
			}
		}

		if progress != nil && time.Since(lastReport) >= lineProgressInterval {
			progress(PhaseLines, float64(n-i)/float64(n))
			lastReport = time.Now()
		}
	}

	// Greedy forward walk: equal heads always match (which keeps
	// matches as early as possible); on ties deletes win.
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case old[i] == new[j]:
			e.equal(old[i])
			i++
			j++
		case table[(i+1)*stride+j] >= table[i*stride+j+1]:
			e.delete(old[i])
			i++
		default:
			e.insert(new[j])
			j++
		}
	}
	for ; i < n; i++ {
		e.delete(old[i])
	}
	for ; j < m; j++ {
		e.insert(new[j])
	}
	return nil
}

// emitter appends ops while tracking the 1-based line counters of both
// sides
type emitter struct {
	ops     []models.LineOp
	oldLine int
	newLine int
}

func (e *emitter) equal(line string) {
	e.oldLine++
	e.newLine++
	e.ops = append(e.ops, models.LineOp{
		Type: models.OpEqual, Line: line, OldLine: e.oldLine, NewLine: e.newLine,
	})
}

func (e *emitter) delete(line string) {
	e.oldLine++
	e.ops = append(e.ops, models.LineOp{
		Type: models.OpDelete, Line: line, OldLine: e.oldLine,
	})
}

func (e *emitter) insert(line string) {
	e.newLine++
	e.ops = append(e.ops, models.LineOp{
		Type: models.OpInsert, Line: line, NewLine: e.newLine,
	})
}
