package diff

import (
	"github.com/hvanbelle/xmldelta/pkg/models"
)

// Unify maps an edit script 1:1 onto unified output lines: equal ops
// become context, deletes removed, inserts added. Always O(N).
func Unify(ops []models.LineOp) []models.UnifiedLine {
	lines := make([]models.UnifiedLine, 0, len(ops))
	for _, op := range ops {
		var typ models.UnifiedType
		switch op.Type {
		case models.OpDelete:
			typ = models.UnifiedRemoved
		case models.OpInsert:
			typ = models.UnifiedAdded
		default:
			typ = models.UnifiedContext
		}
		lines = append(lines, models.UnifiedLine{
			Type:    typ,
			Content: op.Line,
			OldLine: op.OldLine,
			NewLine: op.NewLine,
		})
	}
	return lines
}

// Align regroups an edit script into side-by-side rows. Within each
// maximal run of non-equal ops, deletions and insertions are paired
// index-for-index as modified rows; once the shorter sub-run is
// exhausted the rest become pure removed or added rows. Pairing is
// positional only, no content-similarity matching is attempted, so a
// moved but identical line still classifies as modified.
func Align(ops []models.LineOp) []models.AlignedRow {
	rows := make([]models.AlignedRow, 0, len(ops))
	var deletes, inserts []models.LineOp

	flush := func() {
		paired := min(len(deletes), len(inserts))
		for i := 0; i < paired; i++ {
			rows = append(rows, models.AlignedRow{
				Kind:  models.DiffModified,
				Left:  &models.RowCell{Line: deletes[i].OldLine, Content: deletes[i].Line},
				Right: &models.RowCell{Line: inserts[i].NewLine, Content: inserts[i].Line},
			})
		}
		for _, op := range deletes[paired:] {
			rows = append(rows, models.AlignedRow{
				Kind: models.DiffRemoved,
				Left: &models.RowCell{Line: op.OldLine, Content: op.Line},
			})
		}
		for _, op := range inserts[paired:] {
			rows = append(rows, models.AlignedRow{
				Kind:  models.DiffAdded,
				Right: &models.RowCell{Line: op.NewLine, Content: op.Line},
			})
		}
		deletes = deletes[:0]
		inserts = inserts[:0]
	}

	for _, op := range ops {
		switch op.Type {
		case models.OpDelete:
			deletes = append(deletes, op)
		case models.OpInsert:
			inserts = append(inserts, op)
		default:
			flush()
			rows = append(rows, models.AlignedRow{
				Kind:  models.DiffUnchanged,
				Left:  &models.RowCell{Line: op.OldLine, Content: op.Line},
				Right: &models.RowCell{Line: op.NewLine, Content: op.Line},
			})
		}
	}
	flush()

	return rows
}

// GroupUnified collects the changed regions of unified output into
// hunks padded with up to context lines on both ends. Runs separated
// by at most 2*context unchanged lines merge into one hunk.
func GroupUnified(lines []models.UnifiedLine, context int) []models.UnifiedHunk {
	if context < 0 {
		context = 0
	}

	var hunks []models.UnifiedHunk
	i := 0
	for i < len(lines) {
		if lines[i].Type == models.UnifiedContext {
			i++
			continue
		}

		// Extend over following changed runs while the context gap is
		// small enough to merge.
		last := i
		j := i
		for j < len(lines) {
			if lines[j].Type != models.UnifiedContext {
				last = j
				j++
				continue
			}
			k := j
			for k < len(lines) && lines[k].Type == models.UnifiedContext {
				k++
			}
			if k < len(lines) && k-j <= 2*context {
				j = k
				continue
			}
			break
		}

		start := max(0, i-context)
		end := min(len(lines), last+1+context)
		hunks = append(hunks, buildHunk(lines[start:end]))
		i = end
	}
	return hunks
}

func buildHunk(lines []models.UnifiedLine) models.UnifiedHunk {
	hunk := models.UnifiedHunk{Lines: lines}
	for _, line := range lines {
		if line.OldLine > 0 {
			if hunk.OldStart == 0 {
				hunk.OldStart = line.OldLine
			}
			hunk.OldCount++
		}
		if line.NewLine > 0 {
			if hunk.NewStart == 0 {
				hunk.NewStart = line.NewLine
			}
			hunk.NewCount++
		}
	}
	return hunk
}
