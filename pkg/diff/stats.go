package diff

import (
	"github.com/hvanbelle/xmldelta/pkg/models"
)

// CountTypes tallies a type sequence into per-type counts. Single O(N)
// pass, no state retained.
func CountTypes(types []models.DiffType) models.TypeCounts {
	var counts models.TypeCounts
	for _, t := range types {
		switch t {
		case models.DiffAdded:
			counts.Added++
		case models.DiffRemoved:
			counts.Removed++
		case models.DiffModified:
			counts.Modified++
		default:
			counts.Unchanged++
		}
		counts.Total++
	}
	return counts
}

// Hunks counts the maximal contiguous runs of non-unchanged entries in
// a type sequence
func Hunks(types []models.DiffType) int {
	count := 0
	inHunk := false
	for _, t := range types {
		if t == models.DiffUnchanged {
			inHunk = false
			continue
		}
		if !inHunk {
			count++
			inHunk = true
		}
	}
	return count
}

// OpTypes projects an edit script onto the shared DiffType enum
func OpTypes(ops []models.LineOp) []models.DiffType {
	types := make([]models.DiffType, len(ops))
	for i, op := range ops {
		switch op.Type {
		case models.OpDelete:
			types[i] = models.DiffRemoved
		case models.OpInsert:
			types[i] = models.DiffAdded
		default:
			types[i] = models.DiffUnchanged
		}
	}
	return types
}

// RowKinds extracts the kind sequence of side-by-side rows
func RowKinds(rows []models.AlignedRow) []models.DiffType {
	types := make([]models.DiffType, len(rows))
	for i, row := range rows {
		types[i] = row.Kind
	}
	return types
}

// NodeTypes extracts the type sequence of tree records
func NodeTypes(changes []models.NodeChange) []models.DiffType {
	types := make([]models.DiffType, len(changes))
	for i, c := range changes {
		types[i] = c.Type
	}
	return types
}

// SchemaTypes extracts the type sequence of schema items
func SchemaTypes(items []models.SchemaChange) []models.DiffType {
	types := make([]models.DiffType, len(items))
	for i, item := range items {
		types[i] = item.Type
	}
	return types
}

// LineStatsFromRows derives line-view stats from aligned rows: the row
// is the counting unit, hunks are runs of changed rows.
func LineStatsFromRows(rows []models.AlignedRow) models.LineStats {
	kinds := RowKinds(rows)
	counts := CountTypes(kinds)
	return models.LineStats{
		Added:     counts.Added,
		Removed:   counts.Removed,
		Modified:  counts.Modified,
		Unchanged: counts.Unchanged,
		Total:     counts.Total,
		Hunks:     Hunks(kinds),
	}
}
