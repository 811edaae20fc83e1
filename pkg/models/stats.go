package models

// TypeCounts aggregates a record sequence by diff type
type TypeCounts struct {
	Added     int
	Removed   int
	Modified  int
	Unchanged int
	Total     int
}

// Coverage returns the changed fraction (added+removed+modified)/total
func (c TypeCounts) Coverage() float64 {
	return coverage(c.Added+c.Removed+c.Modified, c.Total)
}

// TreeStats summarizes a tree diff. The unit is a comparison slot:
// every paired node plus every topmost one-side-only node counts once.
type TreeStats struct {
	Added     int
	Removed   int
	Modified  int
	Unchanged int
	Total     int
}

// Coverage returns the changed fraction of compared nodes
func (s TreeStats) Coverage() float64 {
	return coverage(s.Added+s.Removed+s.Modified, s.Total)
}

// LineStats summarizes a line diff. The unit is a side-by-side row.
type LineStats struct {
	Added     int
	Removed   int
	Modified  int
	Unchanged int
	Total     int

	// Hunks is the number of maximal contiguous runs of changed rows
	Hunks int
}

// Coverage returns the changed fraction of rows
func (s LineStats) Coverage() float64 {
	return coverage(s.Added+s.Removed+s.Modified, s.Total)
}

// SchemaStats summarizes a schema diff. The unit is a table or field
// slot; fields of a table present on only one side are counted through
// the single table item, not individually.
type SchemaStats struct {
	Added     int
	Removed   int
	Modified  int
	Unchanged int
	Total     int

	// Table-level breakdown
	TablesAdded   int
	TablesRemoved int

	// Field-level breakdown for tables present on both sides
	FieldsAdded     int
	FieldsRemoved   int
	FieldsModified  int
	FieldsUnchanged int
}

// Coverage returns the changed fraction of schema slots
func (s SchemaStats) Coverage() float64 {
	return coverage(s.Added+s.Removed+s.Modified, s.Total)
}

func coverage(changed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(changed) / float64(total)
}
