package diff

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/hvanbelle/xmldelta/pkg/models"
)

func unifyOf(t *testing.T, old, new []string) []models.UnifiedLine {
	t.Helper()
	ops, _, err := Lines(context.Background(), old, new, LineOptions{})
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}
	return Unify(ops)
}

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("L%02d", i+1)
	}
	return lines
}

// checkRowSides verifies the side-presence invariant of aligned rows:
// unchanged and modified rows carry both cells, added rows only the
// right cell, removed rows only the left.
func checkRowSides(t *testing.T, rows []models.AlignedRow) {
	t.Helper()
	for i, row := range rows {
		switch row.Kind {
		case models.DiffUnchanged, models.DiffModified:
			if row.Left == nil || row.Right == nil {
				t.Errorf("rows[%d] (%s) cells = (%v, %v), want both present",
					i, row.Kind, row.Left, row.Right)
			}
		case models.DiffAdded:
			if row.Left != nil || row.Right == nil {
				t.Errorf("rows[%d] (added) cells = (%v, %v), want right only",
					i, row.Left, row.Right)
			}
		case models.DiffRemoved:
			if row.Left == nil || row.Right != nil {
				t.Errorf("rows[%d] (removed) cells = (%v, %v), want left only",
					i, row.Left, row.Right)
			}
		default:
			t.Errorf("rows[%d] has unexpected kind %s", i, row.Kind)
		}
	}
}

// ============== Unify Tests ==============

func TestUnify(t *testing.T) {
	ops := []models.LineOp{
		{Type: models.OpEqual, Line: "a", OldLine: 1, NewLine: 1},
		{Type: models.OpDelete, Line: "b", OldLine: 2},
		{Type: models.OpInsert, Line: "x", NewLine: 2},
		{Type: models.OpEqual, Line: "c", OldLine: 3, NewLine: 3},
	}

	lines := Unify(ops)

	want := []models.UnifiedLine{
		{Type: models.UnifiedContext, Content: "a", OldLine: 1, NewLine: 1},
		{Type: models.UnifiedRemoved, Content: "b", OldLine: 2},
		{Type: models.UnifiedAdded, Content: "x", NewLine: 2},
		{Type: models.UnifiedContext, Content: "c", OldLine: 3, NewLine: 3},
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Unify() = %+v, want %+v", lines, want)
	}
}

func TestUnifyEmpty(t *testing.T) {
	if lines := Unify(nil); len(lines) != 0 {
		t.Errorf("Unify(nil) = %d lines, want 0", len(lines))
	}
}

// ============== Align Tests ==============

func TestAlignPairsChangedRuns(t *testing.T) {
	// Run of two deletes and one insert: the first delete pairs with the
	// insert, the second stays a pure removal.
	ops, _, err := Lines(context.Background(),
		[]string{"a", "b", "c", "d"}, []string{"a", "x", "d"}, LineOptions{})
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}

	rows := Align(ops)

	want := []struct {
		kind  models.DiffType
		left  string
		right string
	}{
		{models.DiffUnchanged, "a", "a"},
		{models.DiffModified, "b", "x"},
		{models.DiffRemoved, "c", ""},
		{models.DiffUnchanged, "d", "d"},
	}
	if len(rows) != len(want) {
		t.Fatalf("Align() produced %d rows, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Kind != w.kind {
			t.Errorf("rows[%d].Kind = %s, want %s", i, rows[i].Kind, w.kind)
		}
		left, right := "", ""
		if rows[i].Left != nil {
			left = rows[i].Left.Content
		}
		if rows[i].Right != nil {
			right = rows[i].Right.Content
		}
		if left != w.left || right != w.right {
			t.Errorf("rows[%d] cells = (%q, %q), want (%q, %q)", i, left, right, w.left, w.right)
		}
	}

	checkRowSides(t, rows)
}

func TestAlignInsertRemainder(t *testing.T) {
	ops, _, err := Lines(context.Background(), []string{"a"}, []string{"x", "y"}, LineOptions{})
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}

	rows := Align(ops)

	if len(rows) != 2 {
		t.Fatalf("Align() produced %d rows, want 2", len(rows))
	}
	if rows[0].Kind != models.DiffModified {
		t.Errorf("rows[0].Kind = %s, want modified", rows[0].Kind)
	}
	if rows[1].Kind != models.DiffAdded || rows[1].Left != nil {
		t.Errorf("rows[1] = %+v, want left-less added row", rows[1])
	}
	if rows[1].Right == nil || rows[1].Right.Content != "y" || rows[1].Right.Line != 2 {
		t.Errorf("rows[1].Right = %+v, want line 2 %q", rows[1].Right, "y")
	}
	checkRowSides(t, rows)
}

func TestAlignSideInvariantHolds(t *testing.T) {
	// One run with a delete surplus and one with an insert surplus, so
	// every row kind occurs.
	old := []string{"h", "b", "c", "m", "e", "t"}
	new := []string{"h", "x", "m", "z", "w", "t"}

	ops, _, err := Lines(context.Background(), old, new, LineOptions{})
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}
	rows := Align(ops)

	if len(rows) != 7 {
		t.Fatalf("Align() produced %d rows, want 7", len(rows))
	}
	checkRowSides(t, rows)

	kinds := make(map[models.DiffType]bool)
	for _, row := range rows {
		kinds[row.Kind] = true
	}
	for _, kind := range []models.DiffType{
		models.DiffUnchanged, models.DiffModified, models.DiffAdded, models.DiffRemoved,
	} {
		if !kinds[kind] {
			t.Errorf("row kind %s never produced", kind)
		}
	}
}

func TestAlignRunsSeparatedByEqual(t *testing.T) {
	// An unchanged line between the delete and the insert keeps them in
	// separate runs, so they never pair into a modified row.
	ops := []models.LineOp{
		{Type: models.OpDelete, Line: "a", OldLine: 1},
		{Type: models.OpEqual, Line: "b", OldLine: 2, NewLine: 1},
		{Type: models.OpInsert, Line: "c", NewLine: 2},
	}

	rows := Align(ops)

	kinds := []models.DiffType{models.DiffRemoved, models.DiffUnchanged, models.DiffAdded}
	if len(rows) != len(kinds) {
		t.Fatalf("Align() produced %d rows, want %d", len(rows), len(kinds))
	}
	for i, kind := range kinds {
		if rows[i].Kind != kind {
			t.Errorf("rows[%d].Kind = %s, want %s", i, rows[i].Kind, kind)
		}
	}
}

func TestAlignCellLineNumbers(t *testing.T) {
	ops, _, err := Lines(context.Background(),
		[]string{"same", "old"}, []string{"same", "new"}, LineOptions{})
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}

	rows := Align(ops)

	if len(rows) != 2 {
		t.Fatalf("Align() produced %d rows, want 2", len(rows))
	}
	unchanged := rows[0]
	if unchanged.Left.Line != 1 || unchanged.Right.Line != 1 {
		t.Errorf("unchanged row lines = (%d,%d), want (1,1)", unchanged.Left.Line, unchanged.Right.Line)
	}
	modified := rows[1]
	if modified.Left.Line != 2 || modified.Right.Line != 2 {
		t.Errorf("modified row lines = (%d,%d), want (2,2)", modified.Left.Line, modified.Right.Line)
	}
}

func TestAlignEmpty(t *testing.T) {
	if rows := Align(nil); len(rows) != 0 {
		t.Errorf("Align(nil) = %d rows, want 0", len(rows))
	}
}

// ============== GroupUnified Tests ==============

func TestGroupUnifiedSingleChange(t *testing.T) {
	old := numberedLines(9)
	new := numberedLines(9)
	new[4] = "XX"

	hunks := GroupUnified(unifyOf(t, old, new), 2)

	if len(hunks) != 1 {
		t.Fatalf("GroupUnified() produced %d hunks, want 1", len(hunks))
	}
	h := hunks[0]
	if h.OldStart != 3 || h.OldCount != 5 || h.NewStart != 3 || h.NewCount != 5 {
		t.Errorf("hunk header = -%d,%d +%d,%d, want -3,5 +3,5",
			h.OldStart, h.OldCount, h.NewStart, h.NewCount)
	}
	if len(h.Lines) != 6 {
		t.Fatalf("hunk covers %d lines, want 6", len(h.Lines))
	}
	if h.Lines[0].Content != "L03" || h.Lines[0].Type != models.UnifiedContext {
		t.Errorf("hunk starts with %+v, want context L03", h.Lines[0])
	}
	if h.Lines[2].Type != models.UnifiedRemoved || h.Lines[2].Content != "L05" {
		t.Errorf("hunk line 2 = %+v, want removed L05", h.Lines[2])
	}
	if h.Lines[3].Type != models.UnifiedAdded || h.Lines[3].Content != "XX" {
		t.Errorf("hunk line 3 = %+v, want added XX", h.Lines[3])
	}
}

func TestGroupUnifiedMergeAndSplit(t *testing.T) {
	// Two single-line changes separated by two unchanged lines.
	old := []string{"a", "b", "c", "d", "e", "f"}
	new := []string{"a", "X", "c", "d", "Y", "f"}
	lines := unifyOf(t, old, new)

	t.Run("GapWithinMergeDistance", func(t *testing.T) {
		hunks := GroupUnified(lines, 1)

		if len(hunks) != 1 {
			t.Fatalf("GroupUnified() produced %d hunks, want 1", len(hunks))
		}
		h := hunks[0]
		if h.OldStart != 1 || h.OldCount != 6 || h.NewStart != 1 || h.NewCount != 6 {
			t.Errorf("hunk header = -%d,%d +%d,%d, want -1,6 +1,6",
				h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		}
	})

	t.Run("GapBeyondMergeDistance", func(t *testing.T) {
		hunks := GroupUnified(lines, 0)

		if len(hunks) != 2 {
			t.Fatalf("GroupUnified() produced %d hunks, want 2", len(hunks))
		}
		first, second := hunks[0], hunks[1]
		if first.OldStart != 2 || first.OldCount != 1 || first.NewStart != 2 || first.NewCount != 1 {
			t.Errorf("first hunk = -%d,%d +%d,%d, want -2,1 +2,1",
				first.OldStart, first.OldCount, first.NewStart, first.NewCount)
		}
		if second.OldStart != 5 || second.OldCount != 1 || second.NewStart != 5 || second.NewCount != 1 {
			t.Errorf("second hunk = -%d,%d +%d,%d, want -5,1 +5,1",
				second.OldStart, second.OldCount, second.NewStart, second.NewCount)
		}
		for i, h := range hunks {
			if len(h.Lines) != 2 {
				t.Errorf("hunks[%d] covers %d lines, want 2 with zero context", i, len(h.Lines))
			}
		}
	})
}

func TestGroupUnifiedNoChanges(t *testing.T) {
	lines := unifyOf(t, numberedLines(5), numberedLines(5))

	if hunks := GroupUnified(lines, 3); len(hunks) != 0 {
		t.Errorf("GroupUnified() produced %d hunks for identical input, want 0", len(hunks))
	}
}

func TestGroupUnifiedNegativeContext(t *testing.T) {
	lines := unifyOf(t, []string{"a", "b", "c"}, []string{"a", "x", "c"})

	got := GroupUnified(lines, -4)
	want := GroupUnified(lines, 0)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("negative context = %+v, want same as zero context %+v", got, want)
	}
}

func TestGroupUnifiedPaddingStopsAtEdges(t *testing.T) {
	// Change on the first line: the leading context pad truncates at the
	// document start.
	lines := unifyOf(t, []string{"x", "a"}, []string{"a"})

	hunks := GroupUnified(lines, 3)

	if len(hunks) != 1 {
		t.Fatalf("GroupUnified() produced %d hunks, want 1", len(hunks))
	}
	h := hunks[0]
	if h.OldStart != 1 || h.OldCount != 2 || h.NewStart != 1 || h.NewCount != 1 {
		t.Errorf("hunk header = -%d,%d +%d,%d, want -1,2 +1,1",
			h.OldStart, h.OldCount, h.NewStart, h.NewCount)
	}
	if len(h.Lines) != 2 {
		t.Errorf("hunk covers %d lines, want 2", len(h.Lines))
	}
}
