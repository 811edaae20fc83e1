package diff

import (
	"testing"

	"github.com/hvanbelle/xmldelta/pkg/models"
)

// navTypes is the shared fixture sequence: changed records sit at
// positions 1, 3, 4 and 6.
func navTypes() []models.DiffType {
	return []models.DiffType{
		models.DiffUnchanged, // 0
		models.DiffAdded,     // 1
		models.DiffUnchanged, // 2
		models.DiffRemoved,   // 3
		models.DiffModified,  // 4
		models.DiffUnchanged, // 5
		models.DiffAdded,     // 6
	}
}

// ============== NavIndex Tests ==============

func TestNavIndexCount(t *testing.T) {
	idx := NewNavIndex(navTypes(), models.AllTypes())

	if idx.Count() != 4 {
		t.Errorf("Count() = %d, want 4", idx.Count())
	}
	if idx := NewNavIndex(nil, models.AllTypes()); idx.Count() != 0 {
		t.Errorf("Count() over empty sequence = %d, want 0", idx.Count())
	}
}

func TestNavIndexOrdinalRoundTrip(t *testing.T) {
	idx := NewNavIndex(navTypes(), models.AllTypes())

	wantPositions := []int{1, 3, 4, 6}
	for ordinal, pos := range wantPositions {
		if got := idx.At(ordinal); got != pos {
			t.Errorf("At(%d) = %d, want %d", ordinal, got, pos)
		}
		if got := idx.IndexOf(pos); got != ordinal {
			t.Errorf("IndexOf(%d) = %d, want %d", pos, got, ordinal)
		}
	}
}

func TestNavIndexMisses(t *testing.T) {
	idx := NewNavIndex(navTypes(), models.AllTypes())

	// Unchanged positions carry no ordinal.
	for _, pos := range []int{0, 2, 5} {
		if got := idx.IndexOf(pos); got != -1 {
			t.Errorf("IndexOf(%d) = %d, want -1 for unchanged", pos, got)
		}
	}
	if got := idx.At(-1); got != -1 {
		t.Errorf("At(-1) = %d, want -1", got)
	}
	if got := idx.At(4); got != -1 {
		t.Errorf("At(4) = %d, want -1 past the last ordinal", got)
	}
}

func TestNavIndexNextPrev(t *testing.T) {
	idx := NewNavIndex(navTypes(), models.AllTypes())

	tests := []struct {
		name     string
		position int
		next     int
		prev     int
	}{
		{"BeforeFirst", 0, 1, -1},
		{"OnFirst", 1, 3, -1},
		{"BetweenRuns", 2, 3, 1},
		{"InsideRun", 3, 4, 1},
		{"OnLast", 6, -1, 4},
		{"PastEnd", 9, -1, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.Next(tt.position); got != tt.next {
				t.Errorf("Next(%d) = %d, want %d", tt.position, got, tt.next)
			}
			if got := idx.Prev(tt.position); got != tt.prev {
				t.Errorf("Prev(%d) = %d, want %d", tt.position, got, tt.prev)
			}
		})
	}
}

func TestNavIndexFilter(t *testing.T) {
	filter := models.TypeFilter{Added: true}
	idx := NewNavIndex(navTypes(), filter)

	if idx.Count() != 2 {
		t.Fatalf("Count() = %d, want 2 added records", idx.Count())
	}
	if idx.At(0) != 1 || idx.At(1) != 6 {
		t.Errorf("positions = (%d, %d), want (1, 6)", idx.At(0), idx.At(1))
	}

	// Filtered-out records are skipped by navigation, not just hidden.
	if got := idx.Next(1); got != 6 {
		t.Errorf("Next(1) = %d, want 6 (removed and modified skipped)", got)
	}
	if got := idx.IndexOf(3); got != -1 {
		t.Errorf("IndexOf(3) = %d, want -1 when removed is filtered out", got)
	}
	if got := idx.Filter(); got != filter {
		t.Errorf("Filter() = %+v, want %+v", got, filter)
	}
}

func TestNavIndexRebuildOnFilterChange(t *testing.T) {
	types := navTypes()

	all := NewNavIndex(types, models.AllTypes())
	narrowed := NewNavIndex(types, models.TypeFilter{Modified: true})

	if all.Count() != 4 || narrowed.Count() != 1 {
		t.Fatalf("counts = (%d, %d), want (4, 1)", all.Count(), narrowed.Count())
	}
	if narrowed.At(0) != 4 {
		t.Errorf("narrowed.At(0) = %d, want 4", narrowed.At(0))
	}

	// The wide index is untouched by building the narrow one.
	if all.IndexOf(3) != 1 {
		t.Errorf("all.IndexOf(3) = %d, want 1", all.IndexOf(3))
	}
}

func TestNavIndexEmptyFilter(t *testing.T) {
	idx := NewNavIndex(navTypes(), models.TypeFilter{})

	if idx.Count() != 0 {
		t.Errorf("Count() = %d, want 0 with nothing enabled", idx.Count())
	}
	if idx.Next(0) != -1 || idx.Prev(6) != -1 {
		t.Errorf("navigation over an empty index should return -1")
	}
}
