package models

import (
	"testing"
	"time"
)

// ============== DiffType Tests ==============

func TestDiffType(t *testing.T) {
	tests := []struct {
		typ      DiffType
		expected string
	}{
		{DiffAdded, "added"},
		{DiffRemoved, "removed"},
		{DiffModified, "modified"},
		{DiffUnchanged, "unchanged"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if string(tt.typ) != tt.expected {
				t.Errorf("DiffType = %s, want %s", string(tt.typ), tt.expected)
			}
			if !tt.typ.Valid() {
				t.Errorf("Valid() = false for %s, want true", tt.typ)
			}
		})
	}

	t.Run("InvalidType", func(t *testing.T) {
		if DiffType("renamed").Valid() {
			t.Error("Valid() should be false for unknown type")
		}
	})
}

// ============== Path Tests ==============

func TestPathString(t *testing.T) {
	t.Run("EmptyPath", func(t *testing.T) {
		if got := (Path{}).String(); got != "/" {
			t.Errorf("String() = %s, want /", got)
		}
	})

	t.Run("NestedPath", func(t *testing.T) {
		p := Path{{Tag: "catalog", Index: 0}, {Tag: "struct", Index: 2}, {Tag: "entry", Index: 1}}
		want := "/catalog[0]/struct[2]/entry[1]"
		if got := p.String(); got != want {
			t.Errorf("String() = %s, want %s", got, want)
		}
	})
}

func TestPathChild(t *testing.T) {
	root := Path{{Tag: "catalog", Index: 0}}
	child := root.Child("struct", 3)

	if len(child) != 2 {
		t.Fatalf("Child() length = %d, want 2", len(child))
	}
	if child[1].Tag != "struct" || child[1].Index != 3 {
		t.Errorf("Child() last segment = %v, want struct[3]", child[1])
	}

	// Extending the parent again must not alias the first child.
	other := root.Child("entry", 0)
	if child[1].Tag != "struct" {
		t.Errorf("Child() segment mutated to %s after second Child()", child[1].Tag)
	}
	if other[1].Tag != "entry" {
		t.Errorf("second Child() segment = %s, want entry", other[1].Tag)
	}
}

// ============== TypeFilter Tests ==============

func TestTypeFilterMatch(t *testing.T) {
	f := TypeFilter{Added: true, Modified: true}

	if !f.Match(DiffAdded) {
		t.Error("Match(added) should be true")
	}
	if f.Match(DiffRemoved) {
		t.Error("Match(removed) should be false")
	}
	if !f.Match(DiffModified) {
		t.Error("Match(modified) should be true")
	}
	if f.Match(DiffUnchanged) {
		t.Error("Match(unchanged) should always be false")
	}

	if AllTypes().Match(DiffUnchanged) {
		t.Error("unchanged must not pass even with all types enabled")
	}
}

func TestParseTypeFilter(t *testing.T) {
	t.Run("AllThree", func(t *testing.T) {
		f, err := ParseTypeFilter("added,removed,modified")
		if err != nil {
			t.Fatalf("ParseTypeFilter() error = %v, want nil", err)
		}
		if f != AllTypes() {
			t.Errorf("ParseTypeFilter() = %+v, want all types", f)
		}
	})

	t.Run("Subset", func(t *testing.T) {
		f, err := ParseTypeFilter(" removed , modified ")
		if err != nil {
			t.Fatalf("ParseTypeFilter() error = %v, want nil", err)
		}
		if f.Added || !f.Removed || !f.Modified {
			t.Errorf("ParseTypeFilter() = %+v, want removed+modified", f)
		}
	})

	t.Run("UnknownType", func(t *testing.T) {
		if _, err := ParseTypeFilter("added,renamed"); err == nil {
			t.Error("ParseTypeFilter() should fail for unknown type")
		}
	})

	t.Run("UnchangedRejected", func(t *testing.T) {
		if _, err := ParseTypeFilter("unchanged"); err == nil {
			t.Error("ParseTypeFilter() should reject unchanged")
		}
	})

	t.Run("EmptySelection", func(t *testing.T) {
		if _, err := ParseTypeFilter(""); err == nil {
			t.Error("ParseTypeFilter() should fail when nothing is selected")
		}
	})
}

func TestTypeFilterString(t *testing.T) {
	f := TypeFilter{Added: true, Modified: true}
	if got := f.String(); got != "added,modified" {
		t.Errorf("String() = %s, want added,modified", got)
	}
}

// ============== Line Model Tests ==============

func TestUnifiedTypeDiffType(t *testing.T) {
	tests := []struct {
		typ      UnifiedType
		expected DiffType
	}{
		{UnifiedContext, DiffUnchanged},
		{UnifiedAdded, DiffAdded},
		{UnifiedRemoved, DiffRemoved},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := tt.typ.DiffType(); got != tt.expected {
				t.Errorf("DiffType() = %s, want %s", got, tt.expected)
			}
		})
	}
}

// ============== Schema Model Tests ==============

func TestSchemaChangeID(t *testing.T) {
	t.Run("TableItem", func(t *testing.T) {
		id := SchemaChangeID(KindTable, DiffAdded, "Spells", "")
		if id != "table:added:Spells" {
			t.Errorf("SchemaChangeID() = %s, want table:added:Spells", id)
		}
	})

	t.Run("FieldItem", func(t *testing.T) {
		id := SchemaChangeID(KindField, DiffModified, "Spells", "cost")
		if id != "field:modified:Spells:cost" {
			t.Errorf("SchemaChangeID() = %s, want field:modified:Spells:cost", id)
		}
	})
}

// ============== Stats Tests ==============

func TestCoverage(t *testing.T) {
	t.Run("TreeStats", func(t *testing.T) {
		s := TreeStats{Added: 1, Removed: 1, Modified: 2, Unchanged: 4, Total: 8}
		if got := s.Coverage(); got != 0.5 {
			t.Errorf("Coverage() = %f, want 0.5", got)
		}
	})

	t.Run("EmptyTotal", func(t *testing.T) {
		var s LineStats
		if got := s.Coverage(); got != 0 {
			t.Errorf("Coverage() = %f, want 0 for empty stats", got)
		}
	})

	t.Run("SchemaStats", func(t *testing.T) {
		s := SchemaStats{Modified: 1, Unchanged: 3, Total: 4}
		if got := s.Coverage(); got != 0.25 {
			t.Errorf("Coverage() = %f, want 0.25", got)
		}
	})
}

// ============== Report Tests ==============

func TestStatusExitCode(t *testing.T) {
	tests := []struct {
		status   Status
		expected int
	}{
		{StatusIdentical, 0},
		{StatusDifferent, 1},
		{StatusFailed, 2},
		{StatusCancelled, 3},
		{Status("unknown"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCompareReportHasDifferences(t *testing.T) {
	t.Run("Identical", func(t *testing.T) {
		r := &CompareReport{
			Tree:  &TreeResult{Stats: TreeStats{Unchanged: 5, Total: 5}},
			Lines: &LineResult{Stats: LineStats{Unchanged: 10, Total: 10}},
		}
		if r.HasDifferences() {
			t.Error("HasDifferences() should be false for all-unchanged report")
		}
	})

	t.Run("TreeChange", func(t *testing.T) {
		r := &CompareReport{
			Tree: &TreeResult{Stats: TreeStats{Modified: 1, Unchanged: 4, Total: 5}},
		}
		if !r.HasDifferences() {
			t.Error("HasDifferences() should be true with a modified node")
		}
	})

	t.Run("SchemaOnlyChange", func(t *testing.T) {
		r := &CompareReport{
			Schema: &SchemaResult{Stats: SchemaStats{Added: 1, Total: 1}},
		}
		if !r.HasDifferences() {
			t.Error("HasDifferences() should be true with an added schema item")
		}
	})
}

// ============== View Tests ==============

func TestViewIncludes(t *testing.T) {
	if !ViewAll.Includes(ViewTree) || !ViewAll.Includes(ViewLines) || !ViewAll.Includes(ViewSchema) {
		t.Error("ViewAll should include every view")
	}
	if !ViewTree.Includes(ViewTree) {
		t.Error("a view should include itself")
	}
	if ViewTree.Includes(ViewLines) {
		t.Error("ViewTree should not include ViewLines")
	}
}

// ============== CompareOperation Tests ==============

func validOperation() *CompareOperation {
	return &CompareOperation{
		ID:          "op-123",
		OldPath:     "/data/old.xml",
		NewPath:     "/data/new.xml",
		View:        ViewAll,
		Filter:      AllTypes(),
		Context:     3,
		MaxLCSCells: 8_000_000,
		CreatedAt:   time.Now(),
	}
}

func TestCompareOperationValidate(t *testing.T) {
	t.Run("ValidOperation", func(t *testing.T) {
		op := validOperation()
		if err := op.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("EmptyOldPath", func(t *testing.T) {
		op := validOperation()
		op.OldPath = ""
		err := op.Validate()
		if err == nil {
			t.Fatal("Validate() should fail for empty old path")
		}
		if ve, ok := err.(*ValidationError); ok {
			if ve.Field != "OldPath" {
				t.Errorf("ValidationError.Field = %s, want OldPath", ve.Field)
			}
		}
	})

	t.Run("EmptyNewPath", func(t *testing.T) {
		op := validOperation()
		op.NewPath = ""
		if err := op.Validate(); err == nil {
			t.Error("Validate() should fail for empty new path")
		}
	})

	t.Run("BadView", func(t *testing.T) {
		op := validOperation()
		op.View = View("graph")
		if err := op.Validate(); err == nil {
			t.Error("Validate() should fail for unknown view")
		}
	})

	t.Run("NegativeContext", func(t *testing.T) {
		op := validOperation()
		op.Context = -1
		if err := op.Validate(); err == nil {
			t.Error("Validate() should fail for negative context")
		}
	})

	t.Run("TinyCellBound", func(t *testing.T) {
		op := validOperation()
		op.MaxLCSCells = 100
		if err := op.Validate(); err == nil {
			t.Error("Validate() should fail for a cell bound below 1024")
		}
	})

	t.Run("EmptyFilter", func(t *testing.T) {
		op := validOperation()
		op.Filter = TypeFilter{}
		if err := op.Validate(); err == nil {
			t.Error("Validate() should fail when the filter selects nothing")
		}
	})
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "TestField",
		Message: "test message",
	}

	expected := "TestField: test message"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

// ============== Batch Model Tests ==============

func TestPairStatus(t *testing.T) {
	tests := []struct {
		status   PairStatus
		expected string
	}{
		{PairIdentical, "identical"},
		{PairDifferent, "different"},
		{PairOldOnly, "old-only"},
		{PairNewOnly, "new-only"},
		{PairFailed, "failed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if string(tt.status) != tt.expected {
				t.Errorf("PairStatus = %s, want %s", string(tt.status), tt.expected)
			}
		})
	}
}

func TestBatchReportHasDifferences(t *testing.T) {
	t.Run("AllIdentical", func(t *testing.T) {
		r := &BatchReport{Stats: BatchStats{PairsScanned: 3, PairsIdentical: 3}}
		if r.HasDifferences() {
			t.Error("HasDifferences() should be false when every pair is identical")
		}
	})

	t.Run("OneSideOnly", func(t *testing.T) {
		r := &BatchReport{Stats: BatchStats{PairsScanned: 2, PairsIdentical: 1, FilesNewOnly: 1}}
		if !r.HasDifferences() {
			t.Error("HasDifferences() should be true with a new-only file")
		}
	})
}
