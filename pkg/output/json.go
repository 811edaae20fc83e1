package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/hvanbelle/xmldelta/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct {
	writer    io.Writer
	operation *models.CompareOperation
	startTime time.Time
}

// JSONReportData represents the final report data
type JSONReportData struct {
	OperationID string          `json:"operation_id,omitempty"`
	OldPath     string          `json:"old_path"`
	NewPath     string          `json:"new_path"`
	View        string          `json:"view"`
	Status      string          `json:"status"`
	Duration    string          `json:"duration"`
	DurationMs  int64           `json:"duration_ms"`
	Tree        *JSONTreeData   `json:"tree,omitempty"`
	Lines       *JSONLinesData  `json:"lines,omitempty"`
	Schema      *JSONSchemaData `json:"schema,omitempty"`
}

// JSONTreeData represents the structural diff result
type JSONTreeData struct {
	Stats   JSONTypeStats    `json:"stats"`
	Changes []JSONNodeChange `json:"changes"`
}

// JSONTypeStats represents per-type counters of one view
type JSONTypeStats struct {
	Added     int     `json:"added"`
	Removed   int     `json:"removed"`
	Modified  int     `json:"modified"`
	Unchanged int     `json:"unchanged"`
	Total     int     `json:"total"`
	Coverage  float64 `json:"coverage"`
}

// JSONNodeChange represents a single node-level change
type JSONNodeChange struct {
	Path       string           `json:"path"`
	Type       string           `json:"type"`
	OldValue   string           `json:"old_value,omitempty"`
	NewValue   string           `json:"new_value,omitempty"`
	OldTag     string           `json:"old_tag,omitempty"`
	NewTag     string           `json:"new_tag,omitempty"`
	Attributes []JSONAttrChange `json:"attributes,omitempty"`
}

// JSONAttrChange represents a single attribute-level change
type JSONAttrChange struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	OldValue string `json:"old_value,omitempty"`
	NewValue string `json:"new_value,omitempty"`
}

// JSONLinesData represents the textual diff result
type JSONLinesData struct {
	Stats       JSONLineStats `json:"stats"`
	Approximate bool          `json:"approximate"`
	Hunks       []JSONHunk    `json:"hunks"`
}

// JSONLineStats represents row counters of the lines view
type JSONLineStats struct {
	Added     int     `json:"added"`
	Removed   int     `json:"removed"`
	Modified  int     `json:"modified"`
	Unchanged int     `json:"unchanged"`
	Total     int     `json:"total"`
	Hunks     int     `json:"hunks"`
	Coverage  float64 `json:"coverage"`
}

// JSONHunk represents a grouped run of changed lines with context
type JSONHunk struct {
	OldStart int            `json:"old_start"`
	OldCount int            `json:"old_count"`
	NewStart int            `json:"new_start"`
	NewCount int            `json:"new_count"`
	Lines    []JSONHunkLine `json:"lines"`
}

// JSONHunkLine represents one line of a hunk
type JSONHunkLine struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	OldLine int    `json:"old_line,omitempty"`
	NewLine int    `json:"new_line,omitempty"`
}

// JSONSchemaData represents the logical schema diff result
type JSONSchemaData struct {
	Stats   JSONSchemaStats    `json:"stats"`
	Changes []JSONSchemaChange `json:"changes"`
}

// JSONSchemaStats represents schema slot counters
type JSONSchemaStats struct {
	Added           int     `json:"added"`
	Removed         int     `json:"removed"`
	Modified        int     `json:"modified"`
	Unchanged       int     `json:"unchanged"`
	Total           int     `json:"total"`
	Coverage        float64 `json:"coverage"`
	TablesAdded     int     `json:"tables_added"`
	TablesRemoved   int     `json:"tables_removed"`
	FieldsAdded     int     `json:"fields_added"`
	FieldsRemoved   int     `json:"fields_removed"`
	FieldsModified  int     `json:"fields_modified"`
	FieldsUnchanged int     `json:"fields_unchanged"`
}

// JSONSchemaChange represents a single schema item
type JSONSchemaChange struct {
	ID         string                `json:"id"`
	Kind       string                `json:"kind"`
	Type       string                `json:"type"`
	Table      string                `json:"table"`
	Field      string                `json:"field,omitempty"`
	FieldCount int                   `json:"field_count,omitempty"`
	Changes    []JSONFieldAttrChange `json:"changes,omitempty"`
	Def        *JSONFieldDef         `json:"def,omitempty"`
}

// JSONFieldAttrChange represents one differing field attribute
type JSONFieldAttrChange struct {
	Key      string `json:"key"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// JSONFieldDef represents a field definition snapshot
type JSONFieldDef struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Size    string `json:"size,omitempty"`
	Default string `json:"default,omitempty"`
}

// JSONBatchData represents the final batch report data
type JSONBatchData struct {
	OperationID string           `json:"operation_id,omitempty"`
	OldRoot     string           `json:"old_root"`
	NewRoot     string           `json:"new_root"`
	Status      string           `json:"status"`
	Duration    string           `json:"duration"`
	DurationMs  int64            `json:"duration_ms"`
	Stats       JSONBatchStats   `json:"stats"`
	Results     []JSONPairResult `json:"results"`
}

// JSONBatchStats represents batch counters
type JSONBatchStats struct {
	PairsScanned   int `json:"pairs_scanned"`
	PairsIdentical int `json:"pairs_identical"`
	PairsDifferent int `json:"pairs_different"`
	FilesOldOnly   int `json:"files_old_only"`
	FilesNewOnly   int `json:"files_new_only"`
	PairsFailed    int `json:"pairs_failed"`
}

// JSONPairResult represents the outcome for one file pair
type JSONPairResult struct {
	Path          string `json:"path"`
	Status        string `json:"status"`
	TreeChanges   int    `json:"tree_changes,omitempty"`
	LineHunks     int    `json:"line_hunks,omitempty"`
	SchemaChanges int    `json:"schema_changes,omitempty"`
	Approximate   bool   `json:"approximate,omitempty"`
	Error         string `json:"error,omitempty"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, operation *models.CompareOperation) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.operation = operation
	f.startTime = time.Now()
	return nil
}

// Progress reports progress during the comparison. The JSON formatter
// does not stream progress events so the output stays parseable.
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete finalizes output and writes the report as JSON
func (f *JSONFormatter) Complete(report *models.CompareReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	reportData := JSONReportData{
		OperationID: report.OperationID,
		OldPath:     report.OldPath,
		NewPath:     report.NewPath,
		View:        string(report.View),
		Status:      string(report.Status),
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
	}

	if report.Tree != nil {
		reportData.Tree = f.buildTree(report.Tree)
	}
	if report.Lines != nil {
		reportData.Lines = f.buildLines(report.Lines)
	}
	if report.Schema != nil {
		reportData.Schema = f.buildSchema(report.Schema)
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reportData)
}

func (f *JSONFormatter) buildTree(result *models.TreeResult) *JSONTreeData {
	data := &JSONTreeData{
		Stats: JSONTypeStats{
			Added:     result.Stats.Added,
			Removed:   result.Stats.Removed,
			Modified:  result.Stats.Modified,
			Unchanged: result.Stats.Unchanged,
			Total:     result.Stats.Total,
			Coverage:  result.Stats.Coverage(),
		},
		Changes: make([]JSONNodeChange, 0, len(result.Changes)),
	}

	for _, change := range result.Changes {
		if !wantRecord(f.operation, change.Type) {
			continue
		}
		node := JSONNodeChange{
			Path:     change.Path.String(),
			Type:     string(change.Type),
			OldValue: change.OldValue,
			NewValue: change.NewValue,
			OldTag:   change.OldTag,
			NewTag:   change.NewTag,
		}
		for _, attr := range change.AttrChanges {
			node.Attributes = append(node.Attributes, JSONAttrChange{
				Name:     attr.Name,
				Type:     string(attr.Type),
				OldValue: attr.OldValue,
				NewValue: attr.NewValue,
			})
		}
		data.Changes = append(data.Changes, node)
	}

	return data
}

func (f *JSONFormatter) buildLines(result *models.LineResult) *JSONLinesData {
	data := &JSONLinesData{
		Stats: JSONLineStats{
			Added:     result.Stats.Added,
			Removed:   result.Stats.Removed,
			Modified:  result.Stats.Modified,
			Unchanged: result.Stats.Unchanged,
			Total:     result.Stats.Total,
			Hunks:     result.Stats.Hunks,
			Coverage:  result.Stats.Coverage(),
		},
		Approximate: result.Approximate,
		Hunks:       make([]JSONHunk, 0, len(result.Hunks)),
	}

	for _, hunk := range result.Hunks {
		jsonHunk := JSONHunk{
			OldStart: hunk.OldStart,
			OldCount: hunk.OldCount,
			NewStart: hunk.NewStart,
			NewCount: hunk.NewCount,
			Lines:    make([]JSONHunkLine, 0, len(hunk.Lines)),
		}
		for _, line := range hunk.Lines {
			jsonHunk.Lines = append(jsonHunk.Lines, JSONHunkLine{
				Type:    string(line.Type),
				Content: line.Content,
				OldLine: line.OldLine,
				NewLine: line.NewLine,
			})
		}
		data.Hunks = append(data.Hunks, jsonHunk)
	}

	return data
}

func (f *JSONFormatter) buildSchema(result *models.SchemaResult) *JSONSchemaData {
	data := &JSONSchemaData{
		Stats: JSONSchemaStats{
			Added:           result.Stats.Added,
			Removed:         result.Stats.Removed,
			Modified:        result.Stats.Modified,
			Unchanged:       result.Stats.Unchanged,
			Total:           result.Stats.Total,
			Coverage:        result.Stats.Coverage(),
			TablesAdded:     result.Stats.TablesAdded,
			TablesRemoved:   result.Stats.TablesRemoved,
			FieldsAdded:     result.Stats.FieldsAdded,
			FieldsRemoved:   result.Stats.FieldsRemoved,
			FieldsModified:  result.Stats.FieldsModified,
			FieldsUnchanged: result.Stats.FieldsUnchanged,
		},
		Changes: make([]JSONSchemaChange, 0, len(result.Changes)),
	}

	for _, change := range result.Changes {
		if !wantRecord(f.operation, change.Type) {
			continue
		}
		item := JSONSchemaChange{
			ID:         change.ID,
			Kind:       string(change.Kind),
			Type:       string(change.Type),
			Table:      change.Table,
			Field:      change.Field,
			FieldCount: change.FieldCount,
		}
		for _, attr := range change.Changes {
			item.Changes = append(item.Changes, JSONFieldAttrChange{
				Key:      attr.Key,
				OldValue: attr.OldValue,
				NewValue: attr.NewValue,
			})
		}
		if change.Def != nil {
			item.Def = &JSONFieldDef{
				Name:    change.Def.Name,
				Type:    change.Def.Type,
				Size:    change.Def.Size,
				Default: change.Def.Default,
			}
		}
		data.Changes = append(data.Changes, item)
	}

	return data
}

// CompleteBatch finalizes output and writes the batch report as JSON
func (f *JSONFormatter) CompleteBatch(report *models.BatchReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	batchData := JSONBatchData{
		OperationID: report.OperationID,
		OldRoot:     report.OldRoot,
		NewRoot:     report.NewRoot,
		Status:      string(report.Status),
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats: JSONBatchStats{
			PairsScanned:   report.Stats.PairsScanned,
			PairsIdentical: report.Stats.PairsIdentical,
			PairsDifferent: report.Stats.PairsDifferent,
			FilesOldOnly:   report.Stats.FilesOldOnly,
			FilesNewOnly:   report.Stats.FilesNewOnly,
			PairsFailed:    report.Stats.PairsFailed,
		},
		Results: make([]JSONPairResult, 0, len(report.Results)),
	}

	for _, result := range report.Results {
		batchData.Results = append(batchData.Results, JSONPairResult{
			Path:          result.RelativePath,
			Status:        string(result.Status),
			TreeChanges:   result.TreeChanges,
			LineHunks:     result.LineHunks,
			SchemaChanges: result.SchemaChanges,
			Approximate:   result.Approximate,
			Error:         result.Error,
		})
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(batchData)
}

// Error reports an error as a JSON object
func (f *JSONFormatter) Error(err error) error {
	if f.writer == nil {
		return nil
	}
	encoder := json.NewEncoder(f.writer)
	return encoder.Encode(map[string]string{
		"status": string(models.StatusFailed),
		"error":  err.Error(),
	})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
