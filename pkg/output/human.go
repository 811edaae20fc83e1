package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/hvanbelle/xmldelta/pkg/models"
	"golang.org/x/term"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer     io.Writer
	operation  *models.CompareOperation
	sideBySide bool
	termWidth  int
	startTime  time.Time

	added    *color.Color
	removed  *color.Color
	modified *color.Color
	header   *color.Color
}

// NewHumanFormatter creates a new human-readable formatter. With
// sideBySide set the lines view renders as two columns instead of
// unified hunks.
func NewHumanFormatter(sideBySide bool) *HumanFormatter {
	return &HumanFormatter{
		sideBySide: sideBySide,
		added:      color.New(color.FgGreen),
		removed:    color.New(color.FgRed),
		modified:   color.New(color.FgYellow),
		header:     color.New(color.FgCyan),
	}
}

// newPlainFormatter creates a human formatter with colors disabled,
// for writing report files.
func newPlainFormatter() *HumanFormatter {
	f := NewHumanFormatter(false)
	for _, c := range []*color.Color{f.added, f.removed, f.modified, f.header} {
		c.DisableColor()
	}
	return f
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, operation *models.CompareOperation) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.operation = operation
	f.startTime = time.Now()

	// Terminal width drives the side-by-side column split; 120 covers
	// pipes and redirects where detection fails
	f.termWidth = 120
	if file, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			f.termWidth = width
		}
	}

	return nil
}

// Progress reports progress during the comparison. The human formatter
// stays quiet until the report is ready; live feedback is the progress
// formatter's job.
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete finalizes output and renders the comparison report
func (f *HumanFormatter) Complete(report *models.CompareReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	fmt.Fprintf(f.writer, "Comparing %s (old) with %s (new)\n", report.OldPath, report.NewPath)

	if report.Tree != nil {
		f.writeTree(report.Tree)
	}
	if report.Lines != nil {
		f.writeLines(report.Lines)
	}
	if report.Schema != nil {
		f.writeSchema(report.Schema)
	}

	fmt.Fprintf(f.writer, "\nStatus: %s (%s)\n", report.Status, report.Duration.Round(time.Millisecond))

	return nil
}

// writeTree renders the structural diff section
func (f *HumanFormatter) writeTree(result *models.TreeResult) {
	stats := result.Stats

	fmt.Fprintf(f.writer, "\n")
	f.header.Fprintf(f.writer, "Tree: %d added, %d removed, %d modified", stats.Added, stats.Removed, stats.Modified)
	fmt.Fprintf(f.writer, " (%d nodes, %.1f%% changed)\n", stats.Total, stats.Coverage()*100)

	for _, change := range result.Changes {
		if !wantRecord(f.operation, change.Type) {
			continue
		}

		switch change.Type {
		case models.DiffAdded:
			f.added.Fprintf(f.writer, "  + %s", change.Path)
			if change.NewValue != "" {
				fmt.Fprintf(f.writer, "  %q", change.NewValue)
			}
			fmt.Fprintf(f.writer, "\n")

		case models.DiffRemoved:
			f.removed.Fprintf(f.writer, "  - %s", change.Path)
			if change.OldValue != "" {
				fmt.Fprintf(f.writer, "  %q", change.OldValue)
			}
			fmt.Fprintf(f.writer, "\n")

		case models.DiffModified:
			f.modified.Fprintf(f.writer, "  ~ %s", change.Path)
			fmt.Fprintf(f.writer, "\n")
			if change.OldTag != "" || change.NewTag != "" {
				fmt.Fprintf(f.writer, "      tag: %s -> %s\n", change.OldTag, change.NewTag)
			}
			if change.OldValue != change.NewValue {
				fmt.Fprintf(f.writer, "      text: %q -> %q\n", change.OldValue, change.NewValue)
			}
			for _, attr := range change.AttrChanges {
				switch attr.Type {
				case models.DiffAdded:
					fmt.Fprintf(f.writer, "      attr %s: added %q\n", attr.Name, attr.NewValue)
				case models.DiffRemoved:
					fmt.Fprintf(f.writer, "      attr %s: removed %q\n", attr.Name, attr.OldValue)
				default:
					fmt.Fprintf(f.writer, "      attr %s: %q -> %q\n", attr.Name, attr.OldValue, attr.NewValue)
				}
			}

		case models.DiffUnchanged:
			fmt.Fprintf(f.writer, "    %s\n", change.Path)
		}
	}
}

// writeLines renders the textual diff section
func (f *HumanFormatter) writeLines(result *models.LineResult) {
	stats := result.Stats

	fmt.Fprintf(f.writer, "\n")
	f.header.Fprintf(f.writer, "Lines: %d added, %d removed, %d modified", stats.Added, stats.Removed, stats.Modified)
	fmt.Fprintf(f.writer, " (%d rows, %d hunks)\n", stats.Total, stats.Hunks)
	if result.Approximate {
		fmt.Fprintf(f.writer, "  note: input exceeded the exact diff bound, changes are approximate\n")
	}

	if f.sideBySide {
		f.writeRows(result.Rows)
		return
	}

	if f.operation != nil && f.operation.EmitUnchanged {
		for _, line := range result.Unified {
			f.writeUnifiedLine(line)
		}
		return
	}

	for _, hunk := range result.Hunks {
		f.header.Fprintf(f.writer, "  @@ -%d,%d +%d,%d @@\n", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
		for _, line := range hunk.Lines {
			f.writeUnifiedLine(line)
		}
	}
}

func (f *HumanFormatter) writeUnifiedLine(line models.UnifiedLine) {
	switch line.Type {
	case models.UnifiedAdded:
		f.added.Fprintf(f.writer, "  +%s\n", line.Content)
	case models.UnifiedRemoved:
		f.removed.Fprintf(f.writer, "  -%s\n", line.Content)
	default:
		fmt.Fprintf(f.writer, "   %s\n", line.Content)
	}
}

// writeRows renders the side-by-side view. Unchanged rows appear only
// in the full listing.
func (f *HumanFormatter) writeRows(rows []models.AlignedRow) {
	full := f.operation != nil && f.operation.EmitUnchanged

	// Two content columns plus line number gutters and the marker
	colWidth := (f.termWidth - 16) / 2
	if colWidth < 20 {
		colWidth = 20
	}

	for _, row := range rows {
		if row.Kind == models.DiffUnchanged && !full {
			continue
		}

		var leftNum, rightNum, leftText, rightText string
		if row.Left != nil {
			leftNum = fmt.Sprintf("%d", row.Left.Line)
			leftText = row.Left.Content
		}
		if row.Right != nil {
			rightNum = fmt.Sprintf("%d", row.Right.Line)
			rightText = row.Right.Content
		}

		marker := " "
		style := (*color.Color)(nil)
		switch row.Kind {
		case models.DiffAdded:
			marker = ">"
			style = f.added
		case models.DiffRemoved:
			marker = "<"
			style = f.removed
		case models.DiffModified:
			marker = "|"
			style = f.modified
		}

		text := fmt.Sprintf("  %4s %-*s %s %4s %s",
			leftNum, colWidth, clip(leftText, colWidth), marker, rightNum, clip(rightText, colWidth))
		if style != nil {
			style.Fprintln(f.writer, text)
		} else {
			fmt.Fprintln(f.writer, text)
		}
	}
}

// writeSchema renders the logical schema diff section
func (f *HumanFormatter) writeSchema(result *models.SchemaResult) {
	stats := result.Stats

	fmt.Fprintf(f.writer, "\n")
	f.header.Fprintf(f.writer, "Schema: %d added, %d removed, %d modified", stats.Added, stats.Removed, stats.Modified)
	fmt.Fprintf(f.writer, " (%d items, %.1f%% changed)\n", stats.Total, stats.Coverage()*100)

	for _, change := range result.Changes {
		if !wantRecord(f.operation, change.Type) {
			continue
		}

		if change.Kind == models.KindTable {
			switch change.Type {
			case models.DiffAdded:
				f.added.Fprintf(f.writer, "  + table %s", change.Table)
			case models.DiffRemoved:
				f.removed.Fprintf(f.writer, "  - table %s", change.Table)
			}
			fmt.Fprintf(f.writer, " (%d fields)\n", change.FieldCount)
			continue
		}

		name := change.Table + "." + change.Field
		switch change.Type {
		case models.DiffAdded:
			f.added.Fprintf(f.writer, "  + field %s", name)
			if summary := fieldSummary(change.Def); summary != "" {
				fmt.Fprintf(f.writer, "  %s", summary)
			}
			fmt.Fprintf(f.writer, "\n")
		case models.DiffRemoved:
			f.removed.Fprintf(f.writer, "  - field %s", name)
			if summary := fieldSummary(change.Def); summary != "" {
				fmt.Fprintf(f.writer, "  %s", summary)
			}
			fmt.Fprintf(f.writer, "\n")
		case models.DiffModified:
			f.modified.Fprintf(f.writer, "  ~ field %s", name)
			fmt.Fprintf(f.writer, "\n")
			for _, attr := range change.Changes {
				fmt.Fprintf(f.writer, "      %s: %q -> %q\n", attr.Key, attr.OldValue, attr.NewValue)
			}
		case models.DiffUnchanged:
			fmt.Fprintf(f.writer, "    field %s\n", name)
		}
	}
}

// CompleteBatch finalizes output and renders a batch report
func (f *HumanFormatter) CompleteBatch(report *models.BatchReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	fmt.Fprintf(f.writer, "Comparing directory %s (old) with %s (new)\n\n", report.OldRoot, report.NewRoot)

	for _, result := range report.Results {
		switch result.Status {
		case models.PairDifferent:
			f.modified.Fprintf(f.writer, "~ %s", result.RelativePath)
			fmt.Fprintf(f.writer, "  %s\n", pairSummary(result))
		case models.PairOldOnly:
			f.removed.Fprintf(f.writer, "- %s", result.RelativePath)
			fmt.Fprintf(f.writer, "  only in old\n")
		case models.PairNewOnly:
			f.added.Fprintf(f.writer, "+ %s", result.RelativePath)
			fmt.Fprintf(f.writer, "  only in new\n")
		case models.PairFailed:
			fmt.Fprintf(f.writer, "! %s  %s\n", result.RelativePath, result.Error)
		}
	}

	fmt.Fprintf(f.writer, "\nSummary:\n")
	fmt.Fprintf(f.writer, "  Pairs compared: %d\n", report.Stats.PairsScanned)
	fmt.Fprintf(f.writer, "  Identical:      %d\n", report.Stats.PairsIdentical)
	fmt.Fprintf(f.writer, "  Different:      %d\n", report.Stats.PairsDifferent)
	fmt.Fprintf(f.writer, "  Only in old:    %d\n", report.Stats.FilesOldOnly)
	fmt.Fprintf(f.writer, "  Only in new:    %d\n", report.Stats.FilesNewOnly)
	fmt.Fprintf(f.writer, "  Failed:         %d\n", report.Stats.PairsFailed)
	fmt.Fprintf(f.writer, "\nStatus: %s (%s)\n", report.Status, report.Duration.Round(time.Millisecond))

	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// wantRecord applies the operation's type filter to a record. Unchanged
// records pass only when the operation asked for the full listing.
func wantRecord(operation *models.CompareOperation, t models.DiffType) bool {
	if t == models.DiffUnchanged {
		return operation != nil && operation.EmitUnchanged
	}
	if operation == nil {
		return true
	}
	return operation.Filter.Match(t)
}

// pairSummary builds the per-pair change counts for batch output
func pairSummary(result models.PairResult) string {
	var parts []string
	if result.TreeChanges > 0 {
		parts = append(parts, fmt.Sprintf("%d nodes", result.TreeChanges))
	}
	if result.LineHunks > 0 {
		parts = append(parts, fmt.Sprintf("%d hunks", result.LineHunks))
	}
	if result.SchemaChanges > 0 {
		parts = append(parts, fmt.Sprintf("%d schema items", result.SchemaChanges))
	}
	if result.Approximate {
		parts = append(parts, "approximate")
	}
	if len(parts) == 0 {
		return "differs"
	}
	return strings.Join(parts, ", ")
}

// fieldSummary renders the non-empty attributes of a field definition
func fieldSummary(def *models.FieldDef) string {
	if def == nil {
		return ""
	}
	var parts []string
	if def.Type != "" {
		parts = append(parts, "type="+def.Type)
	}
	if def.Size != "" {
		parts = append(parts, "size="+def.Size)
	}
	if def.Default != "" {
		parts = append(parts, "default="+def.Default)
	}
	return strings.Join(parts, " ")
}

// clip shortens a cell to the column width
func clip(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
