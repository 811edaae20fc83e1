package output

import (
	"fmt"
	"os"

	"github.com/hvanbelle/xmldelta/pkg/models"
)

// WriteReport writes the comparison report to a file
// Format can be "human" or "json"
func WriteReport(report *models.CompareReport, operation *models.CompareOperation, path string, format string) error {
	if !report.HasDifferences() {
		// No differences - don't create an empty report file
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	formatter := fileFormatter(format)
	if err := formatter.Start(file, operation); err != nil {
		return err
	}
	return formatter.Complete(report)
}

// WriteBatchReport writes the batch report to a file
// Format can be "human" or "json"
func WriteBatchReport(report *models.BatchReport, path string, format string) error {
	if !report.HasDifferences() {
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	formatter := fileFormatter(format)
	if err := formatter.Start(file, nil); err != nil {
		return err
	}
	return formatter.CompleteBatch(report)
}

// fileFormatter returns a formatter suitable for plain files
func fileFormatter(format string) Formatter {
	if format == "json" {
		return NewJSONFormatter()
	}
	return newPlainFormatter()
}
