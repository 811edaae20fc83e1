package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hvanbelle/xmldelta/pkg/diff"
	"github.com/hvanbelle/xmldelta/pkg/models"
	"github.com/hvanbelle/xmldelta/pkg/output"
	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema command
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Compare the logical schemas of two XML documents",
		Long: `Extract table and field definitions from both documents and report
added, removed and modified tables and fields. This is equivalent to
compare --view schema.`,
		RunE: runSchema,
	}

	// Reuse compare flags for the schema view
	cmd.Flags().StringVar(&compareFlags.Old, "old", "", "old document path (required)")
	cmd.Flags().StringVar(&compareFlags.New, "new", "", "new document path (required)")
	cmd.MarkFlagRequired("old")
	cmd.MarkFlagRequired("new")

	cmd.Flags().StringVarP(&compareFlags.Format, "format", "f", "human", "output format: human, json")
	cmd.Flags().StringVar(&compareFlags.Filter, "filter", "", "show only these change types, e.g. \"added,modified\"")
	cmd.Flags().BoolVar(&compareFlags.Full, "full", false, "include unchanged fields")
	cmd.Flags().StringVar(&compareFlags.Report, "report", "", "write the comparison report to file")
	cmd.Flags().StringVar(&compareFlags.ReportFormat, "report-format", "human", "report file format: human, json")
	cmd.Flags().StringSliceVar(&compareFlags.TableTags, "table-tags", nil, "element names treated as table definitions")
	cmd.Flags().StringSliceVar(&compareFlags.FieldTags, "field-tags", nil, "element names treated as field definitions")

	return cmd
}

func runSchema(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Validate flags
	if err := validateCompareFlags(); err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyCompareFlags(cfg, cmd)

	// Force the schema view for this command
	cfg.Compare.View = models.ViewSchema

	// Create compare operation
	operation, err := createCompareOperation(cfg)
	if err != nil {
		return fmt.Errorf("failed to create compare operation: %w", err)
	}

	// Create output formatter
	formatter := buildFormatter(cfg)

	// Create logger
	logger, err := createLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Create comparison engine
	engine := diff.NewEngine(formatter, logger, operation)

	// Run comparison
	report, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("schema comparison failed: %w", err)
	}

	// Write report file if requested
	if compareFlags.Report != "" {
		if err := output.WriteReport(report, operation, compareFlags.Report, compareFlags.ReportFormat); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	// Exit with appropriate code
	os.Exit(report.Status.ExitCode())
	return nil
}
