package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hvanbelle/xmldelta/pkg/batch"
	"github.com/hvanbelle/xmldelta/pkg/output"
	"github.com/spf13/cobra"
)

// BatchFlags holds batch command flags
type BatchFlags struct {
	OldDir  string
	NewDir  string
	Exclude []string
	Workers int
}

var batchFlags BatchFlags

// NewBatchCommand creates the batch command
func NewBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Compare two directory trees of XML documents",
		Long: `Discover XML files under both roots, pair them by relative path and
compare each pair in parallel. Byte-identical pairs are skipped via a
content check before the full comparison runs.`,
		RunE: runBatch,
	}

	// Required flags
	cmd.Flags().StringVar(&batchFlags.OldDir, "old-dir", "", "old root directory (required)")
	cmd.Flags().StringVar(&batchFlags.NewDir, "new-dir", "", "new root directory (required)")
	cmd.MarkFlagRequired("old-dir")
	cmd.MarkFlagRequired("new-dir")

	// Optional flags
	cmd.Flags().StringSliceVar(&batchFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().IntVarP(&batchFlags.Workers, "workers", "w", 0, "number of parallel workers (default: 5)")
	cmd.Flags().StringVar(&compareFlags.View, "view", "all", "comparison view: tree, lines, schema, all")
	cmd.Flags().StringVarP(&compareFlags.Format, "format", "f", "human", "output format: human, json")
	cmd.Flags().IntVar(&compareFlags.Context, "context", 3, "context lines around changed hunks")
	cmd.Flags().StringVar(&compareFlags.Filter, "filter", "", "show only these change types, e.g. \"added,modified\"")
	cmd.Flags().StringVar(&compareFlags.Report, "report", "", "write the batch report to file")
	cmd.Flags().StringVar(&compareFlags.ReportFormat, "report-format", "human", "report file format: human, json")
	cmd.Flags().BoolVar(&compareFlags.Progress, "progress", false, "show a progress bar while pairs are compared")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Validate flags
	if err := validateBatchFlags(); err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyCompareFlags(cfg, cmd)
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = batchFlags.Exclude
	}
	if batchFlags.Workers > 0 {
		cfg.Performance.MaxWorkers = batchFlags.Workers
	}

	// Create the template operation for per-pair comparisons
	operation, err := createBatchOperation(cfg)
	if err != nil {
		return fmt.Errorf("failed to create batch operation: %w", err)
	}

	// Create output formatter
	formatter := buildFormatter(cfg)

	// Create logger
	logger, err := createLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Create batch runner
	runnerConfig := batch.DefaultRunnerConfig()
	runnerConfig.MaxWorkers = cfg.Performance.MaxWorkers
	runner := batch.NewRunner(formatter, logger, operation, cfg.Exclude, runnerConfig)

	// Run batch comparison
	report, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("batch comparison failed: %w", err)
	}

	// Write report file if requested
	if compareFlags.Report != "" {
		if err := output.WriteBatchReport(report, compareFlags.Report, compareFlags.ReportFormat); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	// Exit with appropriate code
	os.Exit(report.Status.ExitCode())
	return nil
}
