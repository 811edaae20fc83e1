package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hvanbelle/xmldelta/pkg/config"
	"github.com/hvanbelle/xmldelta/pkg/diff"
	"github.com/hvanbelle/xmldelta/pkg/logging"
	"github.com/hvanbelle/xmldelta/pkg/output"
	"github.com/spf13/cobra"
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	Old          string
	New          string
	View         string
	Format       string
	SideBySide   bool
	Context      int
	Filter       string
	Full         bool
	Report       string
	ReportFormat string
	Progress     bool
	TableTags    []string
	FieldTags    []string
}

var compareFlags CompareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two XML documents",
		Long: `Compare two XML documents and report their differences as a
structural tree diff, a line-by-line text diff and a logical schema
diff. The exit code follows the diff convention: 0 when the documents
match, 1 when they differ, 2 on failure.`,
		RunE: runCompare,
	}

	// Required flags
	cmd.Flags().StringVar(&compareFlags.Old, "old", "", "old document path (required)")
	cmd.Flags().StringVar(&compareFlags.New, "new", "", "new document path (required)")
	cmd.MarkFlagRequired("old")
	cmd.MarkFlagRequired("new")

	// Optional flags
	cmd.Flags().StringVar(&compareFlags.View, "view", "all", "comparison view: tree, lines, schema, all")
	cmd.Flags().StringVarP(&compareFlags.Format, "format", "f", "human", "output format: human, json")
	cmd.Flags().BoolVar(&compareFlags.SideBySide, "side-by-side", false, "render the lines view in two columns")
	cmd.Flags().IntVar(&compareFlags.Context, "context", 3, "context lines around changed hunks")
	cmd.Flags().StringVar(&compareFlags.Filter, "filter", "", "show only these change types, e.g. \"added,modified\"")
	cmd.Flags().BoolVar(&compareFlags.Full, "full", false, "include unchanged nodes, lines and fields")
	cmd.Flags().StringVar(&compareFlags.Report, "report", "", "write the comparison report to file")
	cmd.Flags().StringVar(&compareFlags.ReportFormat, "report-format", "human", "report file format: human, json")
	cmd.Flags().BoolVar(&compareFlags.Progress, "progress", false, "show a progress bar during the comparison")
	cmd.Flags().StringSliceVar(&compareFlags.TableTags, "table-tags", nil, "element names treated as table definitions")
	cmd.Flags().StringSliceVar(&compareFlags.FieldTags, "field-tags", nil, "element names treated as field definitions")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("comparison failed: %w", err)
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

// buildFormatter selects the output formatter from configuration
func buildFormatter(cfg *config.Config) output.Formatter {
	switch cfg.Output.Format {
	case "json":
		return output.NewJSONFormatter()
	default:
		if cfg.Output.Progress && !cfg.Output.Quiet {
			return output.NewProgressFormatter(cfg.Output.SideBySide)
		}
		return output.NewHumanFormatter(cfg.Output.SideBySide)
	}
}

// createLogger creates a logger from the configured settings with the
// global logging flags applied on top
func createLogger(cfg *config.Config) (logging.Logger, error) {
	file := cfg.Logging.File
	if !cfg.Logging.Enabled {
		file = ""
	}
	if globalFlags.LogFile != "" {
		file = globalFlags.LogFile
	}

	// No log file means no logging
	if file == "" {
		return logging.NewNullLogger(), nil
	}

	format := cfg.Logging.Format
	if globalFlags.LogFormat != "" {
		format = globalFlags.LogFormat
	}
	level := cfg.Logging.Level
	if globalFlags.LogLevel != "" {
		level = globalFlags.LogLevel
	}

	var loggingFormat logging.Format
	switch format {
	case "text":
		loggingFormat = logging.FormatText
	default:
		loggingFormat = logging.FormatJSON
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       file,
		Format:     loggingFormat,
		Level:      logging.ParseLevel(level),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	})
}
