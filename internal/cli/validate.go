package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hvanbelle/xmldelta/internal/platform"
	"github.com/hvanbelle/xmldelta/pkg/config"
	"github.com/hvanbelle/xmldelta/pkg/models"
	"github.com/spf13/cobra"
)

// validateCompareFlags validates the compare and schema command flags
func validateCompareFlags() error {
	for _, flag := range []struct {
		name string
		path string
	}{
		{"old", compareFlags.Old},
		{"new", compareFlags.New},
	} {
		if err := platform.ValidatePath(flag.path); err != nil {
			return fmt.Errorf("invalid %s path: %w", flag.name, err)
		}

		info, err := os.Stat(flag.path)
		if os.IsNotExist(err) {
			return fmt.Errorf("%s document does not exist: %s", flag.name, flag.path)
		}
		if err != nil {
			return fmt.Errorf("failed to access %s document: %w", flag.name, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s document path is a directory: %s (use batch for directories)", flag.name, flag.path)
		}
	}

	compareFlags.Old = platform.NormalizePath(compareFlags.Old)
	compareFlags.New = platform.NormalizePath(compareFlags.New)

	return nil
}

// validateBatchFlags validates the batch command flags
func validateBatchFlags() error {
	for _, flag := range []struct {
		name string
		path string
	}{
		{"old-dir", batchFlags.OldDir},
		{"new-dir", batchFlags.NewDir},
	} {
		if err := platform.ValidatePath(flag.path); err != nil {
			return fmt.Errorf("invalid %s path: %w", flag.name, err)
		}

		info, err := os.Stat(flag.path)
		if os.IsNotExist(err) {
			return fmt.Errorf("%s root does not exist: %s", flag.name, flag.path)
		}
		if err != nil {
			return fmt.Errorf("failed to access %s root: %w", flag.name, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s root is not a directory: %s", flag.name, flag.path)
		}
	}

	batchFlags.OldDir = platform.NormalizePath(batchFlags.OldDir)
	batchFlags.NewDir = platform.NormalizePath(batchFlags.NewDir)

	if batchFlags.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", batchFlags.Workers)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyCompareFlags overrides config values with command-line flags.
// Only flags the user actually set take precedence.
func applyCompareFlags(cfg *config.Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("view") {
		cfg.Compare.View = models.View(compareFlags.View)
	}
	if flags.Changed("context") {
		cfg.Compare.Context = compareFlags.Context
	}
	if flags.Changed("table-tags") {
		cfg.Compare.TableTags = compareFlags.TableTags
	}
	if flags.Changed("field-tags") {
		cfg.Compare.FieldTags = compareFlags.FieldTags
	}
	if flags.Changed("format") {
		cfg.Output.Format = compareFlags.Format
	}
	if flags.Changed("side-by-side") {
		cfg.Output.SideBySide = compareFlags.SideBySide
	}
	if flags.Changed("progress") {
		cfg.Output.Progress = compareFlags.Progress
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Enable progress in verbose mode
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}
}

// createCompareOperation creates a compare operation from configuration
func createCompareOperation(cfg *config.Config) (*models.CompareOperation, error) {
	filter := models.AllTypes()
	if compareFlags.Filter != "" {
		parsed, err := models.ParseTypeFilter(compareFlags.Filter)
		if err != nil {
			return nil, err
		}
		filter = parsed
	}

	operation := &models.CompareOperation{
		ID:            uuid.New().String(),
		OldPath:       compareFlags.Old,
		NewPath:       compareFlags.New,
		View:          cfg.Compare.View,
		Filter:        filter,
		Context:       cfg.Compare.Context,
		EmitUnchanged: compareFlags.Full,
		MaxLCSCells:   cfg.Performance.MaxLCSCells,
		TableTags:     cfg.Compare.TableTags,
		FieldTags:     cfg.Compare.FieldTags,
		CreatedAt:     time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}

// createBatchOperation creates the template operation for a batch run.
// Its paths carry the two root directories; the runner derives the
// per-pair operations from it.
func createBatchOperation(cfg *config.Config) (*models.CompareOperation, error) {
	filter := models.AllTypes()
	if compareFlags.Filter != "" {
		parsed, err := models.ParseTypeFilter(compareFlags.Filter)
		if err != nil {
			return nil, err
		}
		filter = parsed
	}

	operation := &models.CompareOperation{
		ID:          uuid.New().String(),
		OldPath:     batchFlags.OldDir,
		NewPath:     batchFlags.NewDir,
		View:        cfg.Compare.View,
		Filter:      filter,
		Context:     cfg.Compare.Context,
		MaxLCSCells: cfg.Performance.MaxLCSCells,
		TableTags:   cfg.Compare.TableTags,
		FieldTags:   cfg.Compare.FieldTags,
		CreatedAt:   time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
