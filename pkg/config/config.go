package config

import (
	"github.com/hvanbelle/xmldelta/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Compare     CompareConfig     `yaml:"compare"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Exclude     []string          `yaml:"exclude"`
}

// CompareConfig holds comparison-related settings
type CompareConfig struct {
	View      models.View `yaml:"view"`
	Context   int         `yaml:"context"`
	TableTags []string    `yaml:"table_tags"`
	FieldTags []string    `yaml:"field_tags"`
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	MaxWorkers  int   `yaml:"max_workers"`   // Batch mode parallelism
	MaxLCSCells int64 `yaml:"max_lcs_cells"` // Cell bound of the exact line diff
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format     string `yaml:"format"`       // "human" or "json"
	Progress   bool   `yaml:"progress"`     // Show progress bars
	Quiet      bool   `yaml:"quiet"`        // Suppress non-error output
	SideBySide bool   `yaml:"side_by_side"` // Two-column lines view
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			View:      models.ViewAll,
			Context:   3,
			TableTags: []string{"struct", "table"},
			FieldTags: []string{"entry", "field", "column"},
		},
		Performance: PerformanceConfig{
			MaxWorkers:  5,
			MaxLCSCells: 8_000_000,
		},
		Output: OutputConfig{
			Format:     "human",
			Progress:   false,
			Quiet:      false,
			SideBySide: false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "json",
			Level:   "info",
			File:    "",
		},
		Exclude: []string{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Compare.View {
	case models.ViewTree, models.ViewLines, models.ViewSchema, models.ViewAll:
	default:
		return &models.ValidationError{
			Field:   "compare.view",
			Message: "must be 'tree', 'lines', 'schema', or 'all'",
		}
	}

	if c.Compare.Context < 0 {
		return &models.ValidationError{
			Field:   "compare.context",
			Message: "must not be negative",
		}
	}

	if len(c.Compare.TableTags) == 0 {
		return &models.ValidationError{
			Field:   "compare.table_tags",
			Message: "must list at least one tag",
		}
	}

	if len(c.Compare.FieldTags) == 0 {
		return &models.ValidationError{
			Field:   "compare.field_tags",
			Message: "must list at least one tag",
		}
	}

	if c.Performance.MaxWorkers < 1 {
		return &models.ValidationError{
			Field:   "performance.max_workers",
			Message: "must be at least 1",
		}
	}

	if c.Performance.MaxLCSCells < 1024 {
		return &models.ValidationError{
			Field:   "performance.max_lcs_cells",
			Message: "must be at least 1024",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
