package main

import (
	"fmt"
	"os"

	"github.com/hvanbelle/xmldelta/internal/cli"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "xmldelta",
		Short: "Structural and textual XML comparison utility",
		Long: `xmldelta compares XML documents as element trees, as pretty-printed
text and as logical schemas. It reports added, removed and modified
nodes, line-level changes and table definition drift, for single
documents or whole directory trees.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewCompareCommand())
	rootCmd.AddCommand(cli.NewSchemaCommand())
	rootCmd.AddCommand(cli.NewBatchCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
