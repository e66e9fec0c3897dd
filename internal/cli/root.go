// Package cli implements the redi-records command line.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is the released version, overridden at build time.
var Version = "0.1.0"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// NewRootCommand creates the root command of the redi-records CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "redi-records",
		Short: "Inspect and run resource queries",
		Long: `redi-records translates declarative resource queries (filters, sort,
includes and pagination) into SQL against a configured database.

Filters declared with a delegate need Go code to apply them and are
skipped with a warning.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "redi-records.yaml", "path to the configuration file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error|none), overrides the configuration")

	cmd.AddCommand(NewExplainCommand(opts))
	cmd.AddCommand(NewFindCommand(opts))
	cmd.AddCommand(NewCountCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
