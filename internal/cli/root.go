package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with values
// injected via ldflags at build time.
//
// Parameters:
//   - v: semantic version string (e.g., "v1.2.3")
//   - c: git commit SHA (short or long form)
//   - d: build timestamp (e.g., "2026-08-31T14:32:01Z")
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the coursemap CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (sanitize, stats,
// layout, render, node, share, serve, catalog), configures logging based on
// the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext. The given ctx carries cancellation from the caller, so
// long-running commands like serve stop on interrupt.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "coursemap",
		Short:        "Coursemap edits and serves visual course graphs",
		Long:         `Coursemap is a CLI tool for working with graph documents of the visual course builders: repairing them, computing path statistics and auto-layouts, rendering diagrams, and managing expiring share links.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("coursemap %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSanitizeCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newNodeCmd())
	root.AddCommand(newShareCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
