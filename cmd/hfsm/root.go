package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/atlekbai/hfsm/internal/logging"
)

type rootOptions struct {
	verbose bool
	quiet   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "hfsm",
		Short:         "hfsm works with hierarchical state machine definitions",
		Long:          `hfsm validates YAML state machine definitions, renders them as DOT or Mermaid diagrams and simulates trigger sequences.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every firing at debug level")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Disable logging")

	cmd.AddCommand(
		newGraphCmd(opts),
		newValidateCmd(opts),
		newSimulateCmd(opts),
	)
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	if o.quiet {
		return logging.NewNop()
	}
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return logging.New(cmd.ErrOrStderr(), level)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
