package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlekbai/hfsm/definition"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <definition.yaml>...",
		Short: "Check definitions for consistency",
		Long:  `Loads each definition and reports undeclared states, self permits, duplicate triggers and superstate cycles.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger(cmd)
			var failed int
			for _, path := range args {
				def, err := definition.Load(path)
				if err != nil {
					failed++
					logger.Error("definition is invalid", "path", path, "error", err)
					fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid\n", path)
					continue
				}
				logger.Debug("definition is valid", "path", path, "states", len(def.States))
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failed > 0 {
				return errors.New(pluralize(failed, "definition") + " failed validation")
			}
			return nil
		},
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
