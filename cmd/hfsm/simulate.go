package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlekbai/hfsm"
	"github.com/atlekbai/hfsm/definition"
)

func newSimulateCmd(root *rootOptions) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "simulate <definition.yaml> <trigger>...",
		Short: "Fire a sequence of triggers from the initial state",
		Long:  `Builds the definition, fires each trigger in order and prints the state after every firing.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := definition.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sm, err := def.NewStateMachine(
				hfsm.WithLogger(root.logger(cmd)),
				hfsm.WithHooks(hfsm.Hooks{OnFire: func(e hfsm.FireEvent) {
					switch e.Outcome {
					case hfsm.OutcomeTransitioned:
						fmt.Fprintf(out, "%v --%v--> %v\n", e.Source, e.Trigger, e.Destination)
					case hfsm.OutcomeIgnored:
						fmt.Fprintf(out, "%v ignores %v\n", e.Source, e.Trigger)
					default:
						fmt.Fprintf(out, "%v cannot fire %v: %v\n", e.Source, e.Trigger, e.Err)
					}
				}}),
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "initial state: %s\n", sm.State(nil))
			for _, trigger := range args[1:] {
				if err := sm.Fire(trigger, nil); err != nil && !keepGoing {
					return fmt.Errorf("simulation stopped in state %q: %w", sm.State(nil), err)
				}
			}
			fmt.Fprintf(out, "final state: %s\n", sm.State(nil))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "Continue after a trigger fails")
	return cmd
}
