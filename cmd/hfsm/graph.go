package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/atlekbai/hfsm/definition"
	"github.com/atlekbai/hfsm/graph"
)

func newGraphCmd(root *rootOptions) *cobra.Command {
	var (
		format    string
		direction string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "graph <definition.yaml>",
		Short: "Render a definition as a diagram",
		Long:  `Renders the states and fixed transitions of a definition in DOT (Graphviz) or Mermaid syntax.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := graphStyle(format, direction)
			if err != nil {
				return err
			}

			def, err := definition.Load(args[0])
			if err != nil {
				return err
			}
			info, err := def.Info()
			if err != nil {
				return err
			}

			render := func(w io.Writer) error { return graph.Write(w, info, style) }
			if output == "" {
				err = render(cmd.OutOrStdout())
			} else {
				var f *os.File
				if f, err = os.Create(output); err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				err = writeAndClose(f, render)
			}
			if err != nil {
				return err
			}
			root.logger(cmd).Debug("graph rendered", "definition", args[0], "format", format, "states", len(info.States))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "Mermaid direction: TB, BT, LR or RL")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func graphStyle(format, direction string) (graph.StyleFactory, error) {
	switch format {
	case "dot":
		if direction != "" {
			return nil, fmt.Errorf("--direction applies to the mermaid format only")
		}
		return graph.UmlDot(), nil
	case "mermaid":
		if direction == "" {
			return graph.Mermaid(nil), nil
		}
		d, err := graph.ParseMermaidGraphDirection(direction)
		if err != nil {
			return nil, err
		}
		return graph.Mermaid(&d), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want dot or mermaid)", format)
	}
}

// writeAndClose runs write against wc and closes it. A close error is
// returned when write succeeded, since buffered data may not have been flushed.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()
	return write(wc)
}
