package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/molgraph/internal/application/compare"
)

var (
	renderFormat string
	renderOutput string
	renderFile   string
)

// newRenderCmd creates the molecule rendering command.
func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <molecule>",
		Short: "Render a molecule as Graphviz DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCLIContext(cmd)
			in := compare.Input{Text: args[0], Format: renderFormat}

			var data []byte
			switch renderOutput {
			case "dot":
				dot, err := cliCtx.Service.RenderDOT(cmd.Context(), in)
				if err != nil {
					return err
				}
				data = []byte(dot)
			case "svg":
				svg, err := cliCtx.Service.RenderSVG(cmd.Context(), in)
				if err != nil {
					return err
				}
				data = svg
			default:
				return fmt.Errorf("unknown render output %q (want dot or svg)", renderOutput)
			}

			if renderFile == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			return os.WriteFile(renderFile, data, 0o644)
		},
	}

	cmd.Flags().StringVar(&renderFormat, "format", "smiles", "molecule format (smiles, mol)")
	cmd.Flags().StringVar(&renderOutput, "render-as", "dot", "render output (dot, svg)")
	cmd.Flags().StringVar(&renderFile, "out", "", "write output to this file instead of stdout")
	return cmd
}
