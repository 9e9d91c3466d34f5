package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/molgraph/internal/application/compare"
)

var inspectFormat string

// newInspectCmd creates the molecule inspection command.
func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <molecule>",
		Short: "Show parsed properties of a molecule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCLIContext(cmd)
			info, err := cliCtx.Service.Inspect(cmd.Context(),
				compare.Input{Text: args[0], Format: inspectFormat})
			if err != nil {
				return err
			}
			if cliCtx.Output == "json" {
				return printJSON(info)
			}

			fmt.Printf("atoms:          %d\n", info.Atoms)
			fmt.Printf("bonds:          %d\n", info.Bonds)
			fmt.Printf("ring atoms:     %d\n", info.RingAtoms)
			fmt.Printf("aromatic atoms: %d\n", info.AromaticAtoms)
			fmt.Printf("weight:         %.3f\n", info.Weight)
			fmt.Printf("key:            %s\n", info.Key)
			return nil
		},
	}

	cmd.Flags().StringVar(&inspectFormat, "format", "smiles", "molecule format (smiles, mol)")
	return cmd
}
