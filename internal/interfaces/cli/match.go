package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/molgraph/internal/application/compare"
)

var (
	matchFormatA string
	matchFormatB string
)

// newMatchCmd creates the exact-match command.
func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <molecule-a> <molecule-b>",
		Short: "Test two molecules for exact graph equality",
		Long:  "Exact match succeeds when the two molecules are the same attributed graph\nup to renumbering: same atoms, same bonds, same attributes.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCLIContext(cmd)
			res, err := cliCtx.Service.ExactMatch(cmd.Context(),
				compare.Input{Text: args[0], Format: matchFormatA},
				compare.Input{Text: args[1], Format: matchFormatB},
			)
			if err != nil {
				return err
			}
			return printMatched(cliCtx, res.Matched)
		},
	}

	cmd.Flags().StringVar(&matchFormatA, "format-a", "smiles", "format of the first molecule (smiles, mol)")
	cmd.Flags().StringVar(&matchFormatB, "format-b", "smiles", "format of the second molecule (smiles, mol)")
	return cmd
}
