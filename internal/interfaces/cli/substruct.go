package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/molgraph/internal/application/compare"
)

var (
	substructPatternFormat string
	substructTargetFormat  string
)

// newSubstructCmd creates the substructure-match command.
func newSubstructCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "substruct <pattern> <target>",
		Short: "Test whether a pattern occurs as a subgraph of a molecule",
		Long:  "The pattern may be a SMARTS-style query (wildcards, element alternatives,\nany-bond) or a plain molecule used verbatim as the query.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCLIContext(cmd)
			res, err := cliCtx.Service.SubstructureMatch(cmd.Context(),
				compare.Input{Text: args[0], Format: substructPatternFormat},
				compare.Input{Text: args[1], Format: substructTargetFormat},
			)
			if err != nil {
				return err
			}
			return printMatched(cliCtx, res.Matched)
		},
	}

	cmd.Flags().StringVar(&substructPatternFormat, "pattern-format", "smarts", "format of the pattern (smarts, smiles, mol)")
	cmd.Flags().StringVar(&substructTargetFormat, "target-format", "smiles", "format of the target molecule (smiles, mol)")
	return cmd
}
