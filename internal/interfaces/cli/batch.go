package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/molgraph/internal/adapters/sdf"
	"github.com/turtacn/molgraph/internal/application/compare"
)

var (
	batchFile   string
	batchKind   string
	batchFormat string
)

// newBatchCmd creates the batch scoring command.
func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <reference> [candidate...]",
		Short: "Score one reference molecule against many candidates",
		Long:  "Computes the GLS score of the reference against every candidate\nconcurrently.  Candidates come from the arguments, or from --file: one\nper line (lines starting with '#' are skipped), or $$$$-delimited MOL\nblocks when the file has a .sdf extension.  A malformed candidate fails\nonly its own row.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCLIContext(cmd)
			opts := cliCtx.Options
			opts.Kind = batchKind

			candidates := make([]compare.Input, 0, len(args)-1)
			for _, text := range args[1:] {
				candidates = append(candidates, compare.Input{Text: text, Format: batchFormat})
			}
			if batchFile != "" {
				fromFile, err := readCandidateFile(batchFile)
				if err != nil {
					return err
				}
				candidates = append(candidates, fromFile...)
			}
			if len(candidates) == 0 {
				return fmt.Errorf("no candidates: pass them as arguments or via --file")
			}

			res, err := cliCtx.Service.GLSBatch(cmd.Context(),
				compare.Input{Text: args[0], Format: batchFormat}, candidates, opts)
			if err != nil {
				return err
			}
			if cliCtx.Output == "json" {
				return printJSON(res)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"#", "Candidate", "GLS", "Common", "Status"})
			for _, item := range res.Items {
				row := []string{strconv.Itoa(item.Index), candidates[item.Index].Text}
				if item.Error != "" {
					row = append(row, "-", "-", item.Error)
				} else {
					status := "ok"
					if !item.Result.Exhaustive {
						status = "budget exhausted"
					}
					row = append(row,
						fmt.Sprintf("%.4f", item.Result.Score),
						strconv.Itoa(item.Result.Common),
						status,
					)
				}
				table.Append(row)
			}
			table.Render()
			if res.Failed > 0 {
				fmt.Printf("%d of %d candidates failed\n", res.Failed, len(res.Items))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&batchFile, "file", "", "candidate file: one per line, or multi-record SDF (.sdf)")
	cmd.Flags().StringVar(&batchKind, "kind", "induced", "underlying search objective (induced, edge)")
	cmd.Flags().StringVar(&batchFormat, "format", "smiles", "format of all molecules (smiles, mol)")
	return cmd
}

// readCandidateFile loads candidates from a file: one per non-empty,
// non-comment line, or one per $$$$-delimited record for .sdf files.
func readCandidateFile(path string) ([]compare.Input, error) {
	if strings.EqualFold(filepath.Ext(path), ".sdf") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read candidate file: %w", err)
		}
		var out []compare.Input
		for _, record := range sdf.SplitRecords(string(data)) {
			out = append(out, compare.Input{Text: record, Format: "mol"})
		}
		return out, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open candidate file: %w", err)
	}
	defer f.Close()

	var out []compare.Input
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, compare.Input{Text: line, Format: batchFormat})
	}
	return out, scanner.Err()
}
