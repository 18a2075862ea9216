package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/edp1096/lilacs/pkg/netlist"
)

var showSource bool

var solveCmd = &cobra.Command{
	Use:   "solve <netlist-file>",
	Short: "Solve every network in a netlist file",
	Long: `Solve every network in a netlist file.

The first line is the title. Lines starting with '*' are comments, lines
starting with '+' continue the previous one, and every other line is one
network in shorthand. '.verify' checks every network, '.end' stops reading.
'.dc <node> [quantity] <start> <stop> <step>' sweeps every network instead of
solving it once.

Examples:
  lilacs solve divider.net
  lilacs solve --source --verify filters.net`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().BoolVarP(&showSource, "source", "s", false,
		"print each network's expression before its result")
}

func runSolve(cmd *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read netlist: %w", err)
	}

	data, err := netlist.Parse(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	slog.Debug("netlist parsed", "file", filename, "title", data.Title, "networks", len(data.Networks))

	w := cmd.OutOrStdout()
	if data.Title != "" {
		fmt.Fprintf(w, "* %s\n", data.Title)
	}
	for i, network := range data.Networks {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if showSource {
			fmt.Fprintf(w, "> %s\n", network.Expr)
		}
		verify := cfg.Verify || data.Verify
		switch data.Analysis {
		case netlist.AnalysisDC:
			p := data.DCParam
			err = runDC(w, network.Root, p.Node, p.Quantity, p.Start, p.Stop, p.Increment, verify)
		default:
			err = solveAndPrint(w, network.Root, verify)
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", network.Line, err)
		}
	}
	return nil
}
