package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/lilacs/pkg/analysis"
	"github.com/edp1096/lilacs/pkg/device"
	"github.com/edp1096/lilacs/pkg/netlist"
	"github.com/edp1096/lilacs/pkg/util"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Solve one network written in shorthand",
	Long: `Solve one network written in shorthand and print it.

  s(...)  source      l(...)  load        a + b   series     a / b   parallel
  series(...)(children...)                parallel(...)(children...)

Parameters: e i z r p c l f, e.g. l(r=4.7k), l(z=100-100j), s(e=12@45, f=60).

Examples:
  lilacs eval "series(e=12)(l(r=1), l(r=2))"
  lilacs eval "parallel(e=12)(l(r=6), l(r=6))"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	expr := strings.Join(args, " ")
	root, err := netlist.ParseExpr(expr)
	if err != nil {
		return err
	}
	return solveAndPrint(cmd.OutOrStdout(), root, cfg.Verify)
}

func solveAndPrint(w io.Writer, root device.Node, verify bool) error {
	op := analysis.NewOP(analysisOptions(verify)...)
	if err := op.Setup(root); err != nil {
		return err
	}
	if err := op.Execute(); err != nil {
		return err
	}

	text, err := util.FormatNode(root)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, text)
	return nil
}
