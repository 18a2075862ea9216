package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/lilacs/pkg/analysis"
	"github.com/edp1096/lilacs/pkg/device"
	"github.com/edp1096/lilacs/pkg/netlist"
	"github.com/edp1096/lilacs/pkg/quantity"
	"github.com/edp1096/lilacs/pkg/util"
)

var (
	// Sweep flags
	sweepNode     string
	sweepQuantity string
	sweepStart    string
	sweepStop     string
	sweepStep     string
	sweepPrint    []string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <expression>",
	Short: "Step one given quantity of a node and solve at every step",
	Long: `Step one given quantity of a node from --start to --stop and solve the
network at every step.

Examples:
  lilacs sweep --node Source1 --start 0 --stop 12 --step 3 "s(e=12) + l(r=1k) + l(r=2k)"
  lilacs sweep --node Load2 -q z --start 1k --stop 5k --step 1k -p "E(Load2)" "s(e=12) + l(r=1k) + l()"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	flags := sweepCmd.Flags()
	flags.StringVar(&sweepNode, "node", "Source1", "node whose quantity is stepped")
	flags.StringVarP(&sweepQuantity, "quantity", "q", "e", "quantity to step: e, i, z, p, c, l or f")
	flags.StringVar(&sweepStart, "start", "", "first value (SPICE suffixes allowed)")
	flags.StringVar(&sweepStop, "stop", "", "last value (SPICE suffixes allowed)")
	flags.StringVar(&sweepStep, "step", "", "increment between steps")
	flags.StringSliceVarP(&sweepPrint, "print", "p", nil,
		"results to print, e.g. I(Load1) (default: E, I and P of the network)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	root, err := netlist.ParseExpr(strings.Join(args, " "))
	if err != nil {
		return err
	}
	q, ok := quantity.Lookup(sweepQuantity)
	if !ok {
		return fmt.Errorf("unknown quantity %q", sweepQuantity)
	}
	start, stop, err := parseRange()
	if err != nil {
		return err
	}
	step, err := netlist.ParseValue(sweepStep)
	if err != nil {
		return fmt.Errorf("--step: %w", err)
	}
	return runDC(cmd.OutOrStdout(), root, sweepNode, q, start, stop, step, cfg.Verify)
}

func parseRange() (float64, float64, error) {
	start, err := netlist.ParseValue(sweepStart)
	if err != nil {
		return 0, 0, fmt.Errorf("--start: %w", err)
	}
	stop, err := netlist.ParseValue(sweepStop)
	if err != nil {
		return 0, 0, fmt.Errorf("--stop: %w", err)
	}
	return start, stop, nil
}

func analysisOptions(verify bool) []analysis.Option {
	return []analysis.Option{
		analysis.WithLogger(slog.Default()),
		analysis.WithTolerance(cfg.RelTol, cfg.AbsTol),
		analysis.WithMaxPasses(cfg.MaxPasses),
		analysis.WithVerify(verify),
	}
}

func runDC(w io.Writer, root device.Node, node string, q quantity.Quantity, start, stop, step float64, verify bool) error {
	dc := analysis.NewDCSweep(node, q, start, stop, step, analysisOptions(verify)...)
	if err := dc.Setup(root); err != nil {
		return err
	}
	if err := dc.Execute(); err != nil {
		return err
	}
	fmt.Fprintf(w, "DC sweep of %s (%d points)\n", dc.Swept(), len(dc.Points()))
	return printPoints(w, root, dc.Points(), func(v float64) string {
		return dc.Swept() + "=" + util.FormatMagnitude(v, q.Unit())
	})
}

func printPoints(w io.Writer, root device.Node, points []analysis.Point, label func(float64) string) error {
	keys := sweepPrint
	if len(keys) == 0 {
		for _, q := range []quantity.Quantity{quantity.E, quantity.I, quantity.P} {
			keys = append(keys, analysis.Key(q, root.Name()))
		}
	}

	for _, point := range points {
		fields := []string{fmt.Sprintf("%-16s", label(point.Value))}
		for _, key := range keys {
			text, err := util.FormatResult(key, point.Results)
			if err != nil {
				return err
			}
			fields = append(fields, text)
		}
		fmt.Fprintln(w, strings.Join(fields, "  "))
	}
	return nil
}
