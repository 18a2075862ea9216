package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/edp1096/lilacs/internal/config"
)

var (
	// Global flags
	verbose  bool
	logLevel string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lilacs",
	Short: "Series/parallel network solver",
	Long: `Solve networks of sources and loads combined in series and parallel.
Give a few voltages, currents, impedances, powers, capacitances, inductances
or frequencies and every quantity that follows from them is filled in.

Examples:
  lilacs eval "s(e=12) + (l(r=9) / l(r=9) / l(r=9)) + l(r=3)"
  lilacs eval --verify "s(e=120, f=60) + l(r=24.1k) + l(c=110n)"
  lilacs solve divider.net
  lilacs sweep --start 6 --stop 12 --step 2 "s(e=12) + l(r=4) + l(r=2)"`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	var err error
	if cfg, err = config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		cfg = config.Default()
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&cfg.Verify, "verify", cfg.Verify, "check every solved network against all laws")
	flags.Float64Var(&cfg.RelTol, "rel-tol", cfg.RelTol, "relative tolerance for verification")
	flags.Float64Var(&cfg.AbsTol, "abs-tol", cfg.AbsTol, "absolute tolerance for verification")
	flags.IntVar(&cfg.MaxPasses, "max-passes", cfg.MaxPasses, "pass limit per network (0 = automatic)")
	flags.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored log output")
}

func setup(cmd *cobra.Command, args []string) error {
	if logLevel != "" {
		level, err := config.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	if verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      cfg.LogLevel,
			TimeFormat: "15:04:05",
			NoColor:    cfg.NoColor,
		}),
	))
	return nil
}
