package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app holds the parsed flags and shared state of one CLI invocation.
type app struct {
	configFile string
	verbose    bool
	format     string
	outputDir  string
	render     string
	timeout    time.Duration

	// plan overrides
	principal       float64
	ages            []int
	monthly         []float64
	bondPct         []float64
	bondReturn      float64
	bondVolatility  float64
	stockReturn     float64
	stockVolatility float64
	trials          int
	seed            int64
	workers         int

	csvDir string

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "portsim",
		Short: "Portfolio growth calculator and Monte Carlo simulator",
		Long: `portsim projects a bond/stock portfolio through a sequence of life phases.

Each phase sets a monthly contribution and a bond allocation; the rest is held
in stocks. "calculate" shows the year-by-year ledger for one market path and
"simulate" runs many random paths and reports percentile outcomes with their
annualized returns.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "Plan file (YAML); flags override its values")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVarP(&a.format, "format", "f", "console", "Output format (see 'portsim formats')")
	pf.StringVarP(&a.outputDir, "output", "o", "", "Write the report to a timestamped file in this directory instead of stdout")
	pf.StringVar(&a.render, "render", "", "Render markdown output in the terminal with a glamour style (dark, light, notty)")
	pf.DurationVar(&a.timeout, "timeout", 5*time.Minute, "Operation timeout")

	pf.Float64Var(&a.principal, "principal", 0, "Starting balance")
	pf.IntSliceVar(&a.ages, "ages", nil, "Phase start ages followed by the final age, e.g. 30,45,67")
	pf.Float64SliceVar(&a.monthly, "monthly", nil, "Monthly contribution of each phase")
	pf.Float64SliceVar(&a.bondPct, "bond", nil, "Bond allocation percent of each phase")
	pf.Float64Var(&a.bondReturn, "bond-return", 0, "Expected yearly bond return, percent")
	pf.Float64Var(&a.bondVolatility, "bond-volatility", 0, "Yearly bond return standard deviation, percent")
	pf.Float64Var(&a.stockReturn, "stock-return", 0, "Expected yearly stock return, percent")
	pf.Float64Var(&a.stockVolatility, "stock-volatility", 0, "Yearly stock return standard deviation, percent")
	pf.IntVar(&a.trials, "trials", 0, "Number of Monte Carlo trials")
	pf.Int64Var(&a.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	pf.IntVar(&a.workers, "workers", 0, "Monte Carlo workers (0 uses all CPUs)")

	root.AddCommand(
		newCalculateCmd(a),
		newSimulateCmd(a),
		newInitCmd(a),
		newValidateCmd(a),
		newFormatsCmd(),
	)
	return root
}
