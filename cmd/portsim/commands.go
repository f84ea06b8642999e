package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/config"
	"github.com/rpgo/portfolio-simulator/internal/domain"
	"github.com/rpgo/portfolio-simulator/internal/output"
)

func newCalculateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "calculate",
		Short: "Show the year-by-year ledger for a single market path",
		Long: `Projects the plan over one drawn market path and prints the ledger of
every phase. With zero volatility the path, and so the ledger, is exact.`,
		Example: `  portsim calculate --principal 1000 --ages 30,31 --monthly 100 --bond 50 \
    --bond-return 5 --bond-volatility 0 --stock-return 5 --stock-volatility 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, domain.ModeCalculate)
		},
	}
}

func newSimulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run Monte Carlo trials and report percentile outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, domain.ModeSimulate)
		},
	}
	cmd.Flags().StringVar(&a.csvDir, "csv-dir", "", "Also write summary, percentile and distribution CSV files to this directory")
	return cmd
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init [file]",
		Short: "Write an example plan file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "portfolio.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			if _, err := os.Stat(filename); err == nil {
				return fmt.Errorf("%s already exists", filename)
			}
			parser := config.NewInputParser()
			if err := parser.SaveConfiguration(parser.CreateExampleConfiguration(), filename); err != nil {
				return err
			}
			a.logger.Info("wrote example plan", zap.String("file", filename))
			fmt.Fprintf(cmd.OutOrStdout(), "Example plan written to %s\n", filename)
			return nil
		},
	}
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a plan file without running it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.configFile = args[0]
			}
			if a.configFile == "" {
				return fmt.Errorf("no plan file given (pass it as an argument or with --config)")
			}
			plan, err := a.buildPlan(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d phase(s), ages %d-%d, %d trials\n",
				a.configFile, len(plan.Schedule.Phases), plan.Schedule.StartAge(), plan.Schedule.EndAge(), plan.Simulation.Trials)
			return nil
		},
	}
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the available output formats and aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Formats:")
			for _, name := range output.AvailableFormatterNames() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintln(out, "  all (writes console, detailed-csv and json; needs --output)")
			fmt.Fprintln(out, "Aliases:")
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(out, "  %s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
			return nil
		},
	}
}

// run executes one mode end to end: plan, engine, report.
func (a *app) run(cmd *cobra.Command, mode string) error {
	plan, err := a.buildPlan(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := calculation.NewCalculationEngine()
	engine.Debug = a.verbose
	engine.Workers = a.workers
	engine.SetLogger(a.logger.Sugar())

	a.logger.Debug("running plan",
		zap.String("mode", mode),
		zap.Ints("ages", plan.Schedule.Ages()),
		zap.Int("trials", plan.Simulation.Trials))
	report, err := engine.Run(ctx, plan, mode)
	if err != nil {
		return err
	}

	if a.csvDir != "" && report.Summary != nil {
		mc := &output.MonteCarloCSVReport{Summary: report.Summary, Plan: plan}
		if err := mc.GenerateAllCSVReports(a.csvDir); err != nil {
			return err
		}
		a.logger.Info("wrote Monte Carlo CSV files", zap.String("dir", a.csvDir))
	}

	return a.emit(cmd, report)
}

func (a *app) emit(cmd *cobra.Command, report *domain.Report) error {
	if a.outputDir != "" {
		files, err := output.GenerateReport(report, a.format, a.outputDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
		}
		return nil
	}

	if output.NormalizeFormatName(a.format) == "all" {
		return fmt.Errorf("format \"all\" writes several files and needs --output")
	}
	if a.render == "" {
		return output.WriteReport(cmd.OutOrStdout(), report, a.format)
	}

	var md bytes.Buffer
	if err := output.WriteReport(&md, report, "markdown"); err != nil {
		return err
	}
	rendered, err := output.RenderMarkdown(md.Bytes(), a.render, 120)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(rendered)
	return err
}

// buildPlan loads the plan file (or the example plan) and applies flag overrides.
func (a *app) buildPlan(cmd *cobra.Command) (*domain.Plan, error) {
	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	if a.configFile != "" {
		loaded, err := parser.LoadFromFile(a.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}

	if changed("principal") {
		cfg.Principal = decimal.NewFromFloat(a.principal)
	}
	if changed("ages") || changed("monthly") || changed("bond") {
		phases, endAge, err := a.phaseOverrides(cfg)
		if err != nil {
			return nil, err
		}
		cfg.Phases, cfg.EndAge = phases, endAge
	}
	if changed("bond-return") {
		cfg.Market.BondReturnPct = a.bondReturn
	}
	if changed("bond-volatility") {
		cfg.Market.BondVolatilityPct = a.bondVolatility
	}
	if changed("stock-return") {
		cfg.Market.StockReturnPct = a.stockReturn
	}
	if changed("stock-volatility") {
		cfg.Market.StockVolatilityPct = a.stockVolatility
	}
	if changed("trials") {
		cfg.Simulation.Trials = a.trials
	}
	if changed("seed") {
		cfg.Simulation.Seed = a.seed
	}
	if changed("workers") {
		cfg.Simulation.Workers = a.workers
	}

	plan, err := cfg.Plan()
	if err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return plan, nil
}

// phaseOverrides rebuilds the phases from --ages, --monthly and --bond. Flags
// that were not given keep the values of the loaded plan.
func (a *app) phaseOverrides(cfg *domain.Configuration) ([]domain.PhaseSettings, int, error) {
	ages := a.ages
	if ages == nil {
		for _, p := range cfg.Phases {
			ages = append(ages, p.StartAge)
		}
		ages = append(ages, cfg.EndAge)
	}
	n := len(ages) - 1
	if n < 1 {
		return nil, 0, &domain.InvalidScheduleError{Ages: ages, Reason: "at least one phase and a horizon age are required"}
	}

	pick := func(values []float64, i int, fallback func(domain.PhaseSettings) decimal.Decimal) (decimal.Decimal, error) {
		if values != nil {
			if len(values) != n {
				return decimal.Zero, &domain.InvalidScheduleError{
					Ages:   ages,
					Reason: fmt.Sprintf("expected %d phase settings, got %d", n, len(values)),
				}
			}
			return decimal.NewFromFloat(values[i]), nil
		}
		if len(cfg.Phases) != n {
			return decimal.Zero, &domain.InvalidScheduleError{
				Ages:   ages,
				Reason: fmt.Sprintf("--ages defines %d phases but the plan has %d; pass --monthly and --bond too", n, len(cfg.Phases)),
			}
		}
		return fallback(cfg.Phases[i]), nil
	}

	phases := make([]domain.PhaseSettings, n)
	for i := range phases {
		monthly, err := pick(a.monthly, i, func(p domain.PhaseSettings) decimal.Decimal { return p.MonthlyContribution })
		if err != nil {
			return nil, 0, err
		}
		bond, err := pick(a.bondPct, i, func(p domain.PhaseSettings) decimal.Decimal { return p.BondAllocationPct })
		if err != nil {
			return nil, 0, err
		}
		phases[i] = domain.PhaseSettings{StartAge: ages[i], MonthlyContribution: monthly, BondAllocationPct: bond}
	}
	return phases, ages[n], nil
}
