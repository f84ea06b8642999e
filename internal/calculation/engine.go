package calculation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// CalculationEngine orchestrates the calculate and simulate modes.
type CalculationEngine struct {
	Solver  *AnnualizedReturnSolver
	Workers int // Monte Carlo workers; 0 uses the plan setting, then GOMAXPROCS
	Debug   bool
	Logger  Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Solver: NewAnnualizedReturnSolver(),
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	ce.Logger = loggerOrNop(l)
}

// Calculate projects the plan over a single market path and returns the full ledger.
// With zero volatility the path, and so the ledger, is fully deterministic.
func (ce *CalculationEngine) Calculate(ctx context.Context, plan *domain.Plan) (*domain.Projection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	market, err := NewMarketModel(plan.Market)
	if err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	logger := loggerOrNop(ce.Logger)
	seed := resolveSeed(plan.Simulation.Seed)
	draw := market.Draw(NewTrialRand(seed, 0), plan.Schedule.Years())

	proj, err := ProjectPortfolio(plan.Principal, plan.Schedule, draw)
	if err != nil {
		return nil, err
	}
	if ce.Debug {
		stats := draw.Stats()
		logger.Debugf("draw: bond mean %.2f sd %.2f, stock mean %.2f sd %.2f", stats.BondMean, stats.BondSD, stats.StockMean, stats.StockSD)
	}
	logger.Infof("projected %d years over %d phases: final total %s", len(proj.Ledger), len(proj.Phases), proj.FinalTotal.StringFixed(2))
	return proj, nil
}

// Simulate runs the Monte Carlo trials of the plan and aggregates them.
func (ce *CalculationEngine) Simulate(ctx context.Context, plan *domain.Plan) (*domain.SimulationSummary, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	market, err := NewMarketModel(plan.Market)
	if err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	logger := loggerOrNop(ce.Logger)
	seed := resolveSeed(plan.Simulation.Seed)
	workers := ce.Workers
	if workers <= 0 {
		workers = plan.Simulation.Workers
	}

	mc := NewMonteCarloEngine(market, workers, logger)
	logger.Infof("simulating %d trials (seed %d)", plan.Simulation.Trials, seed)
	runs, err := mc.Run(ctx, plan, seed)
	if err != nil {
		return nil, err
	}

	agg := &StatisticsAggregator{Solver: ce.Solver, Logger: logger}
	summary, err := agg.Summarize(runs, plan)
	if err != nil {
		return nil, err
	}
	summary.Seed = seed
	if len(summary.SolverFailures) > 0 {
		logger.Warnf("%d percentile(s) without an annualized return", len(summary.SolverFailures))
	}
	return summary, nil
}

// Run executes the given mode and wraps the outcome in a Report for the formatters.
func (ce *CalculationEngine) Run(ctx context.Context, plan *domain.Plan, mode string) (*domain.Report, error) {
	report := &domain.Report{
		ID:          uuid.NewString(),
		Mode:        mode,
		GeneratedAt: nowFunc(),
		Plan:        plan,
	}
	switch mode {
	case domain.ModeCalculate:
		proj, err := ce.Calculate(ctx, plan)
		if err != nil {
			return nil, err
		}
		report.Projection = proj
	case domain.ModeSimulate:
		summary, err := ce.Simulate(ctx, plan)
		if err != nil {
			return nil, err
		}
		report.Summary = summary
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	return report, nil
}
