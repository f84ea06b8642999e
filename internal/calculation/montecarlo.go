package calculation

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// MonteCarloEngine repeats a simplified full-horizon projection over
// independently drawn market paths.
type MonteCarloEngine struct {
	Market  MarketModel
	Workers int
	Logger  Logger
}

// NewMonteCarloEngine creates a new Monte Carlo engine. workers <= 0 uses
// GOMAXPROCS when Run starts.
func NewMonteCarloEngine(market MarketModel, workers int, logger Logger) *MonteCarloEngine {
	return &MonteCarloEngine{
		Market:  market,
		Workers: workers,
		Logger:  loggerOrNop(logger),
	}
}

// Run executes plan.Simulation.Trials trials with the given seed and returns
// one SimulationRun per trial, indexed by trial number. The plan is validated
// before any trial starts.
func (mce *MonteCarloEngine) Run(ctx context.Context, plan *domain.Plan, seed int64) ([]domain.SimulationRun, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	logger := loggerOrNop(mce.Logger)
	trials := plan.Simulation.Trials
	years := plan.Schedule.Years()
	flat := flattenSchedule(plan.Principal.InexactFloat64(), plan.Schedule)

	workers := mce.effectiveWorkers()
	logger.Debugf("monte carlo: %d trials over %d years, %d workers, seed %d", trials, years, workers, seed)
	started := time.Now()

	results := make([]domain.SimulationRun, trials)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < trials; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			draw := mce.Market.Draw(NewTrialRand(seed, i), years)
			results[i] = flat.run(i, draw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("monte carlo interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("monte carlo interrupted: %w", err)
	}

	logger.Debugf("monte carlo: finished %d trials in %s", trials, time.Since(started))
	return results, nil
}

// SimplifiedProjection runs the scalar-total projection of a single trial over
// the given draw, which must span schedule.Years(). It is the per-trial body
// of MonteCarloEngine.Run.
func SimplifiedProjection(principal float64, schedule domain.Schedule, draw domain.MarketDraw) domain.SimulationRun {
	return flattenSchedule(principal, schedule).run(0, draw)
}

type flatYear struct {
	contribution float64 // monthly × 12
	bondPct      float64
}

type flatSchedule struct {
	principal float64
	years     []flatYear
}

func flattenSchedule(principal float64, schedule domain.Schedule) flatSchedule {
	fs := flatSchedule{principal: principal, years: make([]flatYear, 0, schedule.Years())}
	for _, p := range schedule.Phases {
		y := flatYear{
			contribution: p.YearlyContribution().InexactFloat64(),
			bondPct:      p.BondAllocationPct.InexactFloat64(),
		}
		for k := 0; k < p.Years(); k++ {
			fs.years = append(fs.years, y)
		}
	}
	return fs
}

func (fs flatSchedule) run(trial int, draw domain.MarketDraw) domain.SimulationRun {
	total := fs.principal
	flows := make([]float64, len(fs.years)+1)
	for t, y := range fs.years {
		base := total + y.contribution
		bond := base * y.bondPct / 100 * (1 + draw.Years[t].BondPct/100)
		stock := base * (100 - y.bondPct) / 100 * (1 + draw.Years[t].StockPct/100)
		total = bond + stock
		flows[t] = y.contribution
	}
	if len(fs.years) > 0 {
		flows[0] += fs.principal
	}
	flows[len(fs.years)] = -total
	return domain.SimulationRun{Trial: trial, FinalTotal: total, CashFlows: flows}
}

func (mce *MonteCarloEngine) effectiveWorkers() int {
	if mce.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return mce.Workers
}
