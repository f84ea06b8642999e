package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

func TestCalculationEngineCalculate(t *testing.T) {
	plan := newTestPlan(t, 1000, []int{30, 31}, []float64{100}, []float64{50}, flatMarket(5, 5))

	proj, err := NewCalculationEngine().Calculate(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, proj.Ledger, 1)
	assert.Equal(t, "2310.00", proj.FinalTotal.StringFixed(2))
	assert.Equal(t, "9.63", proj.MonthlyIncome().StringFixed(2))
	assert.Equal(t, 31, proj.EndAge)
}

func TestCalculationEngineSimulateZeroVolatility(t *testing.T) {
	plan := newTestPlan(t, 10000, []int{30, 40, 50}, []float64{100, 200}, []float64{50, 100}, flatMarket(5, 5))
	plan.Simulation.Trials = 100

	summary, err := NewCalculationEngine().Simulate(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, summary.Percentiles, 5)
	assert.Empty(t, summary.SolverFailures)
	for _, o := range summary.Percentiles {
		assert.True(t, o.Solved)
		assert.InDelta(t, 5.0, o.AnnualizedReturnPct, 1e-6, "percentile %d", o.Percentile)
	}
	assert.InDelta(t, summary.Smallest, summary.Largest, 1e-6)
	assert.Equal(t, int64(42), summary.Seed)
	assert.Equal(t, 20, summary.Years)
	assert.Equal(t, 50, summary.EndAge)
	assert.InDelta(t, 36000.0, summary.TotalContributed, 1e-9)
}

func TestCalculationEngineReportsDerivedSeed(t *testing.T) {
	SetSeedFunc(func() int64 { return 4242 })
	defer SetSeedFunc(func() int64 { return time.Now().UnixNano() })

	plan := newTestPlan(t, 1000, []int{30, 40}, []float64{100}, []float64{50}, volatileMarket())
	plan.Simulation.Seed = 0
	plan.Simulation.Trials = 50

	engine := NewCalculationEngine()
	first, err := engine.Simulate(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, int64(4242), first.Seed)

	plan.Simulation.Seed = 4242
	second, err := engine.Simulate(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, first.Sorted, second.Sorted)
}

func TestCalculationEngineRun(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return fixed })
	defer SetNowFunc(time.Now)

	plan := newTestPlan(t, 5000, []int{30, 50}, []float64{250}, []float64{40}, volatileMarket())
	plan.Simulation.Trials = 100
	engine := NewCalculationEngine()

	calc, err := engine.Run(context.Background(), plan, domain.ModeCalculate)
	require.NoError(t, err)
	assert.NotEmpty(t, calc.ID)
	assert.Equal(t, fixed, calc.GeneratedAt)
	assert.NotNil(t, calc.Projection)
	assert.Nil(t, calc.Summary)

	sim, err := engine.Run(context.Background(), plan, domain.ModeSimulate)
	require.NoError(t, err)
	assert.NotEqual(t, calc.ID, sim.ID)
	assert.Nil(t, sim.Projection)
	require.NotNil(t, sim.Summary)
	assert.Equal(t, 100, sim.Summary.Trials)

	_, err = engine.Run(context.Background(), plan, "forecast")
	assert.Error(t, err)
}

func TestCalculationEngineRejectsInvalidPlan(t *testing.T) {
	plan := newTestPlan(t, 1000, []int{30, 40}, []float64{100}, []float64{50}, volatileMarket())
	plan.Market.StockVolatilityPct = -5

	_, err := NewCalculationEngine().Calculate(context.Background(), plan)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	_, err = NewCalculationEngine().Simulate(context.Background(), plan)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestCalculationEngineLogsThroughZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	plan := newTestPlan(t, 1000, []int{30, 40}, []float64{100}, []float64{50}, volatileMarket())

	engine := NewCalculationEngine()
	engine.Debug = true
	engine.SetLogger(zap.New(core).Sugar())
	_, err := engine.Calculate(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessageSnippet("draw: bond mean").Len())
	assert.Equal(t, 1, logs.FilterMessageSnippet("projected 10 years over 1 phases").Len())
}

func TestSetLoggerNil(t *testing.T) {
	engine := NewCalculationEngine()
	engine.SetLogger(nil)
	assert.Equal(t, NopLogger{}, engine.Logger)
}

var _ Logger = (*zap.SugaredLogger)(nil)
