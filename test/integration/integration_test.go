package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/config"
	"github.com/rpgo/portfolio-simulator/internal/domain"
)

func loadExamplePlan(t *testing.T) *domain.Plan {
	t.Helper()
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	plan, err := cfg.Plan()
	require.NoError(t, err)
	return plan
}

func TestEndToEndCalculation(t *testing.T) {
	plan := loadExamplePlan(t)
	assert.Equal(t, []int{30, 45, 58, 67}, plan.Schedule.Ages())
	assert.Equal(t, 2000, plan.Simulation.Trials)

	engine := calculation.NewCalculationEngine()
	proj, err := engine.Calculate(context.Background(), plan)
	require.NoError(t, err)

	require.Len(t, proj.Ledger, 37)
	assert.Equal(t, 67, proj.EndAge)
	assert.True(t, proj.FinalTotal.GreaterThan(decimal.NewFromInt(25000)))

	// each phase opens with what the previous one closed with
	for i := 1; i < len(proj.Phases); i++ {
		assert.True(t, proj.Phases[i].OpeningBalance.Equal(proj.Phases[i-1].FinalTotal), "phase %d", i)
	}
}

func TestEndToEndSimulation(t *testing.T) {
	plan := loadExamplePlan(t)
	engine := calculation.NewCalculationEngine()
	engine.Workers = 4

	first, err := engine.Simulate(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, 2000, first.Trials)
	assert.Equal(t, int64(20240601), first.Seed)
	require.Len(t, first.Percentiles, len(domain.Percentiles))

	r := first.Ranges()
	assert.LessOrEqual(t, r.P10, r.P50)
	assert.LessOrEqual(t, r.P50, r.P90)
	assert.Greater(t, first.Mean, first.PrincipalPlusContributions*0.5)

	engine.Workers = 1
	second, err := engine.Simulate(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, first.Sorted, second.Sorted)
	assert.Equal(t, first.Percentiles, second.Percentiles)
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()

	valid := parser.CreateExampleConfiguration()
	assert.NoError(t, parser.ValidateConfiguration(valid))

	invalid := parser.CreateExampleConfiguration()
	invalid.Phases[2].StartAge = invalid.Phases[1].StartAge
	err := parser.ValidateConfiguration(invalid)
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)

	invalid = parser.CreateExampleConfiguration()
	invalid.Market.StockVolatilityPct = -1
	err = parser.ValidateConfiguration(invalid)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}
