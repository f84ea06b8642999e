package calculation

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

func decs(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func newTestPlan(t *testing.T, principal float64, ages []int, monthly, bondPct []float64, market domain.MarketAssumptions) *domain.Plan {
	t.Helper()
	schedule, err := domain.NewSchedule(ages, decs(monthly...), decs(bondPct...))
	require.NoError(t, err)
	plan := &domain.Plan{
		Principal:  decimal.NewFromFloat(principal),
		Schedule:   schedule,
		Market:     market,
		Simulation: domain.SimulationSettings{Trials: 1000, Seed: 42},
	}
	require.NoError(t, plan.Validate())
	return plan
}

func flatMarket(bond, stock float64) domain.MarketAssumptions {
	return domain.MarketAssumptions{BondReturnPct: bond, StockReturnPct: stock}
}

// closedForm is the value after n years of contributing c at the start of each
// year on top of p0, growing by factor g.
func closedForm(p0, c, g float64, n int) float64 {
	gn := math.Pow(g, float64(n))
	if g == 1 {
		return p0 + c*float64(n)
	}
	return p0*gn + c*g*(gn-1)/(g-1)
}
