package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// GenerateAssumptions lists the modeling assumptions of a plan for detailed outputs.
func GenerateAssumptions(plan *domain.Plan) []string {
	if plan == nil {
		return nil
	}
	m := plan.Market
	out := []string{
		fmt.Sprintf("Bond returns: %.2f%% mean, %.2f%% standard deviation", m.BondReturnPct, m.BondVolatilityPct),
		fmt.Sprintf("Stock returns: %.2f%% mean, %.2f%% standard deviation", m.StockReturnPct, m.StockVolatilityPct),
		"Yearly returns are drawn independently from a normal distribution",
		"Contributions are made at the start of each year, before that year's return",
		fmt.Sprintf("Monthly income assumes a %s yearly draw on the final value", FormatPercentage(domain.IncomeRate.Mul(decimalHundred))),
	}
	if m.IsDeterministic() {
		out[2] = "Zero volatility: every year earns exactly the mean return"
	}
	return out
}

// PhaseDescriptions summarizes each phase of the plan's schedule on one line.
func PhaseDescriptions(plan *domain.Plan) []string {
	if plan == nil {
		return nil
	}
	out := make([]string, 0, len(plan.Schedule.Phases))
	for i, p := range plan.Schedule.Phases {
		out = append(out, fmt.Sprintf("Phase %d, ages %d-%d: %s/month, %s bonds / %s stocks",
			i+1, p.StartAge, p.EndAge, FormatCurrency(p.MonthlyContribution),
			FormatPercentage(p.BondAllocationPct), FormatPercentage(p.StockAllocationPct())))
	}
	return out
}

var decimalHundred = decimal.NewFromInt(100)
