package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/portfolio-simulator/internal/domain"
	money "github.com/rpgo/portfolio-simulator/pkg/decimal"
)

// PhaseInput is everything needed to compound a single phase.
type PhaseInput struct {
	Phase          domain.StrategyPhase
	OpeningBalance decimal.Decimal
	BondReturns    []decimal.Decimal // one entry per year of the phase, in percent
	StockReturns   []decimal.Decimal
}

type assetYear struct {
	interest money.Money
	value    money.Money
}

// CompoundPhase produces one YearRecord per year of the phase. Each asset
// receives its share of the opening balance and of every yearly contribution,
// then grows by that year's return. Money is rounded to cents after every step.
func CompoundPhase(in PhaseInput) ([]domain.YearRecord, error) {
	years := in.Phase.Years()
	if err := in.Phase.Validate(); err != nil {
		return nil, err
	}
	if len(in.BondReturns) != years || len(in.StockReturns) != years {
		return nil, &domain.InvalidParameterError{
			Field:  "market_draw",
			Value:  fmt.Sprintf("%d bond / %d stock returns", len(in.BondReturns), len(in.StockReturns)),
			Reason: fmt.Sprintf("phase %d-%d needs %d yearly returns", in.Phase.StartAge, in.Phase.EndAge, years),
		}
	}

	opening := money.NewMoneyFromDecimal(in.OpeningBalance)
	monthly := money.NewMoneyFromDecimal(in.Phase.MonthlyContribution)
	bondPct := in.Phase.BondAllocationPct
	stockPct := in.Phase.StockAllocationPct()

	bonds := compoundAsset(opening, monthly, bondPct, in.BondReturns)
	stocks := compoundAsset(opening, monthly, stockPct, in.StockReturns)

	records := make([]domain.YearRecord, years)
	for i := range records {
		b, s := bonds[i], stocks[i]
		records[i] = domain.YearRecord{
			Age:                 in.Phase.StartAge + i,
			MonthlyContribution: in.Phase.MonthlyContribution,
			BondPct:             bondPct,
			BondReturnPct:       in.BondReturns[i],
			StockPct:            stockPct,
			StockReturnPct:      in.StockReturns[i],
			BondValue:           b.value.Decimal,
			BondInterest:        b.interest.Decimal,
			StockValue:          s.value.Decimal,
			StockInterest:       s.interest.Decimal,
			TotalValue:          b.value.Add(s.value).Decimal,
			TotalInterest:       b.interest.Add(s.interest).Decimal,
		}
	}
	return records, nil
}

func compoundAsset(opening, monthly money.Money, allocationPct decimal.Decimal, returns []decimal.Decimal) []assetYear {
	contribution := monthly.Annual().Share(allocationPct).Round()
	value := opening.Share(allocationPct).Round()

	out := make([]assetYear, len(returns))
	for i, r := range returns {
		start := value.Add(contribution)
		out[i] = assetYear{
			interest: start.Share(r).Round(),
			value:    start.Grow(r).Round(),
		}
		value = out[i].value
	}
	return out
}
