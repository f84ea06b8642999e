package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// ProjectPortfolio chains the schedule's phases over a single market path and
// returns the concatenated year-by-year ledger. Phase 0 opens with the
// principal; every later phase opens with the previous phase's final total.
func ProjectPortfolio(principal decimal.Decimal, schedule domain.Schedule, draw domain.MarketDraw) (*domain.Projection, error) {
	if principal.IsNegative() {
		return nil, &domain.InvalidParameterError{Field: "principal", Value: principal, Reason: "cannot be negative"}
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	if draw.Len() < schedule.Years() {
		return nil, &domain.InvalidParameterError{
			Field:  "market_draw",
			Value:  draw.Len(),
			Reason: fmt.Sprintf("horizon %d-%d needs %d yearly returns", schedule.StartAge(), schedule.EndAge(), schedule.Years()),
		}
	}

	proj := &domain.Projection{
		Principal: principal,
		Ledger:    make([]domain.YearRecord, 0, schedule.Years()),
		Phases:    make([]domain.PhaseResult, 0, len(schedule.Phases)),
		EndAge:    schedule.EndAge(),
		Draw:      draw,
	}

	start := schedule.StartAge()
	opening := principal
	for i, phase := range schedule.Phases {
		slice := draw.Slice(phase.StartAge-start, phase.EndAge-start)
		rows, err := CompoundPhase(PhaseInput{
			Phase:          phase,
			OpeningBalance: opening,
			BondReturns:    ledgerReturns(slice.BondReturns()),
			StockReturns:   ledgerReturns(slice.StockReturns()),
		})
		if err != nil {
			return nil, fmt.Errorf("phase %d: %w", i, err)
		}

		final := rows[len(rows)-1].TotalValue
		proj.Phases = append(proj.Phases, domain.PhaseResult{
			Phase:          phase,
			OpeningBalance: opening,
			FinalTotal:     final,
			FirstRow:       len(proj.Ledger),
			Rows:           len(rows),
		})
		proj.Ledger = append(proj.Ledger, rows...)
		opening = final
	}
	proj.FinalTotal = opening
	return proj, nil
}

// ledgerReturns converts drawn returns to the two-decimal figures shown in the ledger.
func ledgerReturns(returns []float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(returns))
	for i, r := range returns {
		out[i] = decimal.NewFromFloat(r).Round(2)
	}
	return out
}
