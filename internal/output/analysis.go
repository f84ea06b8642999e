package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// Conclusion is the closing statement of a report: what the portfolio is worth
// at the horizon and the monthly income it would support.
type Conclusion struct {
	EndAge        int
	FinalValue    decimal.Decimal
	MonthlyIncome decimal.Decimal
	Basis         string // "projected" or "median"
}

// Statement renders the conclusion as a sentence.
func (c Conclusion) Statement() string {
	return fmt.Sprintf("At age %d the %s portfolio value is %s, which would provide about %s per month at a %s yearly draw.",
		c.EndAge, c.Basis, FormatCurrency(c.FinalValue), FormatCurrency(c.MonthlyIncome),
		FormatPercentage(domain.IncomeRate.Mul(decimalHundred)))
}

// Conclude derives the conclusion of a report. Calculate reports use the
// projected final total; simulate reports use the median trial.
// Extracted from embedded console logic for testability.
func Conclude(report *domain.Report) (Conclusion, bool) {
	switch {
	case report.Projection != nil:
		p := report.Projection
		return Conclusion{
			EndAge:        p.EndAge,
			FinalValue:    p.FinalTotal,
			MonthlyIncome: p.MonthlyIncome().Round(2),
			Basis:         "projected",
		}, true
	case report.Summary != nil:
		median, ok := report.Summary.Percentile(50)
		if !ok {
			return Conclusion{}, false
		}
		return Conclusion{
			EndAge:        report.Summary.EndAge,
			FinalValue:    decimal.NewFromFloat(median.Value).Round(2),
			MonthlyIncome: decimal.NewFromFloat(median.MonthlyIncome).Round(2),
			Basis:         "median",
		}, true
	}
	return Conclusion{}, false
}

// PercentileCard is the display form of one PercentileOutcome.
type PercentileCard struct {
	Label          string
	Value          string
	Short          string
	InterestEarned string
	MonthlyIncome  string
	AnnualReturn   string
}

// PercentileCards formats every reported percentile of a summary.
func PercentileCards(s *domain.SimulationSummary) []PercentileCard {
	cards := make([]PercentileCard, 0, len(s.Percentiles))
	for _, o := range s.Percentiles {
		apr := "n/a"
		if o.Solved {
			apr = FormatPercent(o.AnnualizedReturnPct)
		}
		cards = append(cards, PercentileCard{
			Label:          ordinal(o.Percentile) + " percentile",
			Value:          FormatDollars(o.Value),
			Short:          HumanFormat(o.Value),
			InterestEarned: FormatDollars(o.InterestEarned),
			MonthlyIncome:  FormatDollars(o.MonthlyIncome),
			AnnualReturn:   apr,
		})
	}
	return cards
}

// InterquartileRange returns the 25th and 75th percentile values and their spread.
func InterquartileRange(s *domain.SimulationSummary) (low, high, spread float64) {
	r := s.Ranges()
	return r.P25, r.P75, r.P75 - r.P25
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return intToString(n) + suffix
}
