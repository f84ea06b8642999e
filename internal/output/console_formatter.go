package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Plan == nil {
		return nil, fmt.Errorf("console-lite: report has no plan")
	}
	var buf bytes.Buffer
	plan := report.Plan
	fmt.Fprintln(&buf, "PORTFOLIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Ages %d-%d (%d years), principal %s\n",
		plan.Schedule.StartAge(), plan.Schedule.EndAge(), plan.Schedule.Years(), FormatCurrency(plan.Principal))
	fmt.Fprintln(&buf)

	if p := report.Projection; p != nil {
		for i, ph := range p.Phases {
			fmt.Fprintf(&buf, "Phase %d (%d-%d): opened %s, closed %s\n",
				i+1, ph.Phase.StartAge, ph.Phase.EndAge, FormatCurrency(ph.OpeningBalance), FormatCurrency(ph.FinalTotal))
		}
	}
	if s := report.Summary; s != nil {
		fmt.Fprintf(&buf, "Trials=%d Seed=%d\n", s.Trials, s.Seed)
		for _, card := range PercentileCards(s) {
			fmt.Fprintf(&buf, "%s: %s APR=%s Income=%s/mo\n", card.Label, card.Value, card.AnnualReturn, card.MonthlyIncome)
		}
	}

	if c, ok := Conclude(report); ok {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, c.Statement())
	}
	return buf.Bytes(), nil
}
