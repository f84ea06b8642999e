package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// CSVSummarizer implements the simple CSV output: the ledger for calculate
// reports, one row per percentile for simulate reports.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	switch {
	case report.Projection != nil:
		if err := w.Write(domain.LedgerColumns); err != nil {
			return nil, err
		}
		for _, r := range report.Projection.Ledger {
			if err := w.Write(r.Row()); err != nil {
				return nil, err
			}
		}
	case report.Summary != nil:
		header := []string{"Percentile", "Trial", "Value", "InterestEarned", "MonthlyIncome", "AnnualReturnPct", "Solved"}
		if err := w.Write(header); err != nil {
			return nil, err
		}
		for _, o := range report.Summary.Percentiles {
			row := []string{
				intToString(o.Percentile),
				intToString(o.Trial),
				fmt.Sprintf("%.2f", o.Value),
				fmt.Sprintf("%.2f", o.InterestEarned),
				fmt.Sprintf("%.2f", o.MonthlyIncome),
				fmt.Sprintf("%.4f", o.AnnualizedReturnPct),
				boolToString(o.Solved),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("csv: report has neither a projection nor a summary")
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
