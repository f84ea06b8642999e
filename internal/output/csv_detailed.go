package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// CSVDetailedExporter provides raw detail: the ledger with its phase and the
// unrounded drawn returns for calculate reports, and every charted trial
// outcome for simulate reports.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	switch {
	case report.Projection != nil:
		p := report.Projection
		header := append([]string{"Phase", "Year"}, domain.LedgerColumns...)
		header = append(header, "DrawnBondPct", "DrawnStockPct")
		if err := w.Write(header); err != nil {
			return nil, err
		}
		for i, ph := range p.Phases {
			for k, r := range p.PhaseRows(i) {
				year := ph.FirstRow + k
				row := append([]string{intToString(i + 1), intToString(year)}, r.Row()...)
				if year < p.Draw.Len() {
					d := p.Draw.Years[year]
					row = append(row, formatFloat(d.BondPct), formatFloat(d.StockPct))
				} else {
					row = append(row, "", "")
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	case report.Summary != nil:
		if err := w.Write([]string{"Rank", "FinalValue"}); err != nil {
			return nil, err
		}
		for i, v := range report.Summary.Distribution {
			if err := w.Write([]string{intToString(i), fmt.Sprintf("%.2f", v)}); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("detailed-csv: report has neither a projection nor a summary")
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
