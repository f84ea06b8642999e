package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"dollars": FormatDollars,
	"human":   HumanFormat,
	"add":     func(i, j int) int { return i + j },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	conclusion, hasConclusion := Conclude(report)

	data := struct {
		*domain.Report
		Assumptions   []string
		Phases        []string
		Columns       []string
		Cards         []PercentileCard
		Chart         string
		Conclusion    string
		HasConclusion bool
	}{
		Report:        report,
		Assumptions:   GenerateAssumptions(report.Plan),
		Phases:        PhaseDescriptions(report.Plan),
		Columns:       domain.LedgerColumns,
		Conclusion:    conclusion.Statement(),
		HasConclusion: hasConclusion,
	}
	if report.Summary != nil {
		data.Cards = PercentileCards(report.Summary)
		data.Chart = NewHistogram(report.Summary.Distribution, DefaultBins).Plot(ChartWidth, ChartHeight)
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
