package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	conclusionStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

// ChartWidth and ChartHeight size the distribution chart of the verbose console report.
const (
	ChartWidth  = 60
	ChartHeight = 12
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Extension() string { return "txt" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Plan == nil {
		return nil, fmt.Errorf("console: report has no plan")
	}
	var buf bytes.Buffer

	fmt.Fprintln(&buf, titleStyle.Render("PORTFOLIO GROWTH "+strings.ToUpper(report.Mode)+" REPORT"))
	fmt.Fprintln(&buf, mutedStyle.Render(fmt.Sprintf("report %s, generated %s", report.ID, report.GeneratedAt.Format("2006-01-02 15:04:05"))))

	fmt.Fprintln(&buf, sectionStyle.Render("KEY ASSUMPTIONS"))
	for _, a := range GenerateAssumptions(report.Plan) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf, sectionStyle.Render("STRATEGY"))
	fmt.Fprintf(&buf, "Principal: %s\n", FormatCurrency(report.Plan.Principal))
	for _, d := range PhaseDescriptions(report.Plan) {
		fmt.Fprintf(&buf, "• %s\n", d)
	}

	if report.Projection != nil {
		writeProjection(&buf, report.Projection)
	}
	if report.Summary != nil {
		writeSummary(&buf, report.Summary)
	}

	if c, ok := Conclude(report); ok {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, conclusionStyle.Render(c.Statement()))
	}
	return buf.Bytes(), nil
}

func writeProjection(buf *bytes.Buffer, p *domain.Projection) {
	for i, ph := range p.Phases {
		fmt.Fprintln(buf, sectionStyle.Render(fmt.Sprintf("PHASE %d: AGES %d-%d", i+1, ph.Phase.StartAge, ph.Phase.EndAge)))
		fmt.Fprintf(buf, "Opening balance %s, closing balance %s\n", FormatCurrency(ph.OpeningBalance), FormatCurrency(ph.FinalTotal))
		rows := make([][]string, 0, ph.Rows)
		for _, r := range p.PhaseRows(i) {
			rows = append(rows, r.Row())
		}
		fmt.Fprintln(buf, ledgerTable(domain.LedgerColumns, rows))
	}

	if p.Draw.Len() > 0 {
		stats := p.Draw.Stats()
		fmt.Fprintln(buf, sectionStyle.Render("REALIZED RETURNS"))
		fmt.Fprintf(buf, "Bonds:  mean %s, standard deviation %s\n", FormatPercent(stats.BondMean), FormatPercent(stats.BondSD))
		fmt.Fprintf(buf, "Stocks: mean %s, standard deviation %s\n", FormatPercent(stats.StockMean), FormatPercent(stats.StockSD))
	}
}

func writeSummary(buf *bytes.Buffer, s *domain.SimulationSummary) {
	fmt.Fprintln(buf, sectionStyle.Render("MONTE CARLO OUTCOMES"))
	fmt.Fprintf(buf, "Trials: %d (seed %d), horizon %d years to age %d\n", s.Trials, s.Seed, s.Years, s.EndAge)
	fmt.Fprintf(buf, "Total contributed: %s\n", FormatDollars(s.TotalContributed))
	fmt.Fprintf(buf, "Principal + contributions: %s\n", FormatDollars(s.PrincipalPlusContributions))
	fmt.Fprintf(buf, "Smallest / mean / largest: %s / %s / %s\n", FormatDollars(s.Smallest), FormatDollars(s.Mean), FormatDollars(s.Largest))

	headers := []string{"Percentile", "Value", "Interest Earned", "Monthly Income", "Annual Return"}
	rows := make([][]string, 0, len(s.Percentiles))
	for _, card := range PercentileCards(s) {
		rows = append(rows, []string{card.Label, card.Value, card.InterestEarned, card.MonthlyIncome, card.AnnualReturn})
	}
	fmt.Fprintln(buf, ledgerTable(headers, rows))

	low, high, spread := InterquartileRange(s)
	fmt.Fprintf(buf, "Middle 50%% of outcomes: %s to %s (spread %s)\n", HumanFormat(low), HumanFormat(high), HumanFormat(spread))

	for _, f := range s.SolverFailures {
		fmt.Fprintln(buf, mutedStyle.Render(fmt.Sprintf("%s percentile (trial %d): no annualized return: %s", ordinal(f.Percentile), f.Trial, f.Error)))
	}

	fmt.Fprintln(buf, sectionStyle.Render("DISTRIBUTION OF FINAL VALUES"))
	fmt.Fprintln(buf, mutedStyle.Render(fmt.Sprintf("middle %.0f%% of %d trials", 100*(1-2*calculation.TrimFraction), s.Trials)))
	fmt.Fprintln(buf, NewHistogram(s.Distribution, DefaultBins).Plot(ChartWidth, ChartHeight))
}

func ledgerTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Bold(true)
			}
			return cellStyle
		}).
		String()
}
