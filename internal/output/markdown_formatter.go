package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// MarkdownFormatter renders the report as GitHub-flavored markdown.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Extension() string { return "md" }

func (m MarkdownFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Plan == nil {
		return nil, fmt.Errorf("markdown: report has no plan")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Portfolio %s report\n\n", report.Mode)

	fmt.Fprintln(&buf, "## Assumptions")
	fmt.Fprintln(&buf)
	for _, a := range GenerateAssumptions(report.Plan) {
		fmt.Fprintf(&buf, "- %s\n", a)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "## Strategy")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Principal: **%s**\n\n", FormatCurrency(report.Plan.Principal))
	for _, d := range PhaseDescriptions(report.Plan) {
		fmt.Fprintf(&buf, "- %s\n", d)
	}
	fmt.Fprintln(&buf)

	if p := report.Projection; p != nil {
		fmt.Fprintln(&buf, "## Ledger")
		fmt.Fprintln(&buf)
		rows := make([][]string, 0, len(p.Ledger))
		for _, r := range p.Ledger {
			rows = append(rows, r.Row())
		}
		writeMarkdownTable(&buf, domain.LedgerColumns, rows)
	}

	if s := report.Summary; s != nil {
		fmt.Fprintln(&buf, "## Outcomes")
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%d trials (seed %d). Principal + contributions: %s. Largest outcome: %s.\n\n",
			s.Trials, s.Seed, FormatDollars(s.PrincipalPlusContributions), FormatDollars(s.Largest))
		rows := make([][]string, 0, len(s.Percentiles))
		for _, c := range PercentileCards(s) {
			rows = append(rows, []string{c.Label, c.Value, c.InterestEarned, c.MonthlyIncome, c.AnnualReturn})
		}
		writeMarkdownTable(&buf, []string{"Percentile", "Value", "Interest earned", "Monthly income", "Annual return"}, rows)
		low, high, _ := InterquartileRange(s)
		fmt.Fprintf(&buf, "Half of all outcomes fall between **%s** and **%s**.\n\n", HumanFormat(low), HumanFormat(high))
	}

	if c, ok := Conclude(report); ok {
		fmt.Fprintln(&buf, "## Conclusion")
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, c.Statement())
	}
	return buf.Bytes(), nil
}

func writeMarkdownTable(buf *bytes.Buffer, headers []string, rows [][]string) {
	fmt.Fprintf(buf, "| %s |\n", strings.Join(headers, " | "))
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintf(buf, "|%s|\n", strings.Join(sep, "|"))
	for _, r := range rows {
		fmt.Fprintf(buf, "| %s |\n", strings.Join(r, " | "))
	}
	fmt.Fprintln(buf)
}

// RenderMarkdown renders markdown for the terminal with the given glamour
// style ("dark", "light", "notty", ...).
func RenderMarkdown(md []byte, style string, wordWrap int) ([]byte, error) {
	if style == "" {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := renderer.Render(string(md))
	if err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return []byte(out), nil
}
