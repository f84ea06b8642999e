package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// MonteCarloCSVReport generates CSV exports for Monte Carlo simulation results
type MonteCarloCSVReport struct {
	Summary *domain.SimulationSummary
	Plan    *domain.Plan
}

func writeCSVFile(outputPath string, header []string, rows [][]string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// GenerateSummaryCSV creates a summary CSV with aggregate statistics
func (m *MonteCarloCSVReport) GenerateSummaryCSV(outputPath string) error {
	s := m.Summary
	low, high, spread := InterquartileRange(s)
	rows := [][]string{
		{"Number of Simulations", strconv.Itoa(s.Trials), "Total number of trials run"},
		{"Seed", strconv.FormatInt(s.Seed, 10), "Seed that reproduces this run"},
		{"Horizon", fmt.Sprintf("%d years", s.Years), fmt.Sprintf("Simulated through age %d", s.EndAge)},
		{"Total Contributed", fmt.Sprintf("%.2f", s.TotalContributed), "Sum of all yearly contributions"},
		{"Principal Plus Contributions", fmt.Sprintf("%.2f", s.PrincipalPlusContributions), "Everything paid in"},
		{"Mean Final Value", fmt.Sprintf("%.2f", s.Mean), "Average final value across all trials"},
		{"Smallest Final Value", fmt.Sprintf("%.2f", s.Smallest), "Worst trial"},
		{"Largest Final Value", fmt.Sprintf("%.2f", s.Largest), "Best trial"},
		{"Interquartile Low", fmt.Sprintf("%.2f", low), "25th percentile final value"},
		{"Interquartile High", fmt.Sprintf("%.2f", high), "75th percentile final value"},
		{"Interquartile Spread", fmt.Sprintf("%.2f", spread), "Width of the middle 50% of outcomes"},
		{"Solver Failures", strconv.Itoa(len(s.SolverFailures)), "Percentiles without an annualized return"},
	}
	if m.Plan != nil {
		mk := m.Plan.Market
		rows = append(rows,
			[]string{"Bond Return", FormatPercent(mk.BondReturnPct), fmt.Sprintf("Standard deviation %s", FormatPercent(mk.BondVolatilityPct))},
			[]string{"Stock Return", FormatPercent(mk.StockReturnPct), fmt.Sprintf("Standard deviation %s", FormatPercent(mk.StockVolatilityPct))},
		)
	}
	return writeCSVFile(outputPath, []string{"Metric", "Value", "Description"}, rows)
}

// GeneratePercentileCSV creates a CSV with detailed percentile analysis
func (m *MonteCarloCSVReport) GeneratePercentileCSV(outputPath string) error {
	interpretation := map[int]string{
		10: "Worst 10% of scenarios",
		25: "Below average scenarios",
		50: "Typical scenario",
		75: "Above average scenarios",
		90: "Best 10% of scenarios",
	}
	rows := make([][]string, 0, len(m.Summary.Percentiles))
	for _, o := range m.Summary.Percentiles {
		apr := ""
		if o.Solved {
			apr = fmt.Sprintf("%.4f", o.AnnualizedReturnPct)
		}
		rows = append(rows, []string{
			ordinal(o.Percentile),
			strconv.Itoa(o.Trial),
			fmt.Sprintf("%.2f", o.Value),
			fmt.Sprintf("%.2f", o.MonthlyIncome),
			apr,
			interpretation[o.Percentile],
		})
	}
	return writeCSVFile(outputPath, []string{"Percentile", "Trial", "FinalValue", "MonthlyIncome", "AnnualReturnPct", "Interpretation"}, rows)
}

// GenerateDistributionCSV writes the histogram of the charted outcomes.
func (m *MonteCarloCSVReport) GenerateDistributionCSV(outputPath string) error {
	h := NewHistogram(m.Summary.Distribution, DefaultBins)
	rows := make([][]string, len(h.Counts))
	for i, c := range h.Counts {
		rows[i] = []string{fmt.Sprintf("%.2f", h.Edges[i]), fmt.Sprintf("%.2f", h.Edges[i+1]), strconv.Itoa(c)}
	}
	return writeCSVFile(outputPath, []string{"BinLow", "BinHigh", "Trials"}, rows)
}

// GenerateAllCSVReports creates all CSV reports in a single directory
func (m *MonteCarloCSVReport) GenerateAllCSVReports(outputDir string) error {
	if m.Summary == nil {
		return fmt.Errorf("no simulation summary to export")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := m.GenerateSummaryCSV(filepath.Join(outputDir, "monte_carlo_summary.csv")); err != nil {
		return fmt.Errorf("failed to generate summary CSV: %w", err)
	}
	if err := m.GeneratePercentileCSV(filepath.Join(outputDir, "monte_carlo_percentiles.csv")); err != nil {
		return fmt.Errorf("failed to generate percentile CSV: %w", err)
	}
	if err := m.GenerateDistributionCSV(filepath.Join(outputDir, "monte_carlo_distribution.csv")); err != nil {
		return fmt.Errorf("failed to generate distribution CSV: %w", err)
	}
	return nil
}
