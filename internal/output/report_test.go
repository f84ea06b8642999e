package output_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/domain"
	"github.com/rpgo/portfolio-simulator/internal/output"
)

func simulatedReport(t *testing.T) *domain.Report {
	t.Helper()
	calculation.SetNowFunc(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { calculation.SetNowFunc(time.Now) })

	schedule, err := domain.NewSchedule([]int{40, 50, 60},
		[]decimal.Decimal{decimal.NewFromInt(300), decimal.NewFromInt(600)},
		[]decimal.Decimal{decimal.NewFromInt(30), decimal.NewFromInt(70)})
	require.NoError(t, err)
	plan := &domain.Plan{
		Principal:  decimal.NewFromInt(50000),
		Schedule:   schedule,
		Market:     domain.MarketAssumptions{BondReturnPct: 4.5, BondVolatilityPct: 4.5, StockReturnPct: 10, StockVolatilityPct: 20},
		Simulation: domain.SimulationSettings{Trials: 500, Seed: 12345},
	}
	report, err := calculation.NewCalculationEngine().Run(context.Background(), plan, domain.ModeSimulate)
	require.NoError(t, err)
	return report
}

func TestWriteReport(t *testing.T) {
	report := simulatedReport(t)
	var buf bytes.Buffer
	require.NoError(t, output.WriteReport(&buf, report, "console-lite"))
	assert.Contains(t, buf.String(), "Trials=500 Seed=12345")
	assert.Contains(t, buf.String(), "At age 60 the median portfolio value is")
}

func TestGenerateReportWritesFiles(t *testing.T) {
	report := simulatedReport(t)
	dir := t.TempDir()

	files, err := output.GenerateReport(report, "json", dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "portfolio_simulate_20250101_000000.json"), files[0])

	files, err = output.GenerateReport(report, "all", dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	for _, f := range files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	assert.True(t, strings.HasSuffix(files[0], ".txt"))
	assert.True(t, strings.HasSuffix(files[1], ".csv"))
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	err := output.WriteReport(&bytes.Buffer{}, &domain.Report{}, "definitely-not-a-format")
	require.Error(t, err)
	assert.True(t, errors.Is(err, output.ErrUnsupportedFormat))
	msg := err.Error()
	assert.Contains(t, msg, "unsupported report format")
	assert.Contains(t, msg, "Try one of:")
	assert.Contains(t, msg, "markdown")

	_, err = output.GenerateReport(&domain.Report{}, "pdf", t.TempDir())
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)
}

func TestMonteCarloCSVReport(t *testing.T) {
	report := simulatedReport(t)
	dir := filepath.Join(t.TempDir(), "csv")
	mc := &output.MonteCarloCSVReport{Summary: report.Summary, Plan: report.Plan}
	require.NoError(t, mc.GenerateAllCSVReports(dir))

	for name, lines := range map[string]int{
		"monte_carlo_summary.csv":      15,
		"monte_carlo_percentiles.csv":  6,
		"monte_carlo_distribution.csv": 21,
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), lines, name)
	}

	assert.Error(t, (&output.MonteCarloCSVReport{}).GenerateAllCSVReports(dir))
}
