package calculation

import (
	"sort"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// TrimFraction is the share of outcomes dropped from each tail of the chart distribution.
const TrimFraction = 0.05

// StatisticsAggregator turns the raw trial outcomes into a SimulationSummary.
type StatisticsAggregator struct {
	Solver *AnnualizedReturnSolver
	Logger Logger
}

// NewStatisticsAggregator creates an aggregator with a default solver.
func NewStatisticsAggregator(logger Logger) *StatisticsAggregator {
	return &StatisticsAggregator{
		Solver: NewAnnualizedReturnSolver(),
		Logger: loggerOrNop(logger),
	}
}

// Summarize sorts the runs by final total and reports the nearest-rank
// percentiles, each paired with the annualized return of the very run that
// produced it. A solver failure is recorded on the summary and does not stop
// the remaining percentiles.
func (sa *StatisticsAggregator) Summarize(runs []domain.SimulationRun, plan *domain.Plan) (*domain.SimulationSummary, error) {
	n := len(runs)
	if n == 0 {
		return nil, &domain.InvalidParameterError{Field: "runs", Value: 0, Reason: "at least one trial is required"}
	}
	logger := loggerOrNop(sa.Logger)
	solver := sa.Solver
	if solver == nil {
		solver = NewAnnualizedReturnSolver()
	}

	ranked := make([]domain.SimulationRun, n)
	copy(ranked, runs)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].FinalTotal < ranked[j].FinalTotal })

	sorted := make([]float64, n)
	var sum float64
	for i, r := range ranked {
		sorted[i] = r.FinalTotal
		sum += r.FinalTotal
	}

	contributed := plan.Schedule.TotalContributed().InexactFloat64()
	paidIn := contributed + plan.Principal.InexactFloat64()

	summary := &domain.SimulationSummary{
		Trials:                     n,
		Seed:                       plan.Simulation.Seed,
		Years:                      plan.Schedule.Years(),
		EndAge:                     plan.Schedule.EndAge(),
		TotalContributed:           contributed,
		PrincipalPlusContributions: paidIn,
		Largest:                    sorted[n-1],
		Smallest:                   sorted[0],
		Mean:                       sum / float64(n),
		Sorted:                     sorted,
		Distribution:               TrimDistribution(sorted, TrimFraction),
	}

	for _, p := range domain.Percentiles {
		run := ranked[PercentileIndex(n, p)]
		outcome := domain.PercentileOutcome{
			Percentile:     p,
			Trial:          run.Trial,
			Value:          run.FinalTotal,
			InterestEarned: run.FinalTotal - paidIn,
			MonthlyIncome:  MonthlyIncome(run.FinalTotal),
		}
		apr, err := solver.Solve(run.CashFlows)
		if err != nil {
			logger.Warnf("percentile %d (trial %d): annualized return unavailable: %v", p, run.Trial, err)
			summary.SolverFailures = append(summary.SolverFailures, domain.SolverFailure{
				Percentile: p,
				Trial:      run.Trial,
				Error:      err.Error(),
			})
		} else {
			outcome.AnnualizedReturnPct = apr
			outcome.Solved = true
		}
		summary.Percentiles = append(summary.Percentiles, outcome)
	}
	return summary, nil
}

// PercentileIndex returns the nearest-rank index floor(n×p/100) into a sorted slice of length n.
func PercentileIndex(n, p int) int {
	idx := n * p / 100
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// TrimDistribution drops floor(n*fraction) outcomes from each end of an
// ascending slice. When fewer than two outcomes would remain the slice is
// returned whole. The result shares storage with sorted.
func TrimDistribution(sorted []float64, fraction float64) []float64 {
	n := len(sorted)
	cut := int(float64(n) * fraction)
	if n-2*cut < 2 {
		return sorted
	}
	return sorted[cut : n-cut]
}

// MonthlyIncome is the monthly draw a portfolio of the given value supports at domain.IncomeRate.
func MonthlyIncome(value float64) float64 {
	return value * domain.IncomeRate.InexactFloat64() / 12
}
