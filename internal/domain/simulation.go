package domain

// DefaultTrials is the number of Monte Carlo trials used when none is configured.
const DefaultTrials = 10000

// Percentiles reported by the simulate mode.
var Percentiles = []int{10, 25, 50, 75, 90}

// SimulationSettings controls the Monte Carlo driver.
type SimulationSettings struct {
	Trials  int   `yaml:"trials" json:"trials"`
	Seed    int64 `yaml:"seed" json:"seed"`       // 0 derives a seed from the clock
	Workers int   `yaml:"workers" json:"workers"` // 0 uses GOMAXPROCS
}

// Validate checks the trial and worker counts.
func (s SimulationSettings) Validate() error {
	if s.Trials <= 0 {
		return invalidParameter("trials", s.Trials, "must be positive")
	}
	if s.Workers < 0 {
		return invalidParameter("workers", s.Workers, "cannot be negative")
	}
	return nil
}

// SimulationRun is the outcome of one Monte Carlo trial.
type SimulationRun struct {
	Trial      int       `json:"trial"`
	FinalTotal float64   `json:"final_total"`
	CashFlows  []float64 `json:"cash_flows"` // yearly contributions, principal folded into [0], negated final total last
}

// PercentileOutcome is one headline figure of the simulation summary.
type PercentileOutcome struct {
	Percentile          int     `json:"percentile"`
	Trial               int     `json:"trial"`
	Value               float64 `json:"value"`
	AnnualizedReturnPct float64 `json:"annualized_return_pct"`
	Solved              bool    `json:"solved"`
	InterestEarned      float64 `json:"interest_earned"`
	MonthlyIncome       float64 `json:"monthly_income"`
}

// SolverFailure records a percentile whose annualized return could not be extracted.
type SolverFailure struct {
	Percentile int    `json:"percentile"`
	Trial      int    `json:"trial"`
	Error      string `json:"error"`
}

// PercentileRanges represents percentile ranges for Monte Carlo results
type PercentileRanges struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// SimulationSummary aggregates every trial of a simulate run.
type SimulationSummary struct {
	Trials                     int                 `json:"trials"`
	Seed                       int64               `json:"seed"`
	Years                      int                 `json:"years"`
	EndAge                     int                 `json:"end_age"`
	Percentiles                []PercentileOutcome `json:"percentiles"`
	TotalContributed           float64             `json:"total_contributed"`
	PrincipalPlusContributions float64             `json:"principal_plus_contributions"`
	Largest                    float64             `json:"largest"`
	Smallest                   float64             `json:"smallest"`
	Mean                       float64             `json:"mean"`
	Sorted                     []float64           `json:"-"`
	Distribution               []float64           `json:"distribution"` // trimmed for charts only
	SolverFailures             []SolverFailure     `json:"solver_failures,omitempty"`
}

// Percentile returns the outcome reported for p, if any.
func (s *SimulationSummary) Percentile(p int) (PercentileOutcome, bool) {
	for _, o := range s.Percentiles {
		if o.Percentile == p {
			return o, true
		}
	}
	return PercentileOutcome{}, false
}

// Ranges returns the percentile values as a PercentileRanges.
func (s *SimulationSummary) Ranges() PercentileRanges {
	var r PercentileRanges
	for _, o := range s.Percentiles {
		switch o.Percentile {
		case 10:
			r.P10 = o.Value
		case 25:
			r.P25 = o.Value
		case 50:
			r.P50 = o.Value
		case 75:
			r.P75 = o.Value
		case 90:
			r.P90 = o.Value
		}
	}
	return r
}
