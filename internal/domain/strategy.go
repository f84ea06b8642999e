package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	money "github.com/rpgo/portfolio-simulator/pkg/decimal"
)

var hundred = decimal.NewFromInt(100)

// StrategyPhase is a contiguous age range with fixed contribution and allocation settings.
type StrategyPhase struct {
	StartAge            int             `yaml:"start_age" json:"start_age"`
	EndAge              int             `yaml:"end_age" json:"end_age"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
	BondAllocationPct   decimal.Decimal `yaml:"bond_allocation_pct" json:"bond_allocation_pct"`
}

// Years returns the number of simulated years in the phase.
func (p StrategyPhase) Years() int {
	return p.EndAge - p.StartAge
}

// StockAllocationPct returns the equity share of the phase.
func (p StrategyPhase) StockAllocationPct() decimal.Decimal {
	return hundred.Sub(p.BondAllocationPct)
}

// YearlyContribution returns the nominal amount paid in each year of the phase.
func (p StrategyPhase) YearlyContribution() decimal.Decimal {
	return money.NewMoneyFromDecimal(p.MonthlyContribution).Annual().Decimal
}

// Validate checks the phase invariants.
func (p StrategyPhase) Validate() error {
	if p.EndAge <= p.StartAge {
		return &InvalidScheduleError{
			Ages:   []int{p.StartAge, p.EndAge},
			Reason: "phase end age must be greater than its start age",
		}
	}
	if p.MonthlyContribution.IsNegative() {
		return invalidParameter("monthly_contribution", p.MonthlyContribution, "cannot be negative")
	}
	if p.BondAllocationPct.IsNegative() || p.BondAllocationPct.GreaterThan(hundred) {
		return invalidParameter("bond_allocation_pct", p.BondAllocationPct, "must be between 0 and 100")
	}
	return nil
}

// Schedule is the ordered, gapless list of phases covering the full horizon.
type Schedule struct {
	Phases []StrategyPhase `json:"phases"`
}

// NewSchedule builds a schedule from flat per-phase arrays. ages holds every
// phase start age followed by the final horizon age, so len(ages) must be
// len(monthly)+1.
func NewSchedule(ages []int, monthly, bondPct []decimal.Decimal) (Schedule, error) {
	if len(ages) < 2 {
		return Schedule{}, &InvalidScheduleError{Ages: ages, Reason: "at least one phase and a horizon age are required"}
	}
	if len(monthly) != len(ages)-1 || len(bondPct) != len(ages)-1 {
		return Schedule{}, &InvalidScheduleError{
			Ages:   ages,
			Reason: fmt.Sprintf("expected %d phase settings, got %d contributions and %d allocations", len(ages)-1, len(monthly), len(bondPct)),
		}
	}
	if ages[0] < 0 {
		return Schedule{}, &InvalidScheduleError{Ages: ages, Reason: "ages cannot be negative"}
	}
	for i := 1; i < len(ages); i++ {
		if ages[i] == ages[i-1] {
			return Schedule{}, &InvalidScheduleError{Ages: ages, Reason: fmt.Sprintf("duplicate age %d", ages[i])}
		}
		if ages[i] < ages[i-1] {
			return Schedule{}, &InvalidScheduleError{Ages: ages, Reason: "ages must be strictly increasing"}
		}
	}

	phases := make([]StrategyPhase, len(ages)-1)
	for i := range phases {
		phases[i] = StrategyPhase{
			StartAge:            ages[i],
			EndAge:              ages[i+1],
			MonthlyContribution: monthly[i],
			BondAllocationPct:   bondPct[i],
		}
	}
	s := Schedule{Phases: phases}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// Validate checks each phase and that phases chain without gaps or overlaps.
func (s Schedule) Validate() error {
	if len(s.Phases) == 0 {
		return &InvalidScheduleError{Reason: "no phases provided"}
	}
	for i, p := range s.Phases {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("phase %d: %w", i, err)
		}
		if i > 0 && s.Phases[i-1].EndAge != p.StartAge {
			return &InvalidScheduleError{
				Ages:   s.Ages(),
				Reason: fmt.Sprintf("phase %d starts at %d but the previous phase ends at %d", i, p.StartAge, s.Phases[i-1].EndAge),
			}
		}
	}
	return nil
}

// StartAge returns the first simulated age.
func (s Schedule) StartAge() int {
	if len(s.Phases) == 0 {
		return 0
	}
	return s.Phases[0].StartAge
}

// EndAge returns the horizon age.
func (s Schedule) EndAge() int {
	if len(s.Phases) == 0 {
		return 0
	}
	return s.Phases[len(s.Phases)-1].EndAge
}

// Years returns the length of the full horizon.
func (s Schedule) Years() int {
	return s.EndAge() - s.StartAge()
}

// Ages returns the flat age list: every phase start followed by the horizon age.
func (s Schedule) Ages() []int {
	ages := make([]int, 0, len(s.Phases)+1)
	for _, p := range s.Phases {
		ages = append(ages, p.StartAge)
	}
	if len(s.Phases) > 0 {
		ages = append(ages, s.EndAge())
	}
	return ages
}

// PhaseAt returns the index of the phase covering the given horizon year
// (0-based from StartAge), or -1 when the year is outside the horizon.
func (s Schedule) PhaseAt(year int) int {
	age := s.StartAge() + year
	for i, p := range s.Phases {
		if age >= p.StartAge && age < p.EndAge {
			return i
		}
	}
	return -1
}

// TotalContributed sums the nominal contributions over the whole horizon,
// excluding the principal.
func (s Schedule) TotalContributed() decimal.Decimal {
	total := money.Zero()
	for _, p := range s.Phases {
		yearly := money.NewMoneyFromDecimal(p.YearlyContribution())
		total = total.Add(yearly.Mul(decimal.NewFromInt(int64(p.Years()))))
	}
	return total.Decimal
}
