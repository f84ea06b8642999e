package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is the validated input of both the calculate and simulate modes.
type Plan struct {
	Principal  decimal.Decimal    `json:"principal"`
	Schedule   Schedule           `json:"schedule"`
	Market     MarketAssumptions  `json:"market"`
	Simulation SimulationSettings `json:"simulation"`
}

// Validate checks every field of the plan. It is called once, before any work.
func (p *Plan) Validate() error {
	if p.Principal.IsNegative() {
		return invalidParameter("principal", p.Principal, "cannot be negative")
	}
	if err := p.Schedule.Validate(); err != nil {
		return err
	}
	if err := p.Market.Validate(); err != nil {
		return err
	}
	return p.Simulation.Validate()
}

// Configuration is the on-disk plan format. Phases list their start ages only;
// each phase ends where the next begins and the last one ends at EndAge.
type Configuration struct {
	Principal  decimal.Decimal    `yaml:"principal" json:"principal"`
	EndAge     int                `yaml:"end_age" json:"end_age"`
	Phases     []PhaseSettings    `yaml:"phases" json:"phases"`
	Market     MarketAssumptions  `yaml:"market" json:"market"`
	Simulation SimulationSettings `yaml:"simulation" json:"simulation"`
}

// PhaseSettings is one phase entry of a Configuration.
type PhaseSettings struct {
	StartAge            int             `yaml:"start_age" json:"start_age"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
	BondAllocationPct   decimal.Decimal `yaml:"bond_allocation_pct" json:"bond_allocation_pct"`
}

// Plan converts the configuration into a validated Plan.
func (c *Configuration) Plan() (*Plan, error) {
	ages := make([]int, 0, len(c.Phases)+1)
	monthly := make([]decimal.Decimal, 0, len(c.Phases))
	bonds := make([]decimal.Decimal, 0, len(c.Phases))
	for _, ph := range c.Phases {
		ages = append(ages, ph.StartAge)
		monthly = append(monthly, ph.MonthlyContribution)
		bonds = append(bonds, ph.BondAllocationPct)
	}
	ages = append(ages, c.EndAge)

	schedule, err := NewSchedule(ages, monthly, bonds)
	if err != nil {
		return nil, err
	}
	settings := c.Simulation
	if settings.Trials == 0 {
		settings.Trials = DefaultTrials
	}
	plan := &Plan{
		Principal:  c.Principal,
		Schedule:   schedule,
		Market:     c.Market,
		Simulation: settings,
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

// Report modes.
const (
	ModeCalculate = "calculate"
	ModeSimulate  = "simulate"
)

// Report is what the output formatters consume.
type Report struct {
	ID          string             `json:"id"`
	Mode        string             `json:"mode"`
	GeneratedAt time.Time          `json:"generated_at"`
	Plan        *Plan              `json:"plan"`
	Projection  *Projection        `json:"projection,omitempty"`
	Summary     *SimulationSummary `json:"summary,omitempty"`
}
