package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan configuration from a YAML (or JSON) file and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a plan configuration from YAML bytes and validates it.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.Principal.IsNegative() {
		return errors.New("principal cannot be negative")
	}
	if len(config.Phases) == 0 {
		return errors.New("no phases provided")
	}

	for i, phase := range config.Phases {
		if err := ip.validatePhase(&phase); err != nil {
			return fmt.Errorf("phase %d validation failed: %w", i, err)
		}
	}

	last := config.Phases[len(config.Phases)-1].StartAge
	if config.EndAge <= last {
		return fmt.Errorf("end age %d must be after the last phase start age %d", config.EndAge, last)
	}

	if err := config.Market.Validate(); err != nil {
		return fmt.Errorf("market assumptions validation failed: %w", err)
	}
	if config.Simulation.Trials < 0 {
		return errors.New("trials cannot be negative")
	}

	// The remaining schedule rules (ordering, duplicates) live in the domain.
	if _, err := config.Plan(); err != nil {
		return err
	}
	return nil
}

func (ip *InputParser) validatePhase(phase *domain.PhaseSettings) error {
	if phase.StartAge < 0 {
		return errors.New("start age cannot be negative")
	}
	if phase.MonthlyContribution.IsNegative() {
		return errors.New("monthly contribution cannot be negative")
	}
	if phase.BondAllocationPct.IsNegative() || phase.BondAllocationPct.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("bond allocation must be between 0 and 100 percent")
	}
	return nil
}

// DefaultMarket returns the default market assumptions: bonds 4.5% ± 4.5%,
// stocks 10% ± 20%.
func DefaultMarket() domain.MarketAssumptions {
	return domain.MarketAssumptions{
		BondReturnPct:      4.5,
		BondVolatilityPct:  4.5,
		StockReturnPct:     10,
		StockVolatilityPct: 20,
	}
}

// CreateExampleConfiguration returns a three-phase plan that glides from
// equities into bonds, using the default market assumptions.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Principal: decimal.NewFromInt(25000),
		EndAge:    67,
		Phases: []domain.PhaseSettings{
			{
				StartAge:            30,
				MonthlyContribution: decimal.NewFromInt(500),
				BondAllocationPct:   decimal.NewFromInt(10),
			},
			{
				StartAge:            45,
				MonthlyContribution: decimal.NewFromInt(1000),
				BondAllocationPct:   decimal.NewFromInt(40),
			},
			{
				StartAge:            58,
				MonthlyContribution: decimal.NewFromInt(1500),
				BondAllocationPct:   decimal.NewFromInt(70),
			},
		},
		Market: DefaultMarket(),
		Simulation: domain.SimulationSettings{
			Trials: domain.DefaultTrials,
		},
	}
}

// SaveConfiguration writes a configuration as YAML.
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
