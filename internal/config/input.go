package config

import (
	"fmt"
	"os"

	"github.com/finsim/household-simulator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Defaults applied to fields the configuration leaves unset.
const (
	DefaultYears = 50
	DefaultCount = 1000
	DefaultSeed  = 1

	defaultSyntheticMean   = 0.08
	defaultSyntheticStdDev = 0.15

	maxYears    = 100
	maxChildren = 2
)

// InputParser handles parsing of simulation configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads, defaults, and validates a YAML configuration file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationConfig, error) {
	config, err := ip.ParseFile(filename)
	if err != nil {
		return nil, err
	}

	ip.ApplyDefaults(config)
	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ParseFile unmarshals a YAML file without defaulting or validation, so the
// CLI can layer flag overrides on top before finalizing.
func (ip *InputParser) ParseFile(filename string) (*domain.SimulationConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse unmarshals raw YAML without defaulting or validation.
func (ip *InputParser) Parse(data []byte) (*domain.SimulationConfig, error) {
	var config domain.SimulationConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &config, nil
}

// ApplyDefaults fills the zero-valued fields every run needs.
func (ip *InputParser) ApplyDefaults(config *domain.SimulationConfig) {
	if config.Returns.Mode == "" {
		if config.Returns.Data != "" {
			config.Returns.Mode = domain.ReturnModeHistorical
		} else {
			config.Returns.Mode = domain.ReturnModeSynthetic
		}
	}
	if config.Returns.Mode == domain.ReturnModeSynthetic &&
		config.Returns.Mean.IsZero() && config.Returns.StdDev.IsZero() {
		config.Returns.Mean = decimal.NewFromFloat(defaultSyntheticMean)
		config.Returns.StdDev = decimal.NewFromFloat(defaultSyntheticStdDev)
	}
	if config.Spending.Growth == "" {
		config.Spending.Growth = domain.GrowthExponential
	}
	if config.Simulation.Years == 0 {
		config.Simulation.Years = DefaultYears
	}
	if config.Simulation.Count == 0 {
		config.Simulation.Count = DefaultCount
	}
	if config.Simulation.Seed == 0 {
		config.Simulation.Seed = DefaultSeed
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.SimulationConfig) error {
	if err := ip.validateAccounts(&config.Accounts); err != nil {
		return fmt.Errorf("accounts validation failed: %w", err)
	}
	if err := ip.validateJob(&config.Job); err != nil {
		return fmt.Errorf("job validation failed: %w", err)
	}
	if err := ip.validateSpending(&config.Spending); err != nil {
		return fmt.Errorf("spending validation failed: %w", err)
	}

	if len(config.Children) > maxChildren {
		return fmt.Errorf("at most %d children are supported", maxChildren)
	}
	for i := range config.Children {
		if err := ip.validateCost(&config.Children[i]); err != nil {
			return fmt.Errorf("child %d validation failed: %w", i+1, err)
		}
	}
	if err := ip.validateCost(&config.Car); err != nil {
		return fmt.Errorf("car validation failed: %w", err)
	}

	if err := ip.validateReturns(&config.Returns); err != nil {
		return fmt.Errorf("returns validation failed: %w", err)
	}
	if err := ip.validateSimulation(config); err != nil {
		return fmt.Errorf("simulation validation failed: %w", err)
	}

	return nil
}

func (ip *InputParser) validateAccounts(accounts *domain.AccountsConfig) error {
	if accounts.MarketAmount.IsNegative() {
		return fmt.Errorf("market amount cannot be negative")
	}
	if accounts.RetirementAmount.IsNegative() {
		return fmt.Errorf("retirement amount cannot be negative")
	}
	if accounts.RetirementLimit.IsNegative() {
		return fmt.Errorf("retirement limit cannot be negative")
	}
	if accounts.RetirementUnlockYear < 0 {
		return fmt.Errorf("retirement unlock year cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateJob(job *domain.JobConfig) error {
	if job.Salary.IsNegative() {
		return fmt.Errorf("salary cannot be negative")
	}
	if job.Duration < 0 {
		return fmt.Errorf("job duration cannot be negative")
	}
	if job.Rate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("job raise rate must be greater than -100%%")
	}
	return nil
}

func (ip *InputParser) validateSpending(spending *domain.SpendingConfig) error {
	if spending.Annual.IsNegative() {
		return fmt.Errorf("annual spending cannot be negative")
	}
	one := decimal.NewFromInt(1)
	if spending.Rate.LessThanOrEqual(one.Neg()) || spending.Rate.GreaterThanOrEqual(one) {
		return fmt.Errorf("spending rate must be between -1 and 1 (exclusive)")
	}
	switch spending.Growth {
	case "", domain.GrowthExponential, domain.GrowthLinear:
	default:
		return fmt.Errorf("spending growth must be %s or %s", domain.GrowthExponential, domain.GrowthLinear)
	}
	return nil
}

func (ip *InputParser) validateCost(cost *domain.CostConfig) error {
	if cost.Start < 0 {
		return fmt.Errorf("start year cannot be negative")
	}
	if cost.Duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	if cost.Total.IsNegative() {
		return fmt.Errorf("total cannot be negative")
	}
	if cost.Down.IsNegative() {
		return fmt.Errorf("down payment cannot be negative")
	}
	if cost.Close.IsNegative() {
		return fmt.Errorf("close-out amount cannot be negative")
	}
	if cost.Total.IsPositive() && cost.Duration == 0 {
		return fmt.Errorf("duration must be positive when a total is amortized")
	}
	return nil
}

func (ip *InputParser) validateReturns(returns *domain.ReturnsConfig) error {
	switch returns.Mode {
	case domain.ReturnModeHistorical:
		if returns.Data == "" {
			return fmt.Errorf("historical mode requires a data file")
		}
	case domain.ReturnModeSynthetic:
		if returns.StdDev.IsNegative() {
			return fmt.Errorf("synthetic standard deviation cannot be negative")
		}
	case domain.ReturnModeFixed:
		if returns.Rate.LessThanOrEqual(decimal.NewFromInt(-1)) {
			return fmt.Errorf("fixed rate must be greater than -100%%")
		}
	default:
		return fmt.Errorf("return mode must be %s, %s, or %s",
			domain.ReturnModeHistorical, domain.ReturnModeSynthetic, domain.ReturnModeFixed)
	}
	return nil
}

func (ip *InputParser) validateSimulation(config *domain.SimulationConfig) error {
	sim := &config.Simulation
	if sim.Years < 1 || sim.Years > maxYears {
		return fmt.Errorf("simulation years must be between 1 and %d", maxYears)
	}
	if sim.Count < 1 {
		return fmt.Errorf("simulation count must be at least 1")
	}
	if sim.Trial < 0 {
		return fmt.Errorf("trial selector cannot be negative")
	}
	if sim.Verbose && !sim.Sweep && sim.Trial >= sim.Count {
		return fmt.Errorf("trial selector %d out of range for %d trials", sim.Trial, sim.Count)
	}
	if sim.Sweep && config.Returns.Mode != domain.ReturnModeHistorical {
		return fmt.Errorf("sweep mode requires historical returns")
	}
	if sim.StartOffset != nil {
		if config.Returns.Mode != domain.ReturnModeHistorical {
			return fmt.Errorf("start offset requires historical returns")
		}
		if sim.Sweep {
			return fmt.Errorf("start offset cannot be combined with sweep mode")
		}
		if *sim.StartOffset < 0 {
			return fmt.Errorf("start offset cannot be negative")
		}
	}
	return nil
}
