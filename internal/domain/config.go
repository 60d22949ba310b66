package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Return modes accepted by ReturnsConfig.Mode.
const (
	ReturnModeHistorical = "historical"
	ReturnModeSynthetic  = "synthetic"
	ReturnModeFixed      = "fixed"
)

// Spending growth modes accepted by SpendingConfig.Growth.
const (
	GrowthExponential = "exponential"
	GrowthLinear      = "linear"
)

// SimulationConfig is the root configuration for one simulator run. It is
// immutable once validated.
type SimulationConfig struct {
	Accounts   AccountsConfig     `yaml:"accounts" json:"accounts"`
	Job        JobConfig          `yaml:"job" json:"job"`
	Spending   SpendingConfig     `yaml:"spending" json:"spending"`
	Children   []CostConfig       `yaml:"children,omitempty" json:"children,omitempty"`
	Car        CostConfig         `yaml:"car,omitempty" json:"car,omitempty"`
	Returns    ReturnsConfig      `yaml:"returns" json:"returns"`
	Simulation SimulationSettings `yaml:"simulation" json:"simulation"`
}

// Bootstrap reports whether returns replay the historical series. Bootstrap
// runs are the ones whose aggregate rows carry a start column.
func (c *SimulationConfig) Bootstrap() bool {
	return c.Returns.Mode == ReturnModeHistorical
}

// AccountsConfig holds the starting balances and the retirement account's
// contribution and withdrawal rules.
type AccountsConfig struct {
	// MarketAmount is the taxable account's starting balance.
	MarketAmount decimal.Decimal `yaml:"market_amount" json:"market_amount"`

	// RetirementAmount is the tax-advantaged account's starting balance.
	RetirementAmount decimal.Decimal `yaml:"retirement_amount" json:"retirement_amount"`

	// RetirementLimit caps retirement contributions per simulated year.
	RetirementLimit decimal.Decimal `yaml:"retirement_limit" json:"retirement_limit"`

	// RetirementUnlockYear blocks retirement withdrawals before this
	// simulated year. Default: 0 (withdrawals always allowed).
	RetirementUnlockYear float64 `yaml:"retirement_unlock_year,omitempty" json:"retirement_unlock_year,omitempty"`
}

// UnmarshalYAML decodes monetary fields through decimal strings so plain
// YAML numbers land in decimal.Decimal without float round-trips.
func (a *AccountsConfig) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		MarketAmount         string  `yaml:"market_amount"`
		RetirementAmount     string  `yaml:"retirement_amount"`
		RetirementLimit      string  `yaml:"retirement_limit"`
		RetirementUnlockYear float64 `yaml:"retirement_unlock_year"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	var err error
	if a.MarketAmount, err = decimalField("market_amount", aux.MarketAmount); err != nil {
		return err
	}
	if a.RetirementAmount, err = decimalField("retirement_amount", aux.RetirementAmount); err != nil {
		return err
	}
	if a.RetirementLimit, err = decimalField("retirement_limit", aux.RetirementLimit); err != nil {
		return err
	}
	a.RetirementUnlockYear = aux.RetirementUnlockYear
	return nil
}

// JobConfig describes the household's earned income.
type JobConfig struct {
	// Salary is the starting annual salary.
	Salary decimal.Decimal `yaml:"salary" json:"salary"`

	// Duration is how long the job lasts, fractional years allowed.
	Duration float64 `yaml:"duration" json:"duration"`

	// Rate is the raise compounded at each whole year worked, e.g. 0.02.
	Rate decimal.Decimal `yaml:"rate,omitempty" json:"rate,omitempty"`
}

func (j *JobConfig) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		Salary   string  `yaml:"salary"`
		Duration float64 `yaml:"duration"`
		Rate     string  `yaml:"rate"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	var err error
	if j.Salary, err = decimalField("salary", aux.Salary); err != nil {
		return err
	}
	if j.Rate, err = decimalField("rate", aux.Rate); err != nil {
		return err
	}
	j.Duration = aux.Duration
	return nil
}

// SpendingConfig describes the open-ended household spending. Spending never
// stops; it grows every year by Rate under the selected growth mode.
type SpendingConfig struct {
	// Annual is the base spending for year 0.
	Annual decimal.Decimal `yaml:"annual" json:"annual"`

	// Rate is the annual growth percentage, bounded to (-1, 1).
	Rate decimal.Decimal `yaml:"rate,omitempty" json:"rate,omitempty"`

	// Growth selects GrowthExponential (default) or GrowthLinear.
	Growth string `yaml:"growth,omitempty" json:"growth,omitempty"`
}

func (s *SpendingConfig) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		Annual string `yaml:"annual"`
		Rate   string `yaml:"rate"`
		Growth string `yaml:"growth"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	var err error
	if s.Annual, err = decimalField("annual", aux.Annual); err != nil {
		return err
	}
	if s.Rate, err = decimalField("rate", aux.Rate); err != nil {
		return err
	}
	s.Growth = aux.Growth
	return nil
}

// CostConfig describes one amortized expense window, such as raising a child
// or financing a car.
type CostConfig struct {
	// Start is the simulated year the window opens, fractional years
	// allowed.
	Start float64 `yaml:"start" json:"start"`

	// Total is amortized evenly across the window.
	Total decimal.Decimal `yaml:"total" json:"total"`

	// Duration is the window length in years.
	Duration float64 `yaml:"duration" json:"duration"`

	// Down is paid once in the year the window opens.
	Down decimal.Decimal `yaml:"down,omitempty" json:"down,omitempty"`

	// Close is paid once in the year the window ends.
	Close decimal.Decimal `yaml:"close,omitempty" json:"close,omitempty"`
}

// Enabled reports whether the cost charges anything at all.
func (c CostConfig) Enabled() bool {
	return c.Total.IsPositive() || c.Down.IsPositive() || c.Close.IsPositive()
}

func (c *CostConfig) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		Start    float64 `yaml:"start"`
		Total    string  `yaml:"total"`
		Duration float64 `yaml:"duration"`
		Down     string  `yaml:"down"`
		Close    string  `yaml:"close"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	var err error
	if c.Total, err = decimalField("total", aux.Total); err != nil {
		return err
	}
	if c.Down, err = decimalField("down", aux.Down); err != nil {
		return err
	}
	if c.Close, err = decimalField("close", aux.Close); err != nil {
		return err
	}
	c.Start = aux.Start
	c.Duration = aux.Duration
	return nil
}

// ReturnsConfig selects and parameterizes the return source.
type ReturnsConfig struct {
	// Mode is historical, synthetic, or fixed.
	Mode string `yaml:"mode,omitempty" json:"mode,omitempty"`

	// Data is the daily close series CSV used in historical mode.
	Data string `yaml:"data,omitempty" json:"data,omitempty"`

	// Mean and StdDev parameterize the synthetic annual return.
	Mean   decimal.Decimal `yaml:"mean,omitempty" json:"mean,omitempty"`
	StdDev decimal.Decimal `yaml:"std_dev,omitempty" json:"std_dev,omitempty"`

	// Rate is the constant annual return in fixed mode.
	Rate decimal.Decimal `yaml:"rate,omitempty" json:"rate,omitempty"`
}

func (r *ReturnsConfig) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		Mode   string `yaml:"mode"`
		Data   string `yaml:"data"`
		Mean   string `yaml:"mean"`
		StdDev string `yaml:"std_dev"`
		Rate   string `yaml:"rate"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	var err error
	if r.Mean, err = decimalField("mean", aux.Mean); err != nil {
		return err
	}
	if r.StdDev, err = decimalField("std_dev", aux.StdDev); err != nil {
		return err
	}
	if r.Rate, err = decimalField("rate", aux.Rate); err != nil {
		return err
	}
	r.Mode = aux.Mode
	r.Data = aux.Data
	return nil
}

// SimulationSettings controls how many trials run and what gets emitted.
type SimulationSettings struct {
	// Years is the simulated horizon.
	Years int `yaml:"years" json:"years"`

	// Count is how many Monte Carlo trials to run.
	Count int `yaml:"count" json:"count"`

	// Seed drives every random draw in the batch.
	Seed int64 `yaml:"seed" json:"seed"`

	// Sweep replaces Monte Carlo sampling with one trial per valid day
	// offset, ascending. Historical mode only.
	Sweep bool `yaml:"sweep,omitempty" json:"sweep,omitempty"`

	// StartOffset forces every trial to one day offset when set.
	StartOffset *int `yaml:"start_offset,omitempty" json:"start_offset,omitempty"`

	// Verbose emits the per-year trace of one trial instead of the
	// aggregate rows.
	Verbose bool `yaml:"verbose,omitempty" json:"verbose,omitempty"`

	// Trial selects which trial the verbose trace follows.
	Trial int `yaml:"trial,omitempty" json:"trial,omitempty"`
}

// decimalField parses one monetary or rate field, treating an absent value
// as zero.
func decimalField(name, raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal for %s: %q", name, raw)
	}
	return d, nil
}
