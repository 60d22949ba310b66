package main

import (
	"fmt"

	"github.com/finsim/household-simulator/internal/config"
	"github.com/finsim/household-simulator/internal/domain"
	"github.com/finsim/household-simulator/internal/output"
	"github.com/finsim/household-simulator/internal/simulation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation batch and print result rows",
		Long: `Run projects the configured household across the simulation horizon.

Configuration comes from --config (YAML) and/or flags; a flag always
overrides the file value. Aggregate runs print one terminal row per trial;
--verbose prints the full per-year trace of the trial picked by --sim-trial.

Example:
  household-sim run --config household.yaml --data sp500.csv --sim-count 2000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return runSimulation(cmd, cfg)
		},
	}

	cmd.Flags().String("config", "", "YAML configuration file (flags override file values)")
	cmd.Flags().String("data", "", "Daily Date,Close CSV for historical returns")
	cmd.Flags().String("format", "csv", "Output format: csv, table or json")

	cmd.Flags().Float64("market-amount", 0, "Starting market account balance")
	cmd.Flags().Float64("retirement-amount", 0, "Starting retirement account balance")
	cmd.Flags().Float64("retirement-limit", 0, "Annual retirement contribution cap")
	cmd.Flags().Float64("retirement-unlock-year", 0, "Simulated year retirement withdrawals unlock")

	cmd.Flags().Float64("job-salary", 0, "Starting annual salary")
	cmd.Flags().Float64("job-duration", 0, "Years of employment, fractional allowed")
	cmd.Flags().Float64("job-rate", 0, "Annual raise rate")

	cmd.Flags().Float64("spending-annual", 0, "Base annual spending")
	cmd.Flags().Float64("spending-rate", 0, "Annual spending growth rate")
	cmd.Flags().String("spending-growth", "", "Spending growth mode: exponential or linear")

	cmd.Flags().Float64("child-start", 0, "First child cost window start year")
	cmd.Flags().Float64("child-duration", 0, "First child cost window length in years")
	cmd.Flags().Float64("child-total", 0, "First child total cost, amortized over the window")
	cmd.Flags().Float64("child-close", 0, "First child close-out payment")
	cmd.Flags().Float64("child2-start", 0, "Second child cost window start year")
	cmd.Flags().Float64("child2-duration", 0, "Second child cost window length in years")
	cmd.Flags().Float64("child2-total", 0, "Second child total cost, amortized over the window")
	cmd.Flags().Float64("child2-close", 0, "Second child close-out payment")

	cmd.Flags().Float64("car-down", 0, "Car down payment, charged when the window opens")
	cmd.Flags().Float64("car-total", 0, "Financed car cost, amortized over the window")
	cmd.Flags().Float64("car-start", 0, "Car cost window start year")
	cmd.Flags().Float64("car-duration", 0, "Car cost window length in years")
	cmd.Flags().Float64("car-close", 0, "Car close-out payment when the window ends")

	cmd.Flags().String("returns-mode", "", "Return mode: historical, synthetic or fixed")
	cmd.Flags().Float64("returns-mean", 0, "Synthetic mean annual return")
	cmd.Flags().Float64("returns-stddev", 0, "Synthetic annual return standard deviation")
	cmd.Flags().Float64("returns-rate", 0, "Fixed annual return rate")

	cmd.Flags().Int("sim-years", 0, "Simulation horizon in years")
	cmd.Flags().Int("sim-count", 0, "Number of Monte Carlo trials")
	cmd.Flags().Int64("sim-seed", 0, "RNG seed")
	cmd.Flags().Int("sim-trial", 0, "Trial to trace in verbose mode")
	cmd.Flags().Int("start-offset", -1, "Force every trial to this day offset, -1 disables")
	cmd.Flags().Bool("sweep", false, "Run one trial per valid start offset")
	cmd.Flags().Bool("verbose", false, "Emit the per-year trace of one trial")

	return cmd
}

// buildConfig loads the optional YAML file, lays flag overrides on top,
// then defaults and validates the merged configuration.
func buildConfig(cmd *cobra.Command) (*domain.SimulationConfig, error) {
	parser := config.NewInputParser()

	cfg := &domain.SimulationConfig{}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := parser.ParseFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyFlagOverrides(cmd, cfg)
	parser.ApplyDefaults(cfg)

	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, cfg *domain.SimulationConfig) error {
	debug, _ := cmd.Flags().GetBool("debug")
	logger := simulation.StderrLogger{Debug: debug, Out: cmd.ErrOrStderr()}

	var series *simulation.DailySeries
	if cfg.Bootstrap() {
		loaded, err := simulation.LoadDailySeries(cfg.Returns.Data)
		if err != nil {
			return err
		}
		series = loaded
		stats := series.Stats()
		logger.Infof("loaded %d daily closes from %s (%s to %s)",
			stats.Count, cfg.Returns.Data,
			stats.First.Format("2006-01-02"), stats.Last.Format("2006-01-02"))
	}

	result, err := simulation.NewBatch(cfg, series, logger).Run()
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	return output.Write(cmd.OutOrStdout(), result, format)
}

// applyFlagOverrides copies every explicitly set flag onto the
// configuration. Unset flags leave the file values alone.
func applyFlagOverrides(cmd *cobra.Command, cfg *domain.SimulationConfig) {
	overrideDecimal(cmd, "market-amount", &cfg.Accounts.MarketAmount)
	overrideDecimal(cmd, "retirement-amount", &cfg.Accounts.RetirementAmount)
	overrideDecimal(cmd, "retirement-limit", &cfg.Accounts.RetirementLimit)
	overrideFloat(cmd, "retirement-unlock-year", &cfg.Accounts.RetirementUnlockYear)

	overrideDecimal(cmd, "job-salary", &cfg.Job.Salary)
	overrideFloat(cmd, "job-duration", &cfg.Job.Duration)
	overrideDecimal(cmd, "job-rate", &cfg.Job.Rate)

	overrideDecimal(cmd, "spending-annual", &cfg.Spending.Annual)
	overrideDecimal(cmd, "spending-rate", &cfg.Spending.Rate)
	overrideString(cmd, "spending-growth", &cfg.Spending.Growth)

	applyChildOverrides(cmd, cfg, "child", 0)
	applyChildOverrides(cmd, cfg, "child2", 1)

	overrideDecimal(cmd, "car-down", &cfg.Car.Down)
	overrideDecimal(cmd, "car-total", &cfg.Car.Total)
	overrideFloat(cmd, "car-start", &cfg.Car.Start)
	overrideFloat(cmd, "car-duration", &cfg.Car.Duration)
	overrideDecimal(cmd, "car-close", &cfg.Car.Close)

	overrideString(cmd, "returns-mode", &cfg.Returns.Mode)
	overrideString(cmd, "data", &cfg.Returns.Data)
	overrideDecimal(cmd, "returns-mean", &cfg.Returns.Mean)
	overrideDecimal(cmd, "returns-stddev", &cfg.Returns.StdDev)
	overrideDecimal(cmd, "returns-rate", &cfg.Returns.Rate)

	overrideInt(cmd, "sim-years", &cfg.Simulation.Years)
	overrideInt(cmd, "sim-count", &cfg.Simulation.Count)
	overrideInt64(cmd, "sim-seed", &cfg.Simulation.Seed)
	overrideInt(cmd, "sim-trial", &cfg.Simulation.Trial)
	overrideBool(cmd, "sweep", &cfg.Simulation.Sweep)
	overrideBool(cmd, "verbose", &cfg.Simulation.Verbose)

	if cmd.Flags().Changed("start-offset") {
		v, _ := cmd.Flags().GetInt("start-offset")
		if v >= 0 {
			cfg.Simulation.StartOffset = &v
		} else {
			cfg.Simulation.StartOffset = nil
		}
	}
}

// applyChildOverrides grows the children list only when one of the child's
// flags was actually set, so flag defaults never invent a child.
func applyChildOverrides(cmd *cobra.Command, cfg *domain.SimulationConfig, prefix string, index int) {
	touched := false
	for _, suffix := range []string{"-start", "-duration", "-total", "-close"} {
		if cmd.Flags().Changed(prefix + suffix) {
			touched = true
			break
		}
	}
	if !touched {
		return
	}

	for len(cfg.Children) <= index {
		cfg.Children = append(cfg.Children, domain.CostConfig{})
	}
	child := &cfg.Children[index]

	overrideFloat(cmd, prefix+"-start", &child.Start)
	overrideFloat(cmd, prefix+"-duration", &child.Duration)
	overrideDecimal(cmd, prefix+"-total", &child.Total)
	overrideDecimal(cmd, prefix+"-close", &child.Close)
}

func overrideDecimal(cmd *cobra.Command, name string, dst *decimal.Decimal) {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetFloat64(name)
		*dst = decimal.NewFromFloat(v)
	}
}

func overrideFloat(cmd *cobra.Command, name string, dst *float64) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetFloat64(name)
	}
}

func overrideString(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetString(name)
	}
}

func overrideInt(cmd *cobra.Command, name string, dst *int) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetInt(name)
	}
}

func overrideInt64(cmd *cobra.Command, name string, dst *int64) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetInt64(name)
	}
}

func overrideBool(cmd *cobra.Command, name string, dst *bool) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetBool(name)
	}
}
