package main

import (
	"fmt"

	"github.com/finsim/household-simulator/internal/config"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file without running it",
		Long: `Validate parses a YAML configuration, applies defaults and runs the
full validation pass, reporting the first problem found. Nothing is
simulated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				return fmt.Errorf("--config is required")
			}

			cfg, err := config.NewInputParser().LoadFromFile(path)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d-year horizon, %d trials, %s returns\n",
				path, cfg.Simulation.Years, cfg.Simulation.Count, cfg.Returns.Mode)
			return nil
		},
	}

	cmd.Flags().String("config", "", "YAML configuration file to validate (required)")
	return cmd
}
