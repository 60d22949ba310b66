package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "household-sim",
		Short: "Household finance simulator",
		Long: `household-sim projects a household's finances over decades of market
returns: a market account and a capped retirement account, a salaried job,
open-ended spending, children and a financed car.

Returns come from historical bootstrap (day offsets into a daily close
series), a synthetic normal distribution, or a fixed rate. Result rows go
to stdout; diagnostics go to stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Emit debug diagnostics on stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newValidateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "household-sim version %s\n", version)
		},
	}
}
