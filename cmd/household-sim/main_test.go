package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

// newTestRootCmd creates a root command with the persistent flags for
// testing subcommands in isolation.
func newTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "household-sim",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Bool("debug", false, "Emit debug diagnostics on stderr")
	return rootCmd
}

// execute runs the given subcommand with args and returns stdout, stderr
// and the execution error.
func execute(t *testing.T, sub *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	root := newTestRootCmd()
	root.AddCommand(sub)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), errOut.String(), err
}

// writeFixture writes content under a temp dir and returns the path.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", name, err)
	}
	return path
}

// writeMarketCSV writes a flat daily close series and returns its path.
func writeMarketCSV(t *testing.T, days int) string {
	t.Helper()

	epoch := time.Date(1971, 1, 4, 0, 0, 0, 0, time.UTC)
	content := "Date,Close\n"
	for day := 0; day < days; day++ {
		content += fmt.Sprintf("%s,100\n", epoch.AddDate(0, 0, day).Format("2006-01-02"))
	}
	return writeFixture(t, "market.csv", content)
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, newVersionCmd(), "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "household-sim version "+version+"\n" {
		t.Errorf("version printed %q", out)
	}
}
