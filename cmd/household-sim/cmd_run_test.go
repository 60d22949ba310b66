package main

import (
	"fmt"
	"strings"
	"testing"
)

const syntheticConfigYAML = `
accounts:
  market_amount: 100000
job:
  salary: 80000
  duration: 10
  rate: 0.02
spending:
  annual: 40000
  rate: 0.02
returns:
  mode: synthetic
simulation:
  years: 10
  count: 4
  seed: 3
`

func outputLines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

func TestRunCmd_FlagsOnlySynthetic(t *testing.T) {
	out, _, err := execute(t, newRunCmd(), "run",
		"--market-amount", "100000",
		"--job-salary", "80000",
		"--job-duration", "10",
		"--spending-annual", "40000",
		"--sim-years", "10",
		"--sim-count", "5",
		"--sim-seed", "3",
	)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := outputLines(out)
	if lines[0] != "final,status,retirement_value" {
		t.Errorf("header = %q, want final,status,retirement_value", lines[0])
	}
	if len(lines) != 6 {
		t.Errorf("got %d lines, want header plus 5 rows", len(lines))
	}
}

func TestRunCmd_ConfigFileWithFlagOverride(t *testing.T) {
	path := writeFixture(t, "config.yaml", syntheticConfigYAML)

	out, _, err := execute(t, newRunCmd(), "run", "--config", path, "--sim-count", "7")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := outputLines(out)
	if len(lines) != 8 {
		t.Errorf("got %d lines, want header plus the 7 overridden trials", len(lines))
	}
}

func TestRunCmd_RunsAreDeterministic(t *testing.T) {
	path := writeFixture(t, "config.yaml", syntheticConfigYAML)

	first, _, err := execute(t, newRunCmd(), "run", "--config", path)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, _, err := execute(t, newRunCmd(), "run", "--config", path)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if first != second {
		t.Errorf("two runs of the same configuration differ:\n%s\nvs\n%s", first, second)
	}
}

func TestRunCmd_HistoricalSweep(t *testing.T) {
	csvPath := writeMarketCSV(t, 1200)
	configYAML := fmt.Sprintf(`
accounts:
  market_amount: 250000
job:
  salary: 90000
  duration: 10
spending:
  annual: 50000
returns:
  data: %s
simulation:
  years: 3
  seed: 1
  sweep: true
`, csvPath)
	path := writeFixture(t, "config.yaml", configYAML)

	out, errOut, err := execute(t, newRunCmd(), "run", "--config", path)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := outputLines(out)
	if lines[0] != "start,final,status,retirement_value" {
		t.Errorf("header = %q, want start,final,status,retirement_value", lines[0])
	}
	// 1200 points minus the 1095-day span of a 3-year horizon.
	if len(lines) != 106 {
		t.Errorf("got %d lines, want header plus 105 offsets", len(lines))
	}
	if !strings.HasPrefix(lines[1], "0,") || !strings.HasPrefix(lines[105], "104,") {
		t.Errorf("sweep rows not in ascending offset order: first %q, last %q", lines[1], lines[105])
	}
	if !strings.Contains(errOut, "sweeping") {
		t.Errorf("stderr = %q, want the sweep diagnostic", errOut)
	}
	if strings.Contains(out, "sweeping") {
		t.Error("diagnostics leaked onto stdout")
	}
}

func TestRunCmd_VerboseTrace(t *testing.T) {
	path := writeFixture(t, "config.yaml", syntheticConfigYAML)

	out, _, err := execute(t, newRunCmd(), "run", "--config", path, "--verbose", "--sim-trial", "2")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := outputLines(out)
	wantHeader := "year,market_value,retirement_value,job_income,spending_expense," +
		"car_expense,child_expense,market_spending,market_contributed," +
		"retirement_spending,retirement_contributed"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want the full trace column set", lines[0])
	}
	if len(lines) != 11 {
		t.Errorf("got %d lines, want header plus one row per simulated year", len(lines))
	}
	if !strings.HasPrefix(lines[1], "0,") || !strings.HasPrefix(lines[10], "9,") {
		t.Errorf("trace rows not in year order: first %q, last %q", lines[1], lines[10])
	}
}

func TestRunCmd_TableFormat(t *testing.T) {
	path := writeFixture(t, "config.yaml", syntheticConfigYAML)

	out, _, err := execute(t, newRunCmd(), "run", "--config", path, "--format", "table")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "TRIAL") || !strings.Contains(out, "$") {
		t.Errorf("table output missing its header or currency symbols:\n%s", out)
	}
}

func TestRunCmd_ValidationFailure(t *testing.T) {
	out, _, err := execute(t, newRunCmd(), "run",
		"--spending-annual", "40000",
		"--sim-years", "-5",
	)
	if err == nil {
		t.Fatal("Expected a validation error")
	}
	if !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("err = %q, want a wrapped validation failure", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want nothing before a config failure", out)
	}
}

func TestRunCmd_UnknownFormat(t *testing.T) {
	path := writeFixture(t, "config.yaml", syntheticConfigYAML)

	_, _, err := execute(t, newRunCmd(), "run", "--config", path, "--format", "xml")
	if err == nil {
		t.Fatal("Expected an unsupported format error")
	}
	if !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("err = %q, want an unsupported format message", err)
	}
}

func TestRunCmd_MissingDataFile(t *testing.T) {
	_, _, err := execute(t, newRunCmd(), "run",
		"--spending-annual", "40000",
		"--returns-mode", "historical",
		"--data", "/nonexistent/market.csv",
	)
	if err == nil {
		t.Fatal("Expected an error for a missing data file")
	}
	if !strings.Contains(err.Error(), "failed to open data file") {
		t.Errorf("err = %q, want the data file open failure", err)
	}
}

func TestRunCmd_NegativeStartOffsetDisablesOverride(t *testing.T) {
	csvPath := writeMarketCSV(t, 1200)

	out, _, err := execute(t, newRunCmd(), "run",
		"--market-amount", "250000",
		"--spending-annual", "50000",
		"--data", csvPath,
		"--sim-years", "3",
		"--sim-count", "4",
		"--start-offset", "-1",
	)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if lines := outputLines(out); len(lines) != 5 {
		t.Errorf("got %d lines, want header plus 4 sampled trials", len(lines))
	}
}

func TestRunCmd_ForcedStartOffset(t *testing.T) {
	csvPath := writeMarketCSV(t, 1200)

	out, _, err := execute(t, newRunCmd(), "run",
		"--market-amount", "250000",
		"--spending-annual", "50000",
		"--data", csvPath,
		"--sim-years", "3",
		"--sim-count", "3",
		"--start-offset", "42",
	)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := outputLines(out)
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "42,") {
			t.Errorf("row %q not anchored at offset 42", line)
		}
	}
}
