package main

import (
	"strings"
	"testing"
)

func TestValidateCmd_ValidFile(t *testing.T) {
	path := writeFixture(t, "config.yaml", syntheticConfigYAML)

	out, _, err := execute(t, newValidateCmd(), "validate", "--config", path)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "is valid") {
		t.Errorf("output = %q, want a validity confirmation", out)
	}
	if !strings.Contains(out, "10-year horizon, 4 trials, synthetic returns") {
		t.Errorf("output = %q, want the configuration summary", out)
	}
}

func TestValidateCmd_RequiresConfig(t *testing.T) {
	_, _, err := execute(t, newValidateCmd(), "validate")
	if err == nil {
		t.Fatal("Expected an error without --config")
	}
	if !strings.Contains(err.Error(), "--config is required") {
		t.Errorf("err = %q, want the missing flag message", err)
	}
}

func TestValidateCmd_InvalidConfiguration(t *testing.T) {
	path := writeFixture(t, "config.yaml", `
spending:
  annual: 40000
simulation:
  years: 500
`)

	_, _, err := execute(t, newValidateCmd(), "validate", "--config", path)
	if err == nil {
		t.Fatal("Expected a validation error")
	}
	if !strings.Contains(err.Error(), "simulation years must be between") {
		t.Errorf("err = %q, want the years bound message", err)
	}
}

func TestValidateCmd_MissingFile(t *testing.T) {
	_, _, err := execute(t, newValidateCmd(), "validate", "--config", "/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "failed to read file") {
		t.Errorf("err = %q, want the read failure", err)
	}
}
