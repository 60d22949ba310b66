package output

import (
	"strings"
	"testing"
)

func TestCSVFormatter_AggregateWithStartColumn(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleResult(true))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	want := strings.Join([]string{
		"start,final,status,retirement_value",
		"1200,2500000.00,ok,712345.67",
		"88,0.00,ruined,nan",
		"",
	}, "\n")
	if string(data) != want {
		t.Errorf("Format produced:\n%s\nwant:\n%s", data, want)
	}
}

func TestCSVFormatter_AggregateWithoutStartColumn(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleResult(false))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	want := strings.Join([]string{
		"final,status,retirement_value",
		"2500000.00,ok,712345.67",
		"0.00,ruined,nan",
		"",
	}, "\n")
	if string(data) != want {
		t.Errorf("Format produced:\n%s\nwant:\n%s", data, want)
	}
}

func TestCSVFormatter_Trace(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleTrace())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows", len(lines))
	}

	wantHeader := "year,market_value,retirement_value,job_income,spending_expense," +
		"car_expense,child_expense,market_spending,market_contributed," +
		"retirement_spending,retirement_contributed"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}

	wantRow0 := "0,110000.00,17500.00,100000.00,40000.00,0.00,27777.78,0.00,14722.22,0.00,17500.00"
	if lines[1] != wantRow0 {
		t.Errorf("row 0 = %q, want %q", lines[1], wantRow0)
	}
	wantRow1 := "1,98000.00,16000.00,0.00,41200.00,36000.00,27777.78,104977.78,0.00,0.00,0.00"
	if lines[2] != wantRow1 {
		t.Errorf("row 1 = %q, want %q", lines[2], wantRow1)
	}
}

func TestCSVFormatter_EmptyBatchStillWritesHeader(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleEmpty())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if string(data) != "final,status,retirement_value\n" {
		t.Errorf("Format produced %q, want just the header", data)
	}
}
