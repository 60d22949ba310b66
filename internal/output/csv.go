package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/finsim/household-simulator/internal/domain"
)

// naValue marks a column with no value, such as the retirement wealth of a
// trial whose job outlasts the horizon.
const naValue = "nan"

// CSVFormatter implements the default machine-readable output: one row per
// trial in aggregate runs, one row per simulated year in verbose runs.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.BatchResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var err error
	if result.Verbose() {
		err = writeTraceRows(w, result.Trace)
	} else {
		err = writeOutcomeRows(w, result)
	}
	if err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeOutcomeRows emits one terminal row per trial. The start column is
// present only when the batch replayed historical windows, where the offset
// identifies the window.
func writeOutcomeRows(w *csv.Writer, result *domain.BatchResult) error {
	header := []string{"final", "status", "retirement_value"}
	if result.Bootstrap {
		header = append([]string{"start"}, header...)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, outcome := range result.Outcomes {
		retirement := naValue
		if outcome.RetirementWealth != nil {
			retirement = outcome.RetirementWealth.StringFixed(2)
		}
		row := []string{
			outcome.FinalWealth.StringFixed(2),
			string(outcome.Status),
			retirement,
		}
		if result.Bootstrap {
			row = append([]string{strconv.Itoa(outcome.StartOffset)}, row...)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

var traceHeader = []string{
	"year",
	"market_value",
	"retirement_value",
	"job_income",
	"spending_expense",
	"car_expense",
	"child_expense",
	"market_spending",
	"market_contributed",
	"retirement_spending",
	"retirement_contributed",
}

func writeTraceRows(w *csv.Writer, trace []domain.YearRecord) error {
	if err := w.Write(traceHeader); err != nil {
		return err
	}
	for _, rec := range trace {
		row := []string{
			strconv.Itoa(rec.Year),
			rec.MarketValue.StringFixed(2),
			rec.RetirementValue.StringFixed(2),
			rec.JobIncome.StringFixed(2),
			rec.SpendingExpense.StringFixed(2),
			rec.CarExpense.StringFixed(2),
			rec.ChildExpense.StringFixed(2),
			rec.MarketSpending.StringFixed(2),
			rec.MarketContributed.StringFixed(2),
			rec.RetirementSpending.StringFixed(2),
			rec.RetirementContributed.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
