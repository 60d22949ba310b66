package domain

import "github.com/shopspring/decimal"

// TrialStatus tags how a trial ended.
type TrialStatus string

const (
	// StatusOK means every year's expenses were covered.
	StatusOK TrialStatus = "ok"

	// StatusRuined means at least one year left a deficit neither account
	// could cover. A ruined trial still runs to the horizon with floored
	// balances.
	StatusRuined TrialStatus = "ruined"
)

// YearRecord captures one simulated year, in the exact shape the verbose
// trace prints. Balances are the year-end values, after that year's cash
// flows and growth; the flow fields are that single year's totals.
type YearRecord struct {
	Year                  int             `json:"year"`
	MarketValue           decimal.Decimal `json:"market_value"`
	RetirementValue       decimal.Decimal `json:"retirement_value"`
	JobIncome             decimal.Decimal `json:"job_income"`
	SpendingExpense       decimal.Decimal `json:"spending_expense"`
	CarExpense            decimal.Decimal `json:"car_expense"`
	ChildExpense          decimal.Decimal `json:"child_expense"`
	MarketSpending        decimal.Decimal `json:"market_spending"`
	MarketContributed     decimal.Decimal `json:"market_contributed"`
	RetirementSpending    decimal.Decimal `json:"retirement_spending"`
	RetirementContributed decimal.Decimal `json:"retirement_contributed"`
}

// TrialOutcome is the terminal summary of one trial, one aggregate row.
type TrialOutcome struct {
	// Trial is the trial's index within its batch.
	Trial int `json:"trial"`

	// StartOffset is the day offset into the historical series the trial
	// replayed. Meaningful only when the batch ran in bootstrap mode.
	StartOffset int `json:"start_offset"`

	// FinalWealth is market plus retirement at the horizon.
	FinalWealth decimal.Decimal `json:"final_wealth"`

	Status TrialStatus `json:"status"`

	// RuinYear is the first year with an uncovered deficit, -1 if none.
	RuinYear int `json:"ruin_year"`

	// Deficit is the uncovered amount of the ruin year, zero if none.
	Deficit decimal.Decimal `json:"deficit"`

	// RetirementWealth is total wealth at the start of the first year
	// with no job income. Nil when the job outlasts the horizon.
	RetirementWealth *decimal.Decimal `json:"retirement_wealth,omitempty"`
}

// BatchResult is everything one run hands to the output formatter.
type BatchResult struct {
	// Bootstrap records whether outcomes carry meaningful start offsets.
	Bootstrap bool `json:"bootstrap"`

	// Outcomes holds one terminal summary per trial, in trial order.
	// Empty for verbose runs.
	Outcomes []TrialOutcome `json:"outcomes,omitempty"`

	// Trace is the per-year trajectory of the selected trial when the
	// run is verbose, nil otherwise.
	Trace []YearRecord `json:"trace,omitempty"`

	// TraceTrial is the trial index Trace follows.
	TraceTrial int `json:"trace_trial,omitempty"`
}

// Verbose reports whether the result is a single-trial trace.
func (r *BatchResult) Verbose() bool {
	return len(r.Trace) > 0
}
