package simulation

import (
	"github.com/finsim/household-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

// Trial runs one full trajectory from year 0 to the horizon. Each trial
// owns its ledger state and return source; the schedules are shared and
// stateless.
type Trial struct {
	index   int
	offset  int
	horizon int

	accounts  domain.AccountsConfig
	schedules *Schedules
	ledger    *Ledger
	returns   ReturnSource
}

func NewTrial(index, offset, horizon int, accounts domain.AccountsConfig, schedules *Schedules, returns ReturnSource) *Trial {
	return &Trial{
		index:     index,
		offset:    offset,
		horizon:   horizon,
		accounts:  accounts,
		schedules: schedules,
		ledger:    NewLedger(accounts),
		returns:   returns,
	}
}

// Run simulates every year to the horizon, returning the terminal outcome
// and the full per-year trace. Ruin does not stop the loop; the trial keeps
// running on floored balances so the trace always spans the horizon.
func (t *Trial) Run() (domain.TrialOutcome, []domain.YearRecord) {
	state := NewAccountState(t.accounts)
	outcome := domain.TrialOutcome{
		Trial:       t.index,
		StartOffset: t.offset,
		Status:      domain.StatusOK,
		RuinYear:    -1,
		Deficit:     decimal.Zero,
	}
	records := make([]domain.YearRecord, 0, t.horizon)

	for year := 0; year < t.horizon; year++ {
		income := t.schedules.Job.IncomeFor(year)
		if outcome.RetirementWealth == nil && income.IsZero() {
			wealth := state.Total()
			outcome.RetirementWealth = &wealth
		}

		spending := t.schedules.Spending.ExpenseFor(year)
		car := t.schedules.Car.ExpenseFor(year)
		child := t.schedules.ChildExpenseFor(year)
		expenses := spending.Add(car).Add(child)

		factor := t.returns.Factor(year)
		deficit := t.ledger.ApplyYear(state, year, income, expenses, factor)
		if deficit.IsPositive() && outcome.Status == domain.StatusOK {
			outcome.Status = domain.StatusRuined
			outcome.RuinYear = year
			outcome.Deficit = deficit
		}

		records = append(records, domain.YearRecord{
			Year:                  year,
			MarketValue:           state.Market,
			RetirementValue:       state.Retirement,
			JobIncome:             income,
			SpendingExpense:       spending,
			CarExpense:            car,
			ChildExpense:          child,
			MarketSpending:        state.MarketWithdrawn,
			MarketContributed:     state.MarketContributed,
			RetirementSpending:    state.RetirementWithdrawn,
			RetirementContributed: state.RetirementContributed,
		})
	}

	outcome.FinalWealth = state.Total()
	return outcome, records
}
