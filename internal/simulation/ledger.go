package simulation

import (
	"github.com/finsim/household-simulator/internal/domain"
	"github.com/finsim/household-simulator/pkg/money"
	"github.com/shopspring/decimal"
)

// AccountState is the two-account ledger a trial mutates year by year. The
// flow fields accumulate within one year and reset at each year boundary.
type AccountState struct {
	Market     decimal.Decimal
	Retirement decimal.Decimal

	MarketContributed     decimal.Decimal
	MarketWithdrawn       decimal.Decimal
	RetirementContributed decimal.Decimal
	RetirementWithdrawn   decimal.Decimal
}

// NewAccountState seeds a ledger state with the configured balances.
func NewAccountState(cfg domain.AccountsConfig) *AccountState {
	return &AccountState{
		Market:                cfg.MarketAmount,
		Retirement:            cfg.RetirementAmount,
		MarketContributed:     decimal.Zero,
		MarketWithdrawn:       decimal.Zero,
		RetirementContributed: decimal.Zero,
		RetirementWithdrawn:   decimal.Zero,
	}
}

// Total returns market plus retirement.
func (s *AccountState) Total() decimal.Decimal {
	return s.Market.Add(s.Retirement)
}

// ResetFlows zeroes the per-year cumulative flow fields.
func (s *AccountState) ResetFlows() {
	s.MarketContributed = decimal.Zero
	s.MarketWithdrawn = decimal.Zero
	s.RetirementContributed = decimal.Zero
	s.RetirementWithdrawn = decimal.Zero
}

// Ledger applies yearly cash flows to an AccountState under the retirement
// account's contribution cap and unlock rule.
type Ledger struct {
	limit      decimal.Decimal
	unlockYear float64
}

func NewLedger(cfg domain.AccountsConfig) *Ledger {
	return &Ledger{
		limit:      cfg.RetirementLimit,
		unlockYear: cfg.RetirementUnlockYear,
	}
}

// Unlocked reports whether retirement withdrawals are allowed in a year.
func (l *Ledger) Unlocked(year int) bool {
	return float64(year) >= l.unlockYear
}

// ApplyYear settles one year's net cash flow and then grows both balances
// by factor. It returns the uncovered deficit, zero when the year was
// fully funded. Growth applies to the post-cash-flow balances.
func (l *Ledger) ApplyYear(state *AccountState, year int, income, expenses, factor decimal.Decimal) decimal.Decimal {
	state.ResetFlows()

	deficit := decimal.Zero
	surplus := income.Sub(expenses)
	switch {
	case surplus.IsPositive():
		l.contribute(state, surplus)
	case surplus.IsNegative():
		deficit = l.withdraw(state, year, surplus.Neg())
	}

	state.Market = state.Market.Mul(factor)
	state.Retirement = state.Retirement.Mul(factor)
	return deficit
}

// contribute routes a surplus retirement-first up to the year's remaining
// contribution room, remainder to the market account.
func (l *Ledger) contribute(state *AccountState, amount decimal.Decimal) {
	room := money.Max(l.limit.Sub(state.RetirementContributed), decimal.Zero)
	toRetirement := money.Min(amount, room)
	if toRetirement.IsPositive() {
		state.Retirement = state.Retirement.Add(toRetirement)
		state.RetirementContributed = state.RetirementContributed.Add(toRetirement)
	}

	remainder := amount.Sub(toRetirement)
	if remainder.IsPositive() {
		state.Market = state.Market.Add(remainder)
		state.MarketContributed = state.MarketContributed.Add(remainder)
	}
}

// withdraw pulls the needed amount market-first, then from retirement once
// it is unlocked. Both accounts floor at zero; the uncovered remainder is
// returned.
func (l *Ledger) withdraw(state *AccountState, year int, need decimal.Decimal) decimal.Decimal {
	fromMarket := money.Min(need, state.Market)
	if fromMarket.IsPositive() {
		state.Market = state.Market.Sub(fromMarket)
		state.MarketWithdrawn = state.MarketWithdrawn.Add(fromMarket)
		need = need.Sub(fromMarket)
	}

	if need.IsPositive() && l.Unlocked(year) {
		fromRetirement := money.Min(need, state.Retirement)
		if fromRetirement.IsPositive() {
			state.Retirement = state.Retirement.Sub(fromRetirement)
			state.RetirementWithdrawn = state.RetirementWithdrawn.Add(fromRetirement)
			need = need.Sub(fromRetirement)
		}
	}

	return need
}
