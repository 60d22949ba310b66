// Package money provides the decimal arithmetic helpers shared by the
// simulation engine and its formatters. Amounts stay unrounded through the
// engine; rendering rounds at the output boundary only.
package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Floor0 clamps negative amounts to zero.
func Floor0(a decimal.Decimal) decimal.Decimal {
	if a.IsNegative() {
		return decimal.Zero
	}
	return a
}

// Compound returns (1 + rate)^periods, the growth multiplier after the
// given number of whole periods.
func Compound(rate decimal.Decimal, periods int) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if periods <= 0 {
		return one
	}
	return one.Add(rate).Pow(decimal.NewFromInt(int64(periods)))
}

// Prorate scales amount by a fractional-year overlap in [0, 1].
func Prorate(amount decimal.Decimal, fraction float64) decimal.Decimal {
	if fraction <= 0 {
		return decimal.Zero
	}
	if fraction >= 1 {
		return amount
	}
	return amount.Mul(decimal.NewFromFloat(fraction))
}

// DisplayUSD renders an amount as grouped US dollars, e.g. "$27,777.78".
func DisplayUSD(amount decimal.Decimal) string {
	cents := amount.Round(2).Shift(2)
	return gomoney.New(cents.IntPart(), gomoney.USD).Display()
}
