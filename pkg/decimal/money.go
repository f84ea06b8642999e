package decimal

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Money represents a monetary amount held at full precision until Round is called.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// Round rounds the amount to cents, half away from zero.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(twelve)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(twelve)}
}

// Share returns pct percent of the amount (m × pct / 100).
func (m Money) Share(pct decimal.Decimal) Money {
	return Money{m.Decimal.Mul(pct).Div(hundred)}
}

// Grow applies a percentage return to the amount: m × (1 + pct/100).
func (m Money) Grow(pct decimal.Decimal) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(1).Add(pct.Div(hundred)))}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// String returns the amount with exactly two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}
