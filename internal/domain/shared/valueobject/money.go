package valueobject

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places every stored amount carries.
const MoneyPlaces int32 = 2

var hundred = decimal.NewFromInt(100)

// Money is an immutable monetary amount in the shop's single currency.
// All operations return new Money instances rounded to MoneyPlaces using
// banker's rounding (round half to even).
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money from a decimal, rounding it to cents
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: RoundCents(amount)}
}

// RoundCents rounds d to MoneyPlaces with banker's rounding.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(MoneyPlaces)
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns the sum of both amounts
func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

// Subtract returns the difference of both amounts
func (m Money) Subtract(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

// MultiplyByInt returns the amount multiplied by an integer quantity
func (m Money) MultiplyByInt(factor int64) Money {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(factor)))
}

// Percentage returns rate percent of the amount, e.g. Percentage(10) of 200.00 is 20.00
func (m Money) Percentage(rate decimal.Decimal) Money {
	return NewMoney(m.amount.Mul(rate).Div(hundred))
}

// Equals returns true if both amounts are equal
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan returns true if m < other
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan returns true if m > other
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// GreaterThanOrEqual returns true if m >= other
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// String returns the amount with exactly two decimal places
func (m Money) String() string {
	return m.amount.StringFixed(MoneyPlaces)
}

// MarshalJSON renders Money as a fixed two-place string, e.g. "150.00"
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both "12.50" and 12.5
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.amount = RoundCents(d)
	return nil
}

// Sum adds up a list of amounts
func Sum(amounts ...Money) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.amount)
	}
	return NewMoney(total)
}
