package ledger

import (
	"github.com/shopspring/decimal"
)

// Money is a currency amount kept at two-decimal precision
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d half away from zero to two decimals
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// Amounts must fit NUMERIC(14,2), the narrowest durable format
const (
	maxIntegerDigits = 12
	maxInputScale    = 20
)

var maxAbsAmount = decimal.New(1, maxIntegerDigits)

// BoundedMoney rounds d like NewMoney but rejects magnitudes no backend can store.
// The exponent is checked first: rounding or comparing a value like 1e100000000
// would have to materialize every one of its digits.
func BoundedMoney(field string, d decimal.Decimal) (Money, error) {
	if d.Exponent() > maxIntegerDigits {
		return Money{}, ErrInvalidInput{Field: field, Reason: "must be less than 1000000000000 in magnitude"}
	}
	if d.Exponent() < -maxInputScale {
		return Money{}, ErrInvalidInput{Field: field, Reason: "must have at most 20 decimal places"}
	}

	m := NewMoney(d)
	if m.Abs().Cmp(maxAbsAmount) >= 0 {
		return Money{}, ErrInvalidInput{Field: field, Reason: "must be less than 1000000000000 in magnitude"}
	}
	return m, nil
}

// ZeroMoney returns 0.00
func ZeroMoney() Money {
	return NewMoney(decimal.Zero)
}

// Equal reports whether both amounts represent the same value
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// String renders the amount with exactly two decimals
func (m Money) String() string {
	return m.StringFixed(2)
}

// MarshalJSON writes the amount as a bare JSON number with two decimals
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}
