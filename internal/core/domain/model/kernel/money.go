package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"barrieredi/internal/pkg/errs"
)

// moneyScale is the number of decimal places for computed monetary amounts.
const moneyScale = 2

// Money is a value object for monetary amounts (unit prices, line totals and
// order totals). The currency lives on the Order; Money itself is a plain
// amount.
//
// Construction keeps the supplied precision: a unit price of 33.335 stays
// 33.335 so that line totals are computed from the exact feed value. Derived
// amounts (LineTotal, Add) are rounded half-up to 2 decimals, and String
// always formats at 2 decimals.
//
// The zero value is a valid 0.00 amount.
type Money struct {
	value decimal.Decimal
}

// ZeroMoney returns an amount of 0.00.
func ZeroMoney() Money {
	return Money{}
}

// NewMoney creates a Money from a decimal value. Negative amounts are
// rejected; precision is preserved as supplied.
func NewMoney(value decimal.Decimal) (Money, error) {
	if value.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", value.String()),
		)
	}
	return Money{value: value}, nil
}

// ParseMoney parses a Money from its string representation. Like
// ParseQuantity, a malformed string yields a zero amount and a non-nil error.
func ParseMoney(s string) (Money, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(value)
}

// MustParseMoney parses a Money and panics on failure. Test helper.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// LineTotal computes quantity × price, rounded half-up to 2 decimals.
// Rounding is half-up, not banker's: 3 × 33.335 = 100.005 rounds to 100.01.
func LineTotal(quantity Quantity, price Money) Money {
	return Money{value: quantity.Decimal().Mul(price.value).Round(moneyScale)}
}

// Add returns the sum of two amounts, rounded to 2 decimals.
func (m Money) Add(other Money) Money {
	return Money{value: m.value.Add(other.value).Round(moneyScale)}
}

// IsZero reports whether the amount equals 0.
func (m Money) IsZero() bool {
	return m.value.IsZero()
}

// Equals reports whether two amounts are equal.
func (m Money) Equals(other Money) bool {
	return m.value.Equal(other.value)
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.value
}

// String returns the amount formatted with 2 decimal places, e.g. "100.01".
func (m Money) String() string {
	return m.value.StringFixed(moneyScale)
}
