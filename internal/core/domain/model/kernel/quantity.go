package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"barrieredi/internal/pkg/errs"
)

// quantityScale is the fixed number of decimal places for measured quantities.
const quantityScale = 3

// Quantity is a value object for measured amounts (ordered, delivered and
// accepted quantities). It is held at a fixed 3-decimal scale.
//
// A Quantity created through NewQuantity or ParseQuantity is never negative.
// Subtraction may produce a negative result on purpose: a negative remaining
// quantity is the discrepancy signal of the reconciliation flow, not an
// invalid state.
//
// The zero value is a valid zero quantity, so quantities can be accumulated
// without explicit initialization.
type Quantity struct {
	value decimal.Decimal
}

// ZeroQuantity returns a quantity of 0.000.
func ZeroQuantity() Quantity {
	return Quantity{}
}

// NewQuantity creates a Quantity from a decimal value, rounding to 3 decimals.
// Negative values are rejected.
func NewQuantity(value decimal.Decimal) (Quantity, error) {
	if value.IsNegative() {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%s is negative", value.String()),
		)
	}
	return Quantity{value: value.Round(quantityScale)}, nil
}

// ParseQuantity parses a Quantity from its string representation.
//
// A malformed string yields a zero quantity together with a non-nil error, so
// callers can choose between failing hard and degrading to zero while
// reporting the problem. A parse failure is always distinguishable from a
// legitimate "0" input by the returned error.
func ParseQuantity(s string) (Quantity, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", err)
	}
	return NewQuantity(value)
}

// MustParseQuantity parses a Quantity and panics on failure. Test helper.
func MustParseQuantity(s string) Quantity {
	q, err := ParseQuantity(s)
	if err != nil {
		panic(err)
	}
	return q
}

// Add returns the sum of two quantities.
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value.Add(other.value).Round(quantityScale)}
}

// Sub returns the difference of two quantities. The result may be negative.
func (q Quantity) Sub(other Quantity) Quantity {
	return Quantity{value: q.value.Sub(other.value).Round(quantityScale)}
}

// IsZero reports whether the quantity equals 0.
func (q Quantity) IsZero() bool {
	return q.value.IsZero()
}

// IsPositive reports whether the quantity is strictly greater than 0.
func (q Quantity) IsPositive() bool {
	return q.value.IsPositive()
}

// IsNegative reports whether the quantity is strictly less than 0.
func (q Quantity) IsNegative() bool {
	return q.value.IsNegative()
}

// GreaterThan reports whether q is strictly greater than other.
func (q Quantity) GreaterThan(other Quantity) bool {
	return q.value.GreaterThan(other.value)
}

// Equals reports whether two quantities represent the same amount.
func (q Quantity) Equals(other Quantity) bool {
	return q.value.Equal(other.value)
}

// Decimal returns the underlying decimal value.
func (q Quantity) Decimal() decimal.Decimal {
	return q.value
}

// String returns the quantity formatted with 3 decimal places, e.g. "10.000".
func (q Quantity) String() string {
	return q.value.StringFixed(quantityScale)
}
