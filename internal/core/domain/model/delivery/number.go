package delivery

import (
	"fmt"
	"time"

	"barrieredi/internal/pkg/errs"
)

// NumberPrefix is the fixed prefix of every delivery notice number.
const NumberPrefix = "AVZ"

// FormatNumber builds a delivery notice number from the issuing day and its
// day-scoped sequence value, e.g. "AVZ-20250601-0001". The sequence restarts
// at 1 for each calendar day; the issuing adapter guarantees the value is
// unique for that day.
func FormatNumber(day time.Time, sequence int) (string, error) {
	if sequence <= 0 {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"sequence is invalid",
			fmt.Errorf("%d is not greater than 0", sequence),
		)
	}
	return fmt.Sprintf("%s-%s-%04d", NumberPrefix, day.Format("20060102"), sequence), nil
}
