package delivery

import (
	"fmt"

	"barrieredi/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery notice.
//
// State transitions:
//
//	Draft ──> Submitted ──> Validating ──> Validated
//
// Validation is terminal: once a notice is Validated or Rejected it can
// never be validated again. Rejected exists in the status vocabulary for
// notices refused outside the validation flow.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Draft is the initial status while the partner assembles the notice.
	Draft

	// Submitted indicates the partner handed the notice over for validation.
	Submitted

	// Validating indicates a validator picked the notice up.
	Validating

	// Validated indicates the notice was processed. Terminal state.
	Validated

	// Rejected indicates the notice was refused as a whole. Terminal state.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Draft:         "draft",
		Submitted:     "submitted",
		Validating:    "validating",
		Validated:     "validated",
		Rejected:      "rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:      "draft",
		Submitted:  "submitted",
		Validating: "validating",
		Validated:  "validated",
		Rejected:   "rejected",
	}
}

// StatusFromString parses a persisted status string.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid delivery status", s),
	)
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the persisted name of the status, e.g. "submitted".
// Implements fmt.Stringer; safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsAwaitingValidation reports whether the notice may still be validated,
// i.e. the status is submitted or validating.
func (s Status) IsAwaitingValidation() bool {
	return s == Submitted || s == Validating
}
