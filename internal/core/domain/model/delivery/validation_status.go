package delivery

import (
	"fmt"

	"barrieredi/internal/pkg/errs"
)

// ValidationStatus is the outcome dimension of a delivery notice, orthogonal
// to the lifecycle Status. It stays ValidationPending until validation runs,
// then records whether every line was accepted exactly as declared.
type ValidationStatus int

const (
	// ValidationUnknown represents an invalid or undefined outcome.
	// This value (0) helps catch uninitialized ValidationStatus values.
	ValidationUnknown ValidationStatus = iota

	// ValidationPending means the notice has not been validated yet.
	ValidationPending

	// ValidationApproved means every line was accepted exactly as declared.
	ValidationApproved

	// ValidationRejected is reserved for notices refused as a whole,
	// outside the per-line validation flow.
	ValidationRejected

	// ValidationPartial means at least one line differs from its declaration.
	ValidationPartial
)

func getValidationStatusStrings() map[ValidationStatus]string {
	return map[ValidationStatus]string{
		ValidationUnknown:  "unknown",
		ValidationPending:  "pending",
		ValidationApproved: "approved",
		ValidationRejected: "rejected",
		ValidationPartial:  "partial",
	}
}

func getValidValidationStatusStrings() map[ValidationStatus]string {
	//nolint:exhaustive // ValidationUnknown is intentionally excluded as it's invalid
	return map[ValidationStatus]string{
		ValidationPending:  "pending",
		ValidationApproved: "approved",
		ValidationRejected: "rejected",
		ValidationPartial:  "partial",
	}
}

// ValidationStatusFromString parses a persisted validation status string.
func ValidationStatusFromString(s string) (ValidationStatus, error) {
	for status, str := range getValidValidationStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return ValidationUnknown, errs.NewValueIsInvalidErrorWithCause(
		"validation status is invalid",
		fmt.Errorf("%q is not a valid validation status", s),
	)
}

// Validate checks if the ValidationStatus value is valid.
func (s ValidationStatus) Validate() error {
	if _, ok := getValidValidationStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"validation status is invalid",
			fmt.Errorf("%d is not a valid validation status", s),
		)
	}
	return nil
}

// String returns the persisted name of the outcome, e.g. "partial".
// Implements fmt.Stringer; safe to call on any ValidationStatus value.
func (s ValidationStatus) String() string {
	if str, ok := getValidationStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
