package order

import (
	"fmt"

	"barrieredi/internal/pkg/errs"
)

// Status represents the lifecycle state of an imported order.
//
// State transitions:
//
//	Pending ──> SentToPartner ──> InDelivery ──> Delivered
//	   │              │                │
//	   └──────────────┴────────────────┴──────> Cancelled
//
// A re-import resets any order back to Pending (the feed supersedes local
// progress; see the import use case). Pending, SentToPartner and InDelivery
// form the open set a partner may still deliver against; Delivered and
// Cancelled are closed.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status after import from the source system.
	Pending

	// SentToPartner indicates the order was exposed to its partner.
	SentToPartner

	// InDelivery indicates at least one delivery notice exists for the order.
	InDelivery

	// Delivered indicates all quantities were delivered. Closed state.
	Delivered

	// Cancelled indicates the order was withdrawn. Closed state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "unknown",
		Pending:       "pending",
		SentToPartner: "sent_to_partner",
		InDelivery:    "in_delivery",
		Delivered:     "delivered",
		Cancelled:     "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:       "pending",
		SentToPartner: "sent_to_partner",
		InDelivery:    "in_delivery",
		Delivered:     "delivered",
		Cancelled:     "cancelled",
	}
}

// OpenStatuses returns the statuses a partner may still deliver against.
func OpenStatuses() []Status {
	return []Status{Pending, SentToPartner, InDelivery}
}

// StatusFromString parses a persisted status string.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid order status", s),
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

// String returns the persisted name of the status, e.g. "sent_to_partner".
// Implements fmt.Stringer; safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsOpen reports whether the status is in the open set
// {pending, sent_to_partner, in_delivery}.
func (s Status) IsOpen() bool {
	return s == Pending || s == SentToPartner || s == InDelivery
}
