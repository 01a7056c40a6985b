// Package queries contains the read side of the reconciliation application:
// portal listings and progress reports served straight from the database,
// bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/pkg/errs"
	"barrieredi/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery retrieves the open orders of a partner for the portal
// listing: everything in pending, sent-to-partner or in-delivery status,
// identified by the partner's access code.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard

	partnerCode string
}

// NewGetActiveOrdersQuery creates a query for the given partner access code.
func NewGetActiveOrdersQuery(partnerCode string) (GetActiveOrdersQuery, error) {
	if partnerCode == "" {
		return GetActiveOrdersQuery{}, errs.NewValueIsRequiredError("partnerCode")
	}

	return GetActiveOrdersQuery{
		guard:       guard.NewConstructorGuard(),
		partnerCode: partnerCode,
	}, nil
}

// PartnerCode returns the access code the listing is scoped to.
func (q GetActiveOrdersQuery) PartnerCode() string {
	return q.partnerCode
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveOrdersQueryIsNotConstructed if validation fails.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse represents one open order in the portal listing.
type GetActiveOrdersQueryResponse struct {
	ID           kernel.UUID
	Number       string
	Status       string
	OrderDate    time.Time
	DeliveryDate time.Time
	Currency     string
	TotalValue   kernel.Money
}
