package queries

import (
	"errors"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/pkg/guard"
)

var (
	ErrGetRemainingQuantitiesQueryIsNotConstructed = errors.New(
		"GetRemainingQuantitiesQuery must be created via NewGetRemainingQuantitiesQuery constructor",
	)
)

// GetRemainingQuantitiesQuery retrieves the still-deliverable lines of an
// order: every line whose ordered quantity exceeds the accumulated delivered
// counter. The partner delivery form is pre-filled from this listing.
type GetRemainingQuantitiesQuery struct {
	guard guard.ConstructorGuard

	orderID kernel.UUID
}

// NewGetRemainingQuantitiesQuery creates a query for the given order.
func NewGetRemainingQuantitiesQuery(orderID kernel.UUID) (GetRemainingQuantitiesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetRemainingQuantitiesQuery{}, err
	}

	return GetRemainingQuantitiesQuery{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// OrderID returns the order the listing is scoped to.
func (q GetRemainingQuantitiesQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRemainingQuantitiesQueryIsNotConstructed if validation fails.
func (q GetRemainingQuantitiesQuery) Validate() error {
	return q.guard.Validate(ErrGetRemainingQuantitiesQueryIsNotConstructed)
}

// GetRemainingQuantitiesQueryResponse represents one order line that still
// has quantity left to deliver.
type GetRemainingQuantitiesQueryResponse struct {
	OrderItemID         kernel.UUID
	Position            int
	MaterialCode        string
	MaterialDescription string
	UnitOfMeasure       string
	QuantityOrdered     kernel.Quantity
	QuantityDelivered   kernel.Quantity
	Remaining           kernel.Quantity
}
