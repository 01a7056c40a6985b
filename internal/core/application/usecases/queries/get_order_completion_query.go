package queries

import (
	"errors"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderCompletionQueryIsNotConstructed = errors.New(
		"GetOrderCompletionQuery must be created via NewGetOrderCompletionQuery constructor",
	)
)

// GetOrderCompletionQuery retrieves the delivery progress of an order:
// total ordered and delivered quantities across all lines and the resulting
// completion percentage.
type GetOrderCompletionQuery struct {
	guard guard.ConstructorGuard

	orderID kernel.UUID
}

// NewGetOrderCompletionQuery creates a query for the given order.
func NewGetOrderCompletionQuery(orderID kernel.UUID) (GetOrderCompletionQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderCompletionQuery{}, err
	}

	return GetOrderCompletionQuery{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// OrderID returns the order the report is scoped to.
func (q GetOrderCompletionQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderCompletionQueryIsNotConstructed if validation fails.
func (q GetOrderCompletionQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderCompletionQueryIsNotConstructed)
}

// GetOrderCompletionQueryResponse represents the delivery progress of one
// order. Percentage is delivered/ordered at 2 decimals; an order with no
// lines reports zero totals, 0% and incomplete.
type GetOrderCompletionQueryResponse struct {
	OrderID        kernel.UUID
	TotalOrdered   kernel.Quantity
	TotalDelivered kernel.Quantity
	Percentage     decimal.Decimal
	IsComplete     bool
}
