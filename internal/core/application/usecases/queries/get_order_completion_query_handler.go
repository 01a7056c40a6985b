package queries

import (
	"context"
	"errors"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderCompletionQueryHandler reports delivery progress for one order.
// The totals are accumulated on the decimal values in Go, matching the
// arithmetic of the order aggregate's own completion report.
type GetOrderCompletionQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderCompletionQueryHandler creates a handler for completion reports.
func NewGetOrderCompletionQueryHandler(db *gorm.DB) GetOrderCompletionQueryHandler {
	return GetOrderCompletionQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when the order
// does not exist; an order that exists but has no lines reports zero totals.
func (h GetOrderCompletionQueryHandler) Handle(
	ctx context.Context,
	query GetOrderCompletionQuery,
) (GetOrderCompletionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderCompletionQueryResponse{}, err
	}

	var exists int
	err := h.db.WithContext(ctx).Raw(
		`SELECT 1 FROM orders WHERE id = ?`, query.OrderID().Bytes(),
	).Scan(&exists).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return GetOrderCompletionQueryResponse{}, err
	}
	if exists == 0 {
		return GetOrderCompletionQueryResponse{},
			errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT quantity_ordered, quantity_delivered
		FROM order_items
		WHERE order_id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderCompletionQueryResponse{}, err
	}
	defer rows.Close()

	totalOrdered := kernel.ZeroQuantity()
	totalDelivered := kernel.ZeroQuantity()

	for rows.Next() {
		var ordered, delivered string
		if err = rows.Scan(&ordered, &delivered); err != nil {
			return GetOrderCompletionQueryResponse{}, err
		}

		orderedQty, qtyErr := kernel.ParseQuantity(ordered)
		if qtyErr != nil {
			return GetOrderCompletionQueryResponse{}, qtyErr
		}
		deliveredQty, qtyErr := kernel.ParseQuantity(delivered)
		if qtyErr != nil {
			return GetOrderCompletionQueryResponse{}, qtyErr
		}

		totalOrdered = totalOrdered.Add(orderedQty)
		totalDelivered = totalDelivered.Add(deliveredQty)
	}

	if err = rows.Err(); err != nil {
		return GetOrderCompletionQueryResponse{}, err
	}

	percentage := decimal.Zero
	if totalOrdered.IsPositive() {
		percentage = totalDelivered.Decimal().
			Div(totalOrdered.Decimal()).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return GetOrderCompletionQueryResponse{
		OrderID:        query.OrderID(),
		TotalOrdered:   totalOrdered,
		TotalDelivered: totalDelivered,
		Percentage:     percentage,
		IsComplete:     totalOrdered.IsPositive() && !totalOrdered.GreaterThan(totalDelivered),
	}, nil
}
