package queries

import (
	"context"

	"barrieredi/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRemainingQuantitiesQueryHandler lists the order lines with quantity
// still to deliver. The subtraction runs on the decimal values in Go rather
// than in SQL, so the figures match what the aggregates would compute.
type GetRemainingQuantitiesQueryHandler struct {
	db *gorm.DB
}

// NewGetRemainingQuantitiesQueryHandler creates a handler for remaining quantity listings.
func NewGetRemainingQuantitiesQueryHandler(db *gorm.DB) GetRemainingQuantitiesQueryHandler {
	return GetRemainingQuantitiesQueryHandler{db: db}
}

// Handle executes the query and returns the lines with remaining > 0 in
// position order. Fully delivered and over-delivered lines are filtered out.
func (h GetRemainingQuantitiesQueryHandler) Handle(
	ctx context.Context,
	query GetRemainingQuantitiesQuery,
) ([]GetRemainingQuantitiesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	lines := make([]GetRemainingQuantitiesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			position,
			material_code,
			material_description,
			unit_of_measure,
			quantity_ordered,
			quantity_delivered
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetRemainingQuantitiesQueryResponse
		var id uuid.UUID
		var ordered, delivered string

		err = rows.Scan(
			&id,
			&resp.Position,
			&resp.MaterialCode,
			&resp.MaterialDescription,
			&resp.UnitOfMeasure,
			&ordered,
			&delivered,
		)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderItemID = itemID

		resp.QuantityOrdered, err = kernel.ParseQuantity(ordered)
		if err != nil {
			return nil, err
		}
		resp.QuantityDelivered, err = kernel.ParseQuantity(delivered)
		if err != nil {
			return nil, err
		}

		resp.Remaining = resp.QuantityOrdered.Sub(resp.QuantityDelivered)
		if !resp.Remaining.IsPositive() {
			continue
		}

		lines = append(lines, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
