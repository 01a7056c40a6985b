package queries

import (
	"context"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler serves the partner portal order listing from
// the database. Quantities and amounts are carried as decimal strings out of
// the driver and converted through the kernel value objects, so the listing
// shows exactly what the write side persisted.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order listings.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the partner's open orders sorted by
// order number. A partner with no open orders yields an empty slice; an
// unknown access code does too, the portal login is what authenticates codes.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]int, 0, len(order.OpenStatuses()))
	for _, status := range order.OpenStatuses() {
		statuses = append(statuses, int(status))
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.status,
			o.order_date,
			o.delivery_date,
			o.currency,
			o.total_value
		FROM orders o
		JOIN partners p ON p.id = o.partner_id
		WHERE p.code = ? AND o.status IN ?
		ORDER BY o.number
	`, query.PartnerCode(), statuses).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var status int
		var totalValue string

		err = rows.Scan(
			&id,
			&resp.Number,
			&status,
			&resp.OrderDate,
			&resp.DeliveryDate,
			&resp.Currency,
			&totalValue,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status).String()

		total, moneyErr := kernel.ParseMoney(totalValue)
		if moneyErr != nil {
			return nil, moneyErr
		}
		resp.TotalValue = total

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
