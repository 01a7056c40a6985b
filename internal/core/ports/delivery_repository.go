package ports

import (
	"context"
	"time"

	"barrieredi/internal/core/domain/model/delivery"
	"barrieredi/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery notice
// aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate with its lines to storage.
	// The delivery must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	// The delivery must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	// Returns the complete delivery with all lines.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetForUpdate retrieves a delivery like Get while holding a row lock
	// until the surrounding transaction ends. Validation loads the notice
	// this way so two validators cannot process it concurrently.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetAllByOrder retrieves every delivery filed against an order.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*delivery.Delivery, error)
}

// DeliveryNumberSequence issues day-scoped sequence values for delivery
// notice numbers. Next returns 1 for the first call on a given day and
// increments atomically within the surrounding transaction; concurrent
// transactions never observe the same value for the same day.
type DeliveryNumberSequence interface {
	Next(ctx context.Context, day time.Time) (int, error)
}
