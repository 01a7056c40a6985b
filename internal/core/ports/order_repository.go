// Package ports defines repository interfaces for the reconciliation domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// with their complete line sets.
type OrderRepository interface {
	// Add persists a new order aggregate with its lines to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Lines no
	// longer present on the aggregate are removed from storage together
	// with any delivery lines referencing them; the source feed supersedes
	// local state on re-import.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with all lines.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its external order number.
	// The number is the unique key of the source system; the import
	// use case resolves it to decide between insert and overwrite.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetAllOpenByPartner retrieves a partner's orders in the open status
	// set (pending, sent to partner, in delivery), with all lines.
	GetAllOpenByPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error)
}
