package ports

import (
	"context"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for partner aggregates.
type PartnerRepository interface {
	// Add persists a new partner aggregate to storage.
	// The partner must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *partner.Partner) error

	// Update persists changes to an existing partner aggregate.
	// The partner must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *partner.Partner) error

	// Get retrieves a partner aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error)

	// GetByCode retrieves a partner by its access code. The code is the
	// partner's portal credential and unique across the ledger.
	GetByCode(ctx context.Context, code string) (*partner.Partner, error)

	// ExistsByCode reports whether any partner holds the given access code.
	// Used by code generation to retry on the rare collision.
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
