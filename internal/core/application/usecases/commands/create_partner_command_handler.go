package commands

import (
	"context"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/partner"
)

// CreatePartnerCommandHandler handles the business logic for partner
// provisioning. The access code is drawn from the random generator and
// checked against the ledger inside the transaction, retrying on the rare
// collision.
type CreatePartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewCreatePartnerCommandHandler creates a handler for partner provisioning.
// Requires a PartnerUoWFactory for transactional persistence.
func NewCreatePartnerCommandHandler(uowFactory PartnerUoWFactory) CreatePartnerCommandHandler {
	return CreatePartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle provisions the partner with a unique access code and persists it.
func (h *CreatePartnerCommandHandler) Handle(ctx context.Context, cmd CreatePartnerCommand) (*partner.Partner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partnerRepo := uow.PartnerRepository()
	code, err := partner.GenerateUniqueCode(partner.DefaultCodePrefix, func(candidate string) (bool, error) {
		return partnerRepo.ExistsByCode(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	created, err := partner.NewPartner(kernel.NewUUID(), code, cmd.Name(), cmd.Contact())
	if err != nil {
		return nil, err
	}

	if err = partnerRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
