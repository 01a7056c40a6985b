package commands

import (
	"context"

	"barrieredi/internal/core/domain/model/partner"
)

// RegeneratePartnerCodeCommandHandler handles access code rotation. The new
// code is unique across the ledger; the old one is gone with the commit.
type RegeneratePartnerCodeCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewRegeneratePartnerCodeCommandHandler creates a handler for code rotation.
// Requires a PartnerUoWFactory for transactional persistence.
func NewRegeneratePartnerCodeCommandHandler(uowFactory PartnerUoWFactory) RegeneratePartnerCodeCommandHandler {
	return RegeneratePartnerCodeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle rotates the partner's access code and returns the updated partner.
func (h *RegeneratePartnerCodeCommandHandler) Handle(ctx context.Context, cmd RegeneratePartnerCodeCommand) (*partner.Partner, error) {
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
	rotated, err := partnerRepo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return nil, err
	}

	code, err := partner.GenerateUniqueCode(partner.DefaultCodePrefix, func(candidate string) (bool, error) {
		return partnerRepo.ExistsByCode(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	if err = rotated.AssignCode(code); err != nil {
		return nil, err
	}

	if err = partnerRepo.Update(ctx, rotated); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return rotated, nil
}
