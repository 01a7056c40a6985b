package commands

import (
	"context"
	"fmt"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/partner"
	"barrieredi/internal/pkg/errs"
)

// AuthenticatePartnerCommandHandler handles portal logins. A successful
// login resets the partner's failure counter and stamps the login time; a
// wrong or inactive code is not distinguishable to the caller beyond the
// error kind.
type AuthenticatePartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
	clock      kernel.Clock
}

// NewAuthenticatePartnerCommandHandler creates a handler for portal logins.
// Requires a PartnerUoWFactory for transactional persistence and a clock for
// the login timestamp.
func NewAuthenticatePartnerCommandHandler(uowFactory PartnerUoWFactory, clock kernel.Clock) AuthenticatePartnerCommandHandler {
	return AuthenticatePartnerCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle resolves the access code and records the attempt. An unknown code
// surfaces as not-found; a known but deactivated partner gets its failure
// counter incremented and a conflict back.
func (h *AuthenticatePartnerCommandHandler) Handle(ctx context.Context, cmd AuthenticatePartnerCommand) (*partner.Partner, error) {
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
	found, err := partnerRepo.GetByCode(ctx, cmd.Code())
	if err != nil {
		return nil, err
	}

	if !found.IsActive() {
		found.RecordLoginFailure()
		if err = partnerRepo.Update(ctx, found); err != nil {
			return nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return nil, errs.NewConflictErrorWithCause(
			"partner",
			fmt.Errorf("partner %s is deactivated", found.Code()),
		)
	}

	found.RecordLoginSuccess(h.clock.Now())
	if err = partnerRepo.Update(ctx, found); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return found, nil
}
