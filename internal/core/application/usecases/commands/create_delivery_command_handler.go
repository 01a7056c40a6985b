package commands

import (
	"context"
	"fmt"

	"barrieredi/internal/core/domain/model/delivery"
	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/services"
	"barrieredi/internal/pkg/errs"
)

// CreateDeliveryResult carries the filed notice and whether its lines were
// auto-filled from the order's remaining quantities.
type CreateDeliveryResult struct {
	Delivery  *delivery.Delivery
	Populated bool
}

// CreateDeliveryCommandHandler handles the business logic for filing a
// delivery notice. The notice number comes from the day-scoped sequence
// inside the same transaction, so a concurrent creation on the same day can
// surface a retryable conflict instead of a duplicate number.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	assembler  services.DeliveryAssembler
	clock      kernel.Clock
}

// NewCreateDeliveryCommandHandler creates a handler for delivery filing.
// Requires a DeliveryUoWFactory for transactional persistence and a clock
// for the notice number's day component and the submission timestamp.
func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory, clock kernel.Clock) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		assembler:  services.NewDeliveryAssembler(),
		clock:      clock,
	}
}

// Handle files the notice atomically: resolves the partner and order, draws
// the next notice number, assembles and submits the notice, and moves the
// order into delivery.
func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (CreateDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateDeliveryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	filer, err := uow.PartnerRepository().GetByCode(ctx, cmd.PartnerCode())
	if err != nil {
		return CreateDeliveryResult{}, err
	}
	if !filer.IsActive() {
		return CreateDeliveryResult{}, errs.NewConflictErrorWithCause(
			"partner",
			fmt.Errorf("partner %s is deactivated", filer.Code()),
		)
	}

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return CreateDeliveryResult{}, err
	}

	day := h.clock.Now()
	sequence, err := uow.DeliveryNumbers().Next(ctx, day)
	if err != nil {
		return CreateDeliveryResult{}, err
	}
	number, err := delivery.FormatNumber(day, sequence)
	if err != nil {
		return CreateDeliveryResult{}, err
	}

	notice, err := delivery.NewDelivery(
		kernel.NewUUID(), number, ord, filer.ID(), cmd.DeliveryDate(), cmd.Notes(),
	)
	if err != nil {
		return CreateDeliveryResult{}, err
	}

	populated, err := h.assembler.Assemble(notice, ord, cmd.Lines(), h.clock)
	if err != nil {
		return CreateDeliveryResult{Populated: populated}, err
	}

	if err = uow.DeliveryRepository().Add(ctx, notice); err != nil {
		return CreateDeliveryResult{}, err
	}

	if err = ord.MarkInDelivery(); err != nil {
		return CreateDeliveryResult{}, err
	}
	if err = orderRepo.Update(ctx, ord); err != nil {
		return CreateDeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateDeliveryResult{}, err
	}

	return CreateDeliveryResult{Delivery: notice, Populated: populated}, nil
}
