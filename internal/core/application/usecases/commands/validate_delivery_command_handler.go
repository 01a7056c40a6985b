package commands

import (
	"context"

	"barrieredi/internal/core/domain/model/delivery"
	"barrieredi/internal/core/domain/model/kernel"
)

// ValidateDeliveryCommandHandler handles the business logic for delivery
// validation, the central reconciliation operation. The notice is loaded
// under an exclusive row lock, so two validators working the same notice
// serialize and the loser hits the aggregate's re-validation guard instead
// of double-counting order quantities.
type ValidateDeliveryCommandHandler struct {
	uowFactory ValidationUoWFactory
	clock      kernel.Clock
}

// NewValidateDeliveryCommandHandler creates a handler for delivery
// validation. Requires a ValidationUoWFactory for transactional persistence
// and a clock for the validation timestamp.
func NewValidateDeliveryCommandHandler(uowFactory ValidationUoWFactory, clock kernel.Clock) ValidateDeliveryCommandHandler {
	return ValidateDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle validates the notice atomically: records accepted quantities and
// discrepancies on the delivery, extends the order's delivered counters, and
// closes the order when everything has arrived. Any failure rolls the whole
// operation back, counters included.
func (h *ValidateDeliveryCommandHandler) Handle(ctx context.Context, cmd ValidateDeliveryCommand) (*delivery.Delivery, error) {
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

	deliveryRepo := uow.DeliveryRepository()
	notice, err := deliveryRepo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, notice.OrderID())
	if err != nil {
		return nil, err
	}

	if err = notice.ApplyValidation(ord, cmd.ValidatedBy(), h.clock.Now(), cmd.Accepted()); err != nil {
		return nil, err
	}

	if ord.IsFullyDelivered() {
		if err = ord.MarkDelivered(); err != nil {
			return nil, err
		}
	}

	if err = deliveryRepo.Update(ctx, notice); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, ord); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return notice, nil
}
