package commands

import (
	"context"
	"errors"
	"fmt"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/order"
	"barrieredi/internal/core/domain/model/partner"
	"barrieredi/internal/core/ports"
	"barrieredi/internal/pkg/errs"
)

// ImportOrderResult reports the outcome of one feed entry upsert.
// Warnings carry the defensive-parse degradations: a malformed quantity or
// price was stored as zero and the operator needs to know.
type ImportOrderResult struct {
	OrderID  kernel.UUID
	Created  bool
	Warnings []string
}

// ImportOrderCommandHandler handles the business logic for the order feed
// upsert. An entry either creates a new order or overwrites an existing one
// keyed on the order number; in both cases the payload's lines replace
// whatever the ledger held before, delivered counters included.
//
// Example:
//
//	handler := NewImportOrderCommandHandler(uowFactory, kernel.NewSystemClock())
//	cmd, _ := NewImportOrderCommand(payload)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order import failed: %w", err)
//	}
//	for _, w := range result.Warnings {
//	    log.Warn(w)
//	}
type ImportOrderCommandHandler struct {
	uowFactory ImportUoWFactory
	clock      kernel.Clock
}

// NewImportOrderCommandHandler creates a handler for feed upsert operations.
// Requires an ImportUoWFactory for transactional persistence and a clock for
// the synchronization timestamp.
func NewImportOrderCommandHandler(uowFactory ImportUoWFactory, clock kernel.Clock) ImportOrderCommandHandler {
	return ImportOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes one feed entry atomically. The partner code must resolve
// to an existing partner; unknown codes fail the entry. Any failure rolls
// back every write of this entry.
func (h *ImportOrderCommandHandler) Handle(ctx context.Context, cmd ImportOrderCommand) (ImportOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ImportOrderResult{}, err
	}

	payload := cmd.Payload()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ImportOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partnerAggregate, err := h.resolvePartner(ctx, uow.PartnerRepository(), payload.PartnerCode)
	if err != nil {
		return ImportOrderResult{}, err
	}

	items, warnings, err := h.buildItems(payload)
	if err != nil {
		return ImportOrderResult{}, err
	}

	orderRepo := uow.OrderRepository()
	existing, err := h.findExisting(ctx, orderRepo, payload.OrderNumber)
	if err != nil {
		return ImportOrderResult{}, err
	}

	syncedAt := h.clock.Now()
	result := ImportOrderResult{Warnings: warnings}

	if existing == nil {
		created, err := order.NewOrder(
			kernel.NewUUID(), payload.OrderNumber, partnerAggregate.ID(),
			cmd.OrderDate(), cmd.DeliveryDate(), payload.Currency,
			payload.Notes, &syncedAt,
		)
		if err != nil {
			return ImportOrderResult{}, err
		}
		if err = created.ReplaceItems(items); err != nil {
			return ImportOrderResult{}, err
		}
		if err = orderRepo.Add(ctx, created); err != nil {
			return ImportOrderResult{}, err
		}
		result.OrderID = created.ID()
		result.Created = true
	} else {
		err = existing.ResetForReimport(
			partnerAggregate.ID(), cmd.OrderDate(), cmd.DeliveryDate(),
			payload.Currency, payload.Notes, &syncedAt,
		)
		if err != nil {
			return ImportOrderResult{}, err
		}
		if err = existing.ReplaceItems(items); err != nil {
			return ImportOrderResult{}, err
		}
		if err = orderRepo.Update(ctx, existing); err != nil {
			return ImportOrderResult{}, err
		}
		result.OrderID = existing.ID()
	}

	if err = uow.Commit(ctx); err != nil {
		return ImportOrderResult{}, err
	}

	return result, nil
}

// resolvePartner maps an unknown partner code to a validation error: from
// the feed's point of view the code is bad input, not a missing object.
func (h *ImportOrderCommandHandler) resolvePartner(
	ctx context.Context,
	repo ports.PartnerRepository,
	code string,
) (*partner.Partner, error) {
	p, err := repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewValueIsInvalidErrorWithCause("partner_code", err)
		}
		return nil, err
	}
	return p, nil
}

// findExisting treats not-found as "create a new order".
func (h *ImportOrderCommandHandler) findExisting(
	ctx context.Context,
	repo ports.OrderRepository,
	number string,
) (*order.Order, error) {
	existing, err := repo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}

// buildItems constructs the order lines from the payload. Malformed numeric
// values degrade to zero and produce a warning; everything else fails hard.
func (h *ImportOrderCommandHandler) buildItems(payload OrderPayload) ([]*order.Item, []string, error) {
	var warnings []string
	items := make([]*order.Item, 0, len(payload.Items))

	for _, itemPayload := range payload.Items {
		quantity, err := itemPayload.QuantityOrdered.Quantity()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf(
				"order %s position %d: quantity_ordered %q stored as zero: %v",
				payload.OrderNumber, itemPayload.Position, itemPayload.QuantityOrdered.Raw(), err,
			))
		}
		price, err := itemPayload.NetPrice.Money()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf(
				"order %s position %d: net_price %q stored as zero: %v",
				payload.OrderNumber, itemPayload.Position, itemPayload.NetPrice.Raw(), err,
			))
		}

		itemDate, err := parseFeedDate("delivery_date", itemPayload.DeliveryDate)
		if err != nil {
			return nil, nil, err
		}

		item, err := order.NewItem(
			kernel.NewUUID(), itemPayload.Position,
			itemPayload.MaterialCode, itemPayload.MaterialDescription,
			quantity, itemPayload.UnitOfMeasure, itemDate,
			price, itemPayload.PriceUnit, itemPayload.PriceUnitOrder,
		)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}

	return items, warnings, nil
}
