package services

import (
	"barrieredi/internal/core/domain/model/delivery"
	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/order"
)

// ProposedLine is one line of a delivery notice as proposed by the partner:
// an order line reference with the quantity to declare. Zero or negative
// quantities are rejected by the aggregate when the line is attached.
type ProposedLine struct {
	OrderItemID kernel.UUID
	Quantity    kernel.Quantity
	Notes       string
}

// DeliveryAssembler is a domain service that builds a submitted delivery
// notice from a partner's proposal.
//
// Key responsibilities:
//   - Attaching the proposed lines to a fresh Draft notice
//   - Auto-filling the notice with every undelivered order line when the
//     partner proposes no lines at all
//   - Submitting the assembled notice
//
// Business rules:
//   - An empty proposal declares the full remaining quantity of every order
//     line that still has one; lines already delivered in full are skipped
//   - A notice may end up with no lines when the order has nothing left to
//     deliver; it is still submitted and the returned flag tells the caller
//     nothing was populated
type DeliveryAssembler struct{}

// NewDeliveryAssembler creates a new DeliveryAssembler instance.
func NewDeliveryAssembler() DeliveryAssembler {
	return DeliveryAssembler{}
}

// Assemble attaches lines to the draft notice and submits it. When lines is
// empty the notice is populated from the order's undelivered lines; the
// returned flag reports whether the auto-fill actually attached anything,
// so a fully delivered order yields a flagged zero-item notice.
func (a DeliveryAssembler) Assemble(
	d *delivery.Delivery,
	ord *order.Order,
	lines []ProposedLine,
	clock kernel.Clock,
) (populated bool, err error) {
	if err = d.Validate(); err != nil {
		return false, err
	}
	if err = ord.Validate(); err != nil {
		return false, err
	}

	if len(lines) == 0 {
		lines = a.remainingLines(ord)
		populated = len(lines) > 0
	}

	for _, line := range lines {
		item, err := delivery.NewItem(kernel.NewUUID(), line.OrderItemID, line.Quantity, line.Notes)
		if err != nil {
			return populated, err
		}
		if err = d.AddItem(ord, item); err != nil {
			return populated, err
		}
	}

	if err = d.Submit(clock.Now()); err != nil {
		return populated, err
	}

	return populated, nil
}

// remainingLines proposes the full remaining quantity of every order line
// that still has something to deliver.
func (a DeliveryAssembler) remainingLines(ord *order.Order) []ProposedLine {
	var lines []ProposedLine
	for _, item := range ord.Items() {
		remaining := item.Remaining()
		if !remaining.IsPositive() {
			continue
		}
		lines = append(lines, ProposedLine{
			OrderItemID: item.ID(),
			Quantity:    remaining,
		})
	}
	return lines
}
