package delivery

import (
	"errors"

	"barrieredi/internal/core/domain/model/kernel"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is a single line of a delivery notice, referencing exactly one line of
// the parent order. The declared quantity is fixed at creation; the accepted
// quantity stays nil until validation records it.
//
// The discrepancy flag means different things before and after validation:
// at creation it marks a declaration that differs from the line's remaining
// quantity, after validation it marks an accepted quantity that differs from
// the declaration. Validation overwrites the creation-time value.
type Item struct {
	id                kernel.UUID
	orderItemID       kernel.UUID
	quantityDelivered kernel.Quantity
	quantityAccepted  *kernel.Quantity
	hasDiscrepancy    bool
	discrepancyReason string
	notes             string

	isConstructed bool
}

// NewItem creates a delivery line declaring a quantity against an order line.
// The parent Delivery enforces the quantity bounds and the same-order rule;
// this constructor only checks identities.
func NewItem(
	id kernel.UUID,
	orderItemID kernel.UUID,
	quantityDelivered kernel.Quantity,
	notes string,
) (*Item, error) {
	item := &Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderItemID(orderItemID),
	); err != nil {
		return nil, err
	}

	item.quantityDelivered = quantityDelivered
	item.notes = notes
	return item, nil
}

// RestoreItem reconstructs a delivery line from persistence, including any
// recorded validation outcome.
func RestoreItem(
	id kernel.UUID,
	orderItemID kernel.UUID,
	quantityDelivered kernel.Quantity,
	quantityAccepted *kernel.Quantity,
	hasDiscrepancy bool,
	discrepancyReason string,
	notes string,
) (*Item, error) {
	item, err := NewItem(id, orderItemID, quantityDelivered, notes)
	if err != nil {
		return nil, err
	}

	item.quantityAccepted = quantityAccepted
	item.hasDiscrepancy = hasDiscrepancy
	item.discrepancyReason = discrepancyReason
	return item, nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// OrderItemID returns the referenced order line's identifier.
func (i *Item) OrderItemID() kernel.UUID {
	return i.orderItemID
}

// QuantityDelivered returns the quantity declared by the partner.
func (i *Item) QuantityDelivered() kernel.Quantity {
	return i.quantityDelivered
}

// QuantityAccepted returns the validated quantity, or nil before validation.
func (i *Item) QuantityAccepted() *kernel.Quantity {
	return i.quantityAccepted
}

// HasDiscrepancy reports the current discrepancy flag. See the type doc for
// its pre- and post-validation meanings.
func (i *Item) HasDiscrepancy() bool {
	return i.hasDiscrepancy
}

// DiscrepancyReason returns the recorded explanation for the discrepancy.
func (i *Item) DiscrepancyReason() string {
	return i.discrepancyReason
}

// Notes returns the free-text notes of the line.
func (i *Item) Notes() string {
	return i.notes
}

// DiscrepancyDelta returns declared − remaining at 3 decimals, negative for
// a short declaration. Remaining comes from the referenced order line at the
// moment the caller computes it.
func (i *Item) DiscrepancyDelta(remaining kernel.Quantity) kernel.Quantity {
	return i.quantityDelivered.Sub(remaining)
}

// flagCreationDiscrepancy records a declaration that differs from the order
// line's remaining quantity. Called by the parent Delivery at AddItem time.
func (i *Item) flagCreationDiscrepancy(remaining kernel.Quantity) {
	i.hasDiscrepancy = true
	i.discrepancyReason = "delivered " + i.quantityDelivered.String() +
		" differs from remaining " + remaining.String()
}

// recordValidation stores the accepted quantity and redefines the discrepancy
// flag against the declaration. Called by the parent Delivery from
// ApplyValidation.
func (i *Item) recordValidation(accepted kernel.Quantity) {
	i.quantityAccepted = &accepted
	if accepted.Equals(i.quantityDelivered) {
		i.hasDiscrepancy = false
		i.discrepancyReason = ""
		return
	}
	i.hasDiscrepancy = true
	i.discrepancyReason = "accepted " + accepted.String() +
		" differs from delivered " + i.quantityDelivered.String()
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setOrderItemID(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}
	i.orderItemID = orderItemID
	return nil
}
