package order

import (
	"errors"
	"fmt"
	"time"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a purchase order imported from the external
// source system. It owns its Items: lines are replaced, totaled and have
// their delivered counters extended only through the aggregate.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, a non-empty order number and a
//     valid owning partner
//   - The order number is the external key of the source system and unique
//     across the ledger
//   - total value always equals the sum of its items' line totals; it is
//     recomputed whenever the item set changes
//   - Item positions are unique within the order
type Order struct {
	id           kernel.UUID
	number       string
	partnerID    kernel.UUID
	orderDate    time.Time
	deliveryDate time.Time
	currency     string
	totalValue   kernel.Money
	status       Status
	notes        string
	syncedAt     *time.Time
	items        []*Item

	isConstructed bool
}

// Completion is the read-only delivery-progress aggregate of an order.
// Percentage is delivered/ordered at 2 decimals, 0 when nothing is ordered.
type Completion struct {
	TotalOrdered   kernel.Quantity
	TotalDelivered kernel.Quantity
	Percentage     decimal.Decimal
	IsComplete     bool
}

// NewOrder creates an Order in Pending status with no items and a zero total.
// Items are attached afterwards via ReplaceItems, which also computes the
// total value.
func NewOrder(
	id kernel.UUID,
	number string,
	partnerID kernel.UUID,
	orderDate, deliveryDate time.Time,
	currency string,
	notes string,
	syncedAt *time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setPartnerID(partnerID),
		o.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	o.orderDate = orderDate
	o.deliveryDate = deliveryDate
	o.notes = notes
	o.syncedAt = syncedAt
	return o, nil
}

// RestoreOrder reconstructs an Order with its items from persistence.
func RestoreOrder(
	id kernel.UUID,
	number string,
	partnerID kernel.UUID,
	orderDate, deliveryDate time.Time,
	currency string,
	totalValue kernel.Money,
	status Status,
	notes string,
	syncedAt *time.Time,
	items []*Item,
) (*Order, error) {
	o, err := NewOrder(id, number, partnerID, orderDate, deliveryDate, currency, notes, syncedAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if err = o.setItems(items); err != nil {
		return nil, err
	}

	o.status = status
	o.totalValue = totalValue
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the external order number.
func (o *Order) Number() string {
	return o.number
}

// PartnerID returns the owning partner's identifier.
func (o *Order) PartnerID() kernel.UUID {
	return o.partnerID
}

// OrderDate returns the order date from the source system.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// DeliveryDate returns the requested delivery date.
func (o *Order) DeliveryDate() time.Time {
	return o.deliveryDate
}

// Currency returns the ISO currency code of the order.
func (o *Order) Currency() string {
	return o.currency
}

// TotalValue returns the sum of the items' line totals.
func (o *Order) TotalValue() kernel.Money {
	return o.totalValue
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Notes returns the free-text notes of the order.
func (o *Order) Notes() string {
	return o.notes
}

// SyncedAt returns the last feed synchronization timestamp, or nil.
func (o *Order) SyncedAt() *time.Time {
	return o.syncedAt
}

// Items returns the order's lines, in position order as loaded.
func (o *Order) Items() []*Item {
	return o.items
}

// Item returns the line with the given identifier.
// Returns an ObjectNotFoundError when no such line belongs to this order,
// which is also what enforces the "all delivery lines reference the same
// order" rule at delivery creation.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.id.IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order item", itemID.String())
}

// ResetForReimport overwrites the scalar fields from a fresh feed payload and
// resets the status to Pending. The item set is replaced separately via
// ReplaceItems; total value is zeroed here pending that replacement.
func (o *Order) ResetForReimport(
	partnerID kernel.UUID,
	orderDate, deliveryDate time.Time,
	currency string,
	notes string,
	syncedAt *time.Time,
) error {
	if err := errors.Join(
		o.setPartnerID(partnerID),
		o.setCurrency(currency),
	); err != nil {
		return err
	}

	o.orderDate = orderDate
	o.deliveryDate = deliveryDate
	o.notes = notes
	o.syncedAt = syncedAt
	o.status = Pending
	o.items = nil
	o.totalValue = kernel.ZeroMoney()
	return nil
}

// ReplaceItems discards all current lines and installs the given set,
// recomputing the total value from the new lines. A re-import therefore
// wipes any previously accumulated delivered quantities on the order; the
// feed payload supersedes all prior delivery state.
func (o *Order) ReplaceItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	if err := o.setItems(items); err != nil {
		return err
	}

	o.recomputeTotal()
	return nil
}

// ApplyAccepted extends the delivered counter of one line by an accepted
// quantity. Called by delivery validation, once per validated delivery line,
// inside the validation transaction.
func (o *Order) ApplyAccepted(itemID kernel.UUID, accepted kernel.Quantity) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}

	item.addDelivered(accepted)
	return nil
}

// MarkSentToPartner records that the order was exposed to its partner.
func (o *Order) MarkSentToPartner() error {
	if !o.status.IsOpen() {
		return o.closedStatusConflict()
	}
	if o.status == Pending {
		o.status = SentToPartner
	}
	return nil
}

// MarkInDelivery records that at least one delivery notice exists for the
// order. A no-op when the order is already in delivery.
func (o *Order) MarkInDelivery() error {
	if !o.status.IsOpen() {
		return o.closedStatusConflict()
	}
	o.status = InDelivery
	return nil
}

// MarkDelivered closes the order once every line has been fully delivered.
func (o *Order) MarkDelivered() error {
	if !o.status.IsOpen() {
		return o.closedStatusConflict()
	}
	if !o.IsFullyDelivered() {
		return errs.NewConflictErrorWithCause(
			"order",
			fmt.Errorf("order %s still has undelivered quantities", o.number),
		)
	}
	o.status = Delivered
	return nil
}

// Cancel withdraws an open order.
func (o *Order) Cancel() error {
	if !o.status.IsOpen() {
		return o.closedStatusConflict()
	}
	o.status = Cancelled
	return nil
}

func (o *Order) closedStatusConflict() error {
	return errs.NewConflictErrorWithCause(
		"order",
		fmt.Errorf("order %s is %s and cannot change state", o.number, o.status),
	)
}

// Completion sums ordered and delivered quantities across all lines.
// An order with no lines (or a zero ordered total) reports 0% and incomplete.
func (o *Order) Completion() Completion {
	totalOrdered := kernel.ZeroQuantity()
	totalDelivered := kernel.ZeroQuantity()
	for _, item := range o.items {
		totalOrdered = totalOrdered.Add(item.quantityOrdered)
		totalDelivered = totalDelivered.Add(item.quantityDelivered)
	}

	percentage := decimal.Zero
	if totalOrdered.IsPositive() {
		percentage = totalDelivered.Decimal().
			Div(totalOrdered.Decimal()).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return Completion{
		TotalOrdered:   totalOrdered,
		TotalDelivered: totalDelivered,
		Percentage:     percentage,
		IsComplete:     totalOrdered.IsPositive() && !totalOrdered.GreaterThan(totalDelivered),
	}
}

// IsFullyDelivered reports whether every line has delivered ≥ ordered.
func (o *Order) IsFullyDelivered() bool {
	for _, item := range o.items {
		if !item.IsFullyDelivered() {
			return false
		}
	}
	return len(o.items) > 0
}

func (o *Order) recomputeTotal() {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.lineTotal)
	}
	o.totalValue = total
}

func (o *Order) setItems(items []*Item) error {
	positions := make(map[int]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := positions[item.position]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("duplicate position %d", item.position),
			)
		}
		positions[item.position] = struct{}{}
	}

	o.items = items
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	o.partnerID = partnerID
	return nil
}

func (o *Order) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	o.currency = currency
	return nil
}
