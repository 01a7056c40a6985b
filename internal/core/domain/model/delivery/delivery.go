package delivery

import (
	"errors"
	"fmt"
	"time"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/order"
	"barrieredi/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

// Delivery is the aggregate root for a delivery notice a partner files
// against one order. Lines are added and validated only through the
// aggregate, which enforces that every line references the parent order and
// that validation runs at most once.
//
// Delivery follows these invariants:
//   - Must have a valid unique identifier, a non-empty notice number and
//     valid order and partner references
//   - The partner filing the notice owns the referenced order
//   - Every line references a distinct line of that same order
//   - A validated or rejected notice can never be validated again
type Delivery struct {
	id               kernel.UUID
	number           string
	orderID          kernel.UUID
	partnerID        kernel.UUID
	deliveryDate     time.Time
	status           Status
	validationStatus ValidationStatus
	notes            string
	submittedAt      *time.Time
	validatedAt      *time.Time
	validatedBy      string
	items            []*Item

	isConstructed bool
}

// NewDelivery creates a Delivery in Draft status against an open order owned
// by the given partner. Lines are attached afterwards via AddItem and the
// notice is handed over with Submit.
func NewDelivery(
	id kernel.UUID,
	number string,
	ord *order.Order,
	partnerID kernel.UUID,
	deliveryDate time.Time,
	notes string,
) (*Delivery, error) {
	if err := ord.Validate(); err != nil {
		return nil, err
	}

	d := &Delivery{
		status:           Draft,
		validationStatus: ValidationPending,
		isConstructed:    true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setNumber(number),
		d.setPartnerID(partnerID),
	); err != nil {
		return nil, err
	}

	if !ord.PartnerID().IsEqual(partnerID) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"partner",
			fmt.Errorf("order %s does not belong to partner %s", ord.Number(), partnerID),
		)
	}
	if !ord.Status().IsOpen() {
		return nil, errs.NewConflictErrorWithCause(
			"order",
			fmt.Errorf("order %s is %s and no longer accepts deliveries", ord.Number(), ord.Status()),
		)
	}

	d.orderID = ord.ID()
	d.deliveryDate = deliveryDate
	d.notes = notes
	return d, nil
}

// RestoreDelivery reconstructs a Delivery with its lines from persistence.
func RestoreDelivery(
	id kernel.UUID,
	number string,
	orderID, partnerID kernel.UUID,
	deliveryDate time.Time,
	status Status,
	validationStatus ValidationStatus,
	notes string,
	submittedAt, validatedAt *time.Time,
	validatedBy string,
	items []*Item,
) (*Delivery, error) {
	d := &Delivery{
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setNumber(number),
		d.setPartnerID(partnerID),
		orderID.Validate(),
		status.Validate(),
		validationStatus.Validate(),
	); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	d.orderID = orderID
	d.deliveryDate = deliveryDate
	d.status = status
	d.validationStatus = validationStatus
	d.notes = notes
	d.submittedAt = submittedAt
	d.validatedAt = validatedAt
	d.validatedBy = validatedBy
	d.items = items
	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// Number returns the delivery notice number, e.g. "AVZ-20250601-0001".
func (d *Delivery) Number() string {
	return d.number
}

// OrderID returns the referenced order's identifier.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// PartnerID returns the filing partner's identifier.
func (d *Delivery) PartnerID() kernel.UUID {
	return d.partnerID
}

// DeliveryDate returns the announced delivery date.
func (d *Delivery) DeliveryDate() time.Time {
	return d.deliveryDate
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// ValidationStatus returns the recorded validation outcome.
func (d *Delivery) ValidationStatus() ValidationStatus {
	return d.validationStatus
}

// Notes returns the free-text notes of the notice.
func (d *Delivery) Notes() string {
	return d.notes
}

// SubmittedAt returns when the notice was handed over, or nil.
func (d *Delivery) SubmittedAt() *time.Time {
	return d.submittedAt
}

// ValidatedAt returns when the notice was validated, or nil.
func (d *Delivery) ValidatedAt() *time.Time {
	return d.validatedAt
}

// ValidatedBy returns who validated the notice, empty before validation.
func (d *Delivery) ValidatedBy() string {
	return d.validatedBy
}

// Items returns the delivery's lines.
func (d *Delivery) Items() []*Item {
	return d.items
}

// HasDiscrepancy reports whether any line carries a discrepancy flag.
func (d *Delivery) HasDiscrepancy() bool {
	for _, item := range d.items {
		if item.hasDiscrepancy {
			return true
		}
	}
	return false
}

// AddItem attaches a line to a Draft notice. The referenced order line must
// belong to the parent order, the declared quantity must be positive and must
// not exceed the line's remaining quantity, and no other line of this notice
// may reference the same order line. A declaration below the remaining
// quantity is allowed and flags a creation-time discrepancy.
func (d *Delivery) AddItem(ord *order.Order, item *Item) error {
	if d.status != Draft {
		return errs.NewConflictErrorWithCause(
			"delivery",
			fmt.Errorf("delivery %s is %s, lines can only be added in draft", d.number, d.status),
		)
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if !ord.ID().IsEqual(d.orderID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("order %s is not the order of delivery %s", ord.Number(), d.number),
		)
	}

	orderItem, err := ord.Item(item.orderItemID)
	if err != nil {
		return err
	}

	for _, existing := range d.items {
		if existing.orderItemID.IsEqual(item.orderItemID) {
			return errs.NewValueIsInvalidErrorWithCause(
				"order item",
				fmt.Errorf("order item %s is already declared on delivery %s", item.orderItemID, d.number),
			)
		}
	}

	if !item.quantityDelivered.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity delivered",
			fmt.Errorf("%s is not greater than 0", item.quantityDelivered),
		)
	}

	remaining := orderItem.Remaining()
	if item.quantityDelivered.GreaterThan(remaining) {
		return errs.NewValueIsOutOfRangeError(
			"quantity delivered",
			item.quantityDelivered.String(), "0.001", remaining.String(),
		)
	}
	if !item.quantityDelivered.Equals(remaining) {
		item.flagCreationDiscrepancy(remaining)
	}

	d.items = append(d.items, item)
	return nil
}

// Submit hands a Draft notice over for validation. An empty notice is
// accepted here; validation is where it fails, so the caller can still
// inspect and void it.
func (d *Delivery) Submit(at time.Time) error {
	if d.status != Draft {
		return errs.NewConflictErrorWithCause(
			"delivery",
			fmt.Errorf("delivery %s is %s and cannot be submitted", d.number, d.status),
		)
	}

	d.status = Submitted
	d.submittedAt = &at
	return nil
}

// BeginValidation marks a Submitted notice as being worked on.
func (d *Delivery) BeginValidation() error {
	if d.status != Submitted {
		return errs.NewConflictErrorWithCause(
			"delivery",
			fmt.Errorf("delivery %s is %s and cannot enter validation", d.number, d.status),
		)
	}
	d.status = Validating
	return nil
}

// ApplyValidation records the accepted quantity for every line, keyed by the
// delivery line identifier, and extends the order's delivered counters. Each
// line whose accepted quantity differs from its declaration is flagged as a
// discrepancy; the creation-time flag is overwritten either way.
//
// The notice must be submitted or validating; a second validation attempt
// returns a ConflictError. Every line needs an entry in accepted. An
// accepted quantity above the declaration is applied as-is: the order
// line's remaining quantity goes negative and the discrepancy flag carries
// the signal.
//
// The outcome is ValidationApproved when every line was accepted exactly
// as declared and ValidationPartial otherwise; the notice ends Validated
// either way.
func (d *Delivery) ApplyValidation(
	ord *order.Order,
	validatedBy string,
	at time.Time,
	accepted map[kernel.UUID]kernel.Quantity,
) error {
	if !d.status.IsAwaitingValidation() {
		return errs.NewConflictErrorWithCause(
			"delivery",
			fmt.Errorf("delivery %s is %s and cannot be validated", d.number, d.status),
		)
	}
	if validatedBy == "" {
		return errs.NewValueIsRequiredError("validated by")
	}
	if err := ord.Validate(); err != nil {
		return err
	}
	if !ord.ID().IsEqual(d.orderID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("order %s is not the order of delivery %s", ord.Number(), d.number),
		)
	}
	if len(d.items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range d.items {
		if _, ok := accepted[item.id]; !ok {
			return errs.NewValueIsRequiredErrorWithCause(
				"accepted quantity",
				fmt.Errorf("no accepted quantity for delivery item %s", item.id),
			)
		}
	}

	allFull := true
	for _, item := range d.items {
		quantity := accepted[item.id]
		item.recordValidation(quantity)
		if err := ord.ApplyAccepted(item.orderItemID, quantity); err != nil {
			return err
		}

		if !quantity.Equals(item.quantityDelivered) {
			allFull = false
		}
	}

	if allFull {
		d.validationStatus = ValidationApproved
	} else {
		d.validationStatus = ValidationPartial
	}
	d.status = Validated
	d.validatedAt = &at
	d.validatedBy = validatedBy
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("delivery number")
	}
	d.number = number
	return nil
}

func (d *Delivery) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	d.partnerID = partnerID
	return nil
}
