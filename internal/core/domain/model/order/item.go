package order

import (
	"errors"
	"fmt"
	"time"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is a single material line within an Order. The (order, position) pair
// is unique; positions come from the source system.
//
// The delivered counter starts at zero and is mutated only through the owning
// Order's ApplyAccepted during delivery validation. Remaining quantity is
// always derived as ordered − delivered and may go negative when a validator
// over-accepts; that negative remainder is the discrepancy signal, not a
// constraint violation.
type Item struct {
	id                  kernel.UUID
	position            int
	materialCode        string
	materialDescription string
	quantityOrdered     kernel.Quantity
	unitOfMeasure       string
	deliveryDate        time.Time
	netPrice            kernel.Money
	priceUnit           string
	priceUnitOrder      string
	lineTotal           kernel.Money
	quantityDelivered   kernel.Quantity

	isConstructed bool
}

// NewItem creates an order line with a zero delivered counter. The line total
// is computed as ordered quantity × net price, rounded half-up to 2 decimals.
func NewItem(
	id kernel.UUID,
	position int,
	materialCode, materialDescription string,
	quantityOrdered kernel.Quantity,
	unitOfMeasure string,
	deliveryDate time.Time,
	netPrice kernel.Money,
	priceUnit, priceUnitOrder string,
) (*Item, error) {
	item := &Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setPosition(position),
		item.setMaterial(materialCode, materialDescription),
		item.setUnitOfMeasure(unitOfMeasure),
		item.setPriceUnit(priceUnit),
	); err != nil {
		return nil, err
	}

	item.quantityOrdered = quantityOrdered
	item.deliveryDate = deliveryDate
	item.netPrice = netPrice
	item.priceUnitOrder = priceUnitOrder
	item.lineTotal = kernel.LineTotal(quantityOrdered, netPrice)
	return item, nil
}

// RestoreItem reconstructs an order line from persistence, including its
// stored line total and accumulated delivered counter.
func RestoreItem(
	id kernel.UUID,
	position int,
	materialCode, materialDescription string,
	quantityOrdered kernel.Quantity,
	unitOfMeasure string,
	deliveryDate time.Time,
	netPrice kernel.Money,
	priceUnit, priceUnitOrder string,
	lineTotal kernel.Money,
	quantityDelivered kernel.Quantity,
) (*Item, error) {
	item, err := NewItem(
		id, position, materialCode, materialDescription,
		quantityOrdered, unitOfMeasure, deliveryDate,
		netPrice, priceUnit, priceUnitOrder,
	)
	if err != nil {
		return nil, err
	}

	item.lineTotal = lineTotal
	item.quantityDelivered = quantityDelivered
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

// Position returns the source-system position of the line within its order.
func (i *Item) Position() int {
	return i.position
}

// MaterialCode returns the material code of the line.
func (i *Item) MaterialCode() string {
	return i.materialCode
}

// MaterialDescription returns the material description of the line.
func (i *Item) MaterialDescription() string {
	return i.materialDescription
}

// QuantityOrdered returns the ordered quantity.
func (i *Item) QuantityOrdered() kernel.Quantity {
	return i.quantityOrdered
}

// UnitOfMeasure returns the unit of measure of the line.
func (i *Item) UnitOfMeasure() string {
	return i.unitOfMeasure
}

// DeliveryDate returns the requested delivery date of the line.
func (i *Item) DeliveryDate() time.Time {
	return i.deliveryDate
}

// NetPrice returns the unit price of the line.
func (i *Item) NetPrice() kernel.Money {
	return i.netPrice
}

// PriceUnit returns the pricing unit of the line.
func (i *Item) PriceUnit() string {
	return i.priceUnit
}

// PriceUnitOrder returns the optional source-system pricing unit of the order.
func (i *Item) PriceUnitOrder() string {
	return i.priceUnitOrder
}

// LineTotal returns ordered quantity × net price at 2 decimals.
func (i *Item) LineTotal() kernel.Money {
	return i.lineTotal
}

// QuantityDelivered returns the cumulative delivered quantity.
func (i *Item) QuantityDelivered() kernel.Quantity {
	return i.quantityDelivered
}

// Remaining returns ordered − delivered at 3 decimals. The result is the
// same wherever it is computed: delivery creation, validation and the
// completion aggregate all go through this method.
func (i *Item) Remaining() kernel.Quantity {
	return i.quantityOrdered.Sub(i.quantityDelivered)
}

// IsFullyDelivered reports whether delivered ≥ ordered.
func (i *Item) IsFullyDelivered() bool {
	return !i.quantityOrdered.GreaterThan(i.quantityDelivered)
}

// addDelivered extends the cumulative delivered counter. Only the owning
// Order calls this, from ApplyAccepted.
func (i *Item) addDelivered(quantity kernel.Quantity) {
	i.quantityDelivered = i.quantityDelivered.Add(quantity)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setPosition(position int) error {
	if position <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"position is invalid",
			fmt.Errorf("%d is not greater than 0", position),
		)
	}
	i.position = position
	return nil
}

func (i *Item) setMaterial(code, description string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("material code")
	}
	if description == "" {
		return errs.NewValueIsRequiredError("material description")
	}
	i.materialCode = code
	i.materialDescription = description
	return nil
}

func (i *Item) setUnitOfMeasure(unit string) error {
	if unit == "" {
		return errs.NewValueIsRequiredError("unit of measure")
	}
	i.unitOfMeasure = unit
	return nil
}

func (i *Item) setPriceUnit(priceUnit string) error {
	if priceUnit == "" {
		return errs.NewValueIsRequiredError("price unit")
	}
	i.priceUnit = priceUnit
	return nil
}
