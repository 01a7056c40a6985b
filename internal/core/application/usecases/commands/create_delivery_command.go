package commands

import (
	"errors"
	"time"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/services"
	"barrieredi/internal/pkg/errs"
	"barrieredi/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a partner's request to file a delivery
// notice against one of their orders. Lines are optional: an empty proposal
// auto-fills every order line that still has remaining quantity.
//
// Example:
//
//	cmd, err := NewCreateDeliveryCommand("PART-A1B2C3", orderID, date, nil, "")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory, clock)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Delivery %s filed", result.Delivery.Number())
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	partnerCode  string
	orderID      kernel.UUID
	deliveryDate time.Time
	lines        []services.ProposedLine
	notes        string

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to file a delivery notice.
// Validates the partner code and order reference; the proposed lines are
// checked by the aggregate when they are attached.
func NewCreateDeliveryCommand(
	partnerCode string,
	orderID kernel.UUID,
	deliveryDate time.Time,
	lines []services.ProposedLine,
	notes string,
) (CreateDeliveryCommand, error) {
	deliveryCommand := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliveryCommand.setPartnerCode(partnerCode),
		deliveryCommand.setOrderID(orderID),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	deliveryCommand.deliveryDate = deliveryDate
	deliveryCommand.lines = lines
	deliveryCommand.notes = notes
	return deliveryCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDeliveryCommandIsNotConstructed if validation fails.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// PartnerCode returns the filing partner's access code.
func (c CreateDeliveryCommand) PartnerCode() string {
	return c.partnerCode
}

// OrderID returns the order the notice is filed against.
func (c CreateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryDate returns the announced delivery date.
func (c CreateDeliveryCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// Lines returns the proposed lines, possibly empty.
func (c CreateDeliveryCommand) Lines() []services.ProposedLine {
	return c.lines
}

// Notes returns the free-text notes for the notice.
func (c CreateDeliveryCommand) Notes() string {
	return c.notes
}

func (c *CreateDeliveryCommand) setPartnerCode(partnerCode string) error {
	if partnerCode == "" {
		return errs.NewValueIsRequiredError("partner code")
	}
	c.partnerCode = partnerCode
	return nil
}

func (c *CreateDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
