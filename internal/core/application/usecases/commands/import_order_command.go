package commands

import (
	"errors"
	"fmt"
	"time"

	"barrieredi/internal/pkg/errs"
	"barrieredi/internal/pkg/guard"
)

// DateLayout is the date format of the order feed.
const DateLayout = "2006-01-02"

var ErrImportOrderCommandIsNotConstructed = errors.New(
	"ImportOrderCommand must be created via NewImportOrderCommand constructor",
)

// ImportOrderCommand represents one order feed entry to upsert into the
// ledger. Field presence is validated here so a malformed entry fails before
// any write; the numeric values inside the payload are parsed defensively by
// the handler.
//
// Example:
//
//	cmd, err := NewImportOrderCommand(payload)
//	if err != nil {
//	    return fmt.Errorf("invalid feed entry: %w", err)
//	}
//
//	handler := NewImportOrderCommandHandler(uowFactory, clock)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to import order: %w", err)
//	}
//	fmt.Printf("Order %s imported, %d warnings", payload.OrderNumber, len(result.Warnings))
type ImportOrderCommand struct { //nolint:recvcheck //using for validation
	payload      OrderPayload
	orderDate    time.Time
	deliveryDate time.Time

	guard guard.ConstructorGuard
}

// NewImportOrderCommand creates a command from a decoded feed entry.
// Validates that every required field is present and that the dates parse;
// returns an error naming the first offending field otherwise.
func NewImportOrderCommand(payload OrderPayload) (ImportOrderCommand, error) {
	importCommand := ImportOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := importCommand.setPayload(payload); err != nil {
		return ImportOrderCommand{}, err
	}

	return importCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrImportOrderCommandIsNotConstructed if validation fails.
func (c ImportOrderCommand) Validate() error {
	return c.guard.Validate(ErrImportOrderCommandIsNotConstructed)
}

// Payload returns the feed entry.
func (c ImportOrderCommand) Payload() OrderPayload {
	return c.payload
}

// OrderDate returns the parsed order date.
func (c ImportOrderCommand) OrderDate() time.Time {
	return c.orderDate
}

// DeliveryDate returns the parsed requested delivery date.
func (c ImportOrderCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

func (c *ImportOrderCommand) setPayload(payload OrderPayload) error {
	if err := payload.validate(); err != nil {
		return err
	}

	orderDate, err := parseFeedDate("order_date", payload.OrderDate)
	if err != nil {
		return err
	}
	deliveryDate, err := parseFeedDate("delivery_date", payload.DeliveryDate)
	if err != nil {
		return err
	}

	c.payload = payload
	c.orderDate = orderDate
	c.deliveryDate = deliveryDate
	return nil
}

func parseFeedDate(field, value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(
			field,
			fmt.Errorf("%q is not a %s date", value, DateLayout),
		)
	}
	return parsed, nil
}
