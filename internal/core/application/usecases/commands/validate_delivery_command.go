package commands

import (
	"errors"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/pkg/errs"
	"barrieredi/internal/pkg/guard"
)

var ErrValidateDeliveryCommandIsNotConstructed = errors.New(
	"ValidateDeliveryCommand must be created via NewValidateDeliveryCommand constructor",
)

// ValidateDeliveryCommand represents a validator's decision on a submitted
// delivery notice: an accepted quantity for every line, keyed by the line's
// identifier.
//
// Example:
//
//	accepted := map[kernel.UUID]kernel.Quantity{
//	    lineID: kernel.MustParseQuantity("7.000"),
//	}
//	cmd, err := NewValidateDeliveryCommand(deliveryID, "validator@example.com", accepted)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewValidateDeliveryCommandHandler(uowFactory, clock)
//	validated, err := handler.Handle(ctx, cmd)
type ValidateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	validatedBy string
	accepted    map[kernel.UUID]kernel.Quantity

	guard guard.ConstructorGuard
}

// NewValidateDeliveryCommand creates a command to validate a delivery notice.
// Validates the delivery reference and the validator identity; completeness
// of the accepted map is checked by the aggregate, which knows the lines.
func NewValidateDeliveryCommand(
	deliveryID kernel.UUID,
	validatedBy string,
	accepted map[kernel.UUID]kernel.Quantity,
) (ValidateDeliveryCommand, error) {
	validateCommand := ValidateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateCommand.setDeliveryID(deliveryID),
		validateCommand.setValidatedBy(validatedBy),
	); err != nil {
		return ValidateDeliveryCommand{}, err
	}

	validateCommand.accepted = accepted
	return validateCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrValidateDeliveryCommandIsNotConstructed if validation fails.
func (c ValidateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrValidateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the notice to validate.
func (c ValidateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ValidatedBy returns the validating principal's identity.
func (c ValidateDeliveryCommand) ValidatedBy() string {
	return c.validatedBy
}

// Accepted returns the accepted quantity per delivery line.
func (c ValidateDeliveryCommand) Accepted() map[kernel.UUID]kernel.Quantity {
	return c.accepted
}

func (c *ValidateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *ValidateDeliveryCommand) setValidatedBy(validatedBy string) error {
	if validatedBy == "" {
		return errs.NewValueIsRequiredError("validated by")
	}
	c.validatedBy = validatedBy
	return nil
}
