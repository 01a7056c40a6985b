package commands

import (
	"errors"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/pkg/guard"
)

var ErrRegeneratePartnerCodeCommandIsNotConstructed = errors.New(
	"RegeneratePartnerCodeCommand must be created via NewRegeneratePartnerCodeCommand constructor",
)

// RegeneratePartnerCodeCommand represents a staff request to rotate a
// partner's access code. The previous code stops working the moment the
// transaction commits.
type RegeneratePartnerCodeCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRegeneratePartnerCodeCommand creates a command to rotate a partner's
// access code.
func NewRegeneratePartnerCodeCommand(partnerID kernel.UUID) (RegeneratePartnerCodeCommand, error) {
	rotateCommand := RegeneratePartnerCodeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := rotateCommand.setPartnerID(partnerID); err != nil {
		return RegeneratePartnerCodeCommand{}, err
	}

	return rotateCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegeneratePartnerCodeCommandIsNotConstructed if validation fails.
func (c RegeneratePartnerCodeCommand) Validate() error {
	return c.guard.Validate(ErrRegeneratePartnerCodeCommandIsNotConstructed)
}

// PartnerID returns the partner whose code is rotated.
func (c RegeneratePartnerCodeCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

func (c *RegeneratePartnerCodeCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	c.partnerID = partnerID
	return nil
}
