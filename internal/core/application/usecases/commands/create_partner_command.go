package commands

import (
	"errors"

	"barrieredi/internal/core/domain/model/partner"
	"barrieredi/internal/pkg/errs"
	"barrieredi/internal/pkg/guard"
)

var ErrCreatePartnerCommandIsNotConstructed = errors.New(
	"CreatePartnerCommand must be created via NewCreatePartnerCommand constructor",
)

// CreatePartnerCommand represents a staff request to provision a partner
// with a freshly generated access code.
type CreatePartnerCommand struct { //nolint:recvcheck //using for validation
	name    string
	contact partner.Contact

	guard guard.ConstructorGuard
}

// NewCreatePartnerCommand creates a command to provision a partner.
// Validates that the name is not empty; contact details are optional.
func NewCreatePartnerCommand(name string, contact partner.Contact) (CreatePartnerCommand, error) {
	partnerCommand := CreatePartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := partnerCommand.setName(name); err != nil {
		return CreatePartnerCommand{}, err
	}

	partnerCommand.contact = contact
	return partnerCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreatePartnerCommandIsNotConstructed if validation fails.
func (c CreatePartnerCommand) Validate() error {
	return c.guard.Validate(ErrCreatePartnerCommandIsNotConstructed)
}

// Name returns the partner's display name.
func (c CreatePartnerCommand) Name() string {
	return c.name
}

// Contact returns the partner's contact details.
func (c CreatePartnerCommand) Contact() partner.Contact {
	return c.contact
}

func (c *CreatePartnerCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}
