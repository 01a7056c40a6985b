package commands

import (
	"errors"

	"barrieredi/internal/pkg/errs"
	"barrieredi/internal/pkg/guard"
)

var ErrAuthenticatePartnerCommandIsNotConstructed = errors.New(
	"AuthenticatePartnerCommand must be created via NewAuthenticatePartnerCommand constructor",
)

// AuthenticatePartnerCommand represents a portal login attempt with a
// partner access code.
type AuthenticatePartnerCommand struct { //nolint:recvcheck //using for validation
	code string

	guard guard.ConstructorGuard
}

// NewAuthenticatePartnerCommand creates a command for a login attempt.
func NewAuthenticatePartnerCommand(code string) (AuthenticatePartnerCommand, error) {
	loginCommand := AuthenticatePartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := loginCommand.setCode(code); err != nil {
		return AuthenticatePartnerCommand{}, err
	}

	return loginCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAuthenticatePartnerCommandIsNotConstructed if validation fails.
func (c AuthenticatePartnerCommand) Validate() error {
	return c.guard.Validate(ErrAuthenticatePartnerCommandIsNotConstructed)
}

// Code returns the presented access code.
func (c AuthenticatePartnerCommand) Code() string {
	return c.code
}

func (c *AuthenticatePartnerCommand) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}
