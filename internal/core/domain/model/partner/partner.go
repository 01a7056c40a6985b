package partner

import (
	"errors"
	"time"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/pkg/errs"
)

// ErrPartnerIsNotConstructed is returned when a Partner instance was not
// created through NewPartner or RestorePartner.
var ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner or RestorePartner")

// Partner is the aggregate root for an external organization connected to the
// portal. The partner code doubles as the bearer credential for portal login,
// which is why codes come from a cryptographically strong source and can be
// regenerated at any time.
//
// Partner follows these invariants:
//   - Must have a valid unique identifier
//   - Must have a non-empty code and display name
//   - Is never hard-deleted; Deactivate soft-disables it instead
//   - The login-attempt counter is advisory; lockout policy belongs to the
//     authentication collaborator
type Partner struct {
	id            kernel.UUID
	code          string
	name          string
	email         string
	phone         string
	address       string
	contactPerson string
	active        bool
	loginAttempts int
	lastLoginAt   *time.Time

	isConstructed bool
}

// Contact groups the optional contact fields of a partner.
type Contact struct {
	Email         string
	Phone         string
	Address       string
	ContactPerson string
}

// NewPartner creates an active Partner with a zero login-attempt counter.
// The code is expected to already be unique; uniqueness is the caller's
// responsibility (see GenerateCode and the provisioning command handler).
func NewPartner(id kernel.UUID, code, name string, contact Contact) (*Partner, error) {
	p := &Partner{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setCode(code),
		p.setName(name),
	); err != nil {
		return nil, err
	}

	p.setContact(contact)
	return p, nil
}

// RestorePartner reconstructs a Partner from persistence.
func RestorePartner(
	id kernel.UUID,
	code, name string,
	contact Contact,
	active bool,
	loginAttempts int,
	lastLoginAt *time.Time,
) (*Partner, error) {
	p, err := NewPartner(id, code, name, contact)
	if err != nil {
		return nil, err
	}

	p.active = active
	p.loginAttempts = loginAttempts
	p.lastLoginAt = lastLoginAt
	return p, nil
}

// Validate ensures the Partner instance was properly constructed.
func (p *Partner) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartnerIsNotConstructed
	}
	return nil
}

// ID returns the partner's unique identifier.
func (p *Partner) ID() kernel.UUID {
	return p.id
}

// Code returns the partner's current access code.
func (p *Partner) Code() string {
	return p.code
}

// Name returns the partner's display name.
func (p *Partner) Name() string {
	return p.name
}

// Contact returns the partner's contact fields.
func (p *Partner) Contact() Contact {
	return Contact{
		Email:         p.email,
		Phone:         p.phone,
		Address:       p.address,
		ContactPerson: p.contactPerson,
	}
}

// IsActive reports whether the partner may use the portal.
func (p *Partner) IsActive() bool {
	return p.active
}

// LoginAttempts returns the advisory failed-login counter.
func (p *Partner) LoginAttempts() int {
	return p.loginAttempts
}

// LastLoginAt returns the time of the last successful login, or nil.
func (p *Partner) LastLoginAt() *time.Time {
	return p.lastLoginAt
}

// AssignCode replaces the partner's access code, invalidating the previous
// one immediately. There is no grace period: sessions opened with the old
// code stay alive, but the old code can no longer be used to log in.
func (p *Partner) AssignCode(code string) error {
	return p.setCode(code)
}

// Deactivate soft-disables the partner. Partners are never hard-deleted.
func (p *Partner) Deactivate() {
	p.active = false
}

// RecordLoginSuccess resets the login-attempt counter and stamps the login time.
func (p *Partner) RecordLoginSuccess(at time.Time) {
	p.loginAttempts = 0
	p.lastLoginAt = &at
}

// RecordLoginFailure increments the advisory login-attempt counter.
func (p *Partner) RecordLoginFailure() {
	p.loginAttempts++
}

func (p *Partner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Partner) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("partner code")
	}
	p.code = code
	return nil
}

func (p *Partner) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("partner name")
	}
	p.name = name
	return nil
}

func (p *Partner) setContact(contact Contact) {
	p.email = contact.Email
	p.phone = contact.Phone
	p.address = contact.Address
	p.contactPerson = contact.ContactPerson
}
