// Package partnerrepo provides data transfer objects and mapping functions for partner persistence.
// This package implements the repository pattern for the partner domain aggregate, handling
// the conversion between domain entities and database representations.
package partnerrepo

import (
	"time"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

// PartnerDTO represents the database structure for persisting partner aggregates.
// The access code carries a unique index because it doubles as the portal
// login credential.
type PartnerDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code          string     `gorm:"type:varchar(16);not null;uniqueIndex"`
	Name          string     `gorm:"type:varchar(255);not null"`
	Contact       ContactDTO `gorm:"embedded;embeddedPrefix:contact_"`
	IsActive      bool       `gorm:"not null"`
	LoginAttempts int        `gorm:"not null"`
	LastLoginAt   *time.Time
}

// TableName specifies the database table name for partner entities.
func (PartnerDTO) TableName() string {
	return "partners"
}

// ContactDTO represents the embedded contact fields within the partner table.
type ContactDTO struct {
	Email   string `gorm:"type:varchar(255)"`
	Phone   string `gorm:"type:varchar(64)"`
	Address string `gorm:"type:varchar(255)"`
	Person  string `gorm:"type:varchar(255)"`
}

// fromDomain converts a partner domain aggregate to its database representation.
func fromDomain(p *partner.Partner) PartnerDTO {
	contact := p.Contact()
	return PartnerDTO{
		ID:   p.ID().Bytes(),
		Code: p.Code(),
		Name: p.Name(),
		Contact: ContactDTO{
			Email:   contact.Email,
			Phone:   contact.Phone,
			Address: contact.Address,
			Person:  contact.ContactPerson,
		},
		IsActive:      p.IsActive(),
		LoginAttempts: p.LoginAttempts(),
		LastLoginAt:   p.LastLoginAt(),
	}
}

// toDomain converts a database DTO to a partner domain aggregate.
func toDomain(dto PartnerDTO) (*partner.Partner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	contact := partner.Contact{
		Email:         dto.Contact.Email,
		Phone:         dto.Contact.Phone,
		Address:       dto.Contact.Address,
		ContactPerson: dto.Contact.Person,
	}

	return partner.RestorePartner(id, dto.Code, dto.Name, contact, dto.IsActive, dto.LoginAttempts, dto.LastLoginAt)
}
