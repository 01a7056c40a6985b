// Package deliveryrepo provides data transfer objects and mapping functions for
// delivery notice persistence, converting between the delivery domain aggregate
// and its database representation.
package deliveryrepo

import (
	"time"

	"barrieredi/internal/core/domain/model/delivery"
	"barrieredi/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery notices.
// The notice number is generated per day and carries a unique index.
type DeliveryDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number           string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	OrderID          uuid.UUID `gorm:"type:uuid;not null;index"`
	PartnerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	DeliveryDate     time.Time `gorm:"not null"`
	Status           int       `gorm:"not null;index"`
	ValidationStatus int       `gorm:"not null"`
	Notes            string    `gorm:"type:text"`
	SubmittedAt      *time.Time
	ValidatedAt      *time.Time
	ValidatedBy      string            `gorm:"type:varchar(255)"`
	Items            []DeliveryItemDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery notice entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// DeliveryItemDTO represents the database structure for persisting delivery lines.
// The accepted quantity stays NULL until a validator records an outcome.
type DeliveryItemDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID        uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderItemID       uuid.UUID `gorm:"type:uuid;not null;index"`
	QuantityDelivered string    `gorm:"type:decimal(12,3);not null"`
	QuantityAccepted  *string   `gorm:"type:decimal(12,3)"`
	HasDiscrepancy    bool      `gorm:"not null"`
	DiscrepancyReason string    `gorm:"type:varchar(255)"`
	Notes             string    `gorm:"type:text"`
}

// TableName specifies the database table name for delivery line entities.
func (DeliveryItemDTO) TableName() string {
	return "delivery_items"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(d *delivery.Delivery) DeliveryDTO {
	deliveryID := d.ID().Bytes()
	items := make([]DeliveryItemDTO, 0, len(d.Items()))

	for _, item := range d.Items() {
		var accepted *string
		if q := item.QuantityAccepted(); q != nil {
			value := q.String()
			accepted = &value
		}

		items = append(items, DeliveryItemDTO{
			ID:                item.ID().Bytes(),
			DeliveryID:        deliveryID,
			OrderItemID:       item.OrderItemID().Bytes(),
			QuantityDelivered: item.QuantityDelivered().String(),
			QuantityAccepted:  accepted,
			HasDiscrepancy:    item.HasDiscrepancy(),
			DiscrepancyReason: item.DiscrepancyReason(),
			Notes:             item.Notes(),
		})
	}

	return DeliveryDTO{
		ID:               deliveryID,
		Number:           d.Number(),
		OrderID:          d.OrderID().Bytes(),
		PartnerID:        d.PartnerID().Bytes(),
		DeliveryDate:     d.DeliveryDate(),
		Status:           int(d.Status()),
		ValidationStatus: int(d.ValidationStatus()),
		Notes:            d.Notes(),
		SubmittedAt:      d.SubmittedAt(),
		ValidatedAt:      d.ValidatedAt(),
		ValidatedBy:      d.ValidatedBy(),
		Items:            items,
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	partnerID, err := kernel.UUIDFromBytes(dto.PartnerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*delivery.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return delivery.RestoreDelivery(
		id,
		dto.Number,
		orderID,
		partnerID,
		dto.DeliveryDate,
		delivery.Status(dto.Status),
		delivery.ValidationStatus(dto.ValidationStatus),
		dto.Notes,
		dto.SubmittedAt,
		dto.ValidatedAt,
		dto.ValidatedBy,
		items,
	)
}

// itemToDomain converts a delivery line DTO to its domain entity.
func itemToDomain(dto DeliveryItemDTO) (*delivery.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderItemID, err := kernel.UUIDFromBytes(dto.OrderItemID[:])
	if err != nil {
		return nil, err
	}

	quantityDelivered, err := kernel.ParseQuantity(dto.QuantityDelivered)
	if err != nil {
		return nil, err
	}

	var accepted *kernel.Quantity
	if dto.QuantityAccepted != nil {
		q, acceptErr := kernel.ParseQuantity(*dto.QuantityAccepted)
		if acceptErr != nil {
			return nil, acceptErr
		}
		accepted = &q
	}

	return delivery.RestoreItem(
		id,
		orderItemID,
		quantityDelivered,
		accepted,
		dto.HasDiscrepancy,
		dto.DiscrepancyReason,
		dto.Notes,
	)
}
