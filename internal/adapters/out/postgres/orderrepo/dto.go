// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order number is the external key of the source system and carries a
// unique index; quantities and amounts are stored as fixed-point decimals so
// no precision is lost between import and reconciliation.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	PartnerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderDate    time.Time `gorm:"not null"`
	DeliveryDate time.Time `gorm:"not null"`
	Currency     string    `gorm:"type:varchar(8);not null"`
	TotalValue   string    `gorm:"type:decimal(15,2);not null"`
	Status       int       `gorm:"not null;index"`
	Notes        string    `gorm:"type:text"`
	SyncedAt     *time.Time
	Items        []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents the database structure for persisting order lines.
// The (order, position) pair is unique within an order.
type OrderItemDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID `gorm:"type:uuid;not null;index"`
	Position            int       `gorm:"not null"`
	MaterialCode        string    `gorm:"type:varchar(64);not null"`
	MaterialDescription string    `gorm:"type:varchar(255);not null"`
	QuantityOrdered     string    `gorm:"type:decimal(12,3);not null"`
	UnitOfMeasure       string    `gorm:"type:varchar(16);not null"`
	DeliveryDate        time.Time `gorm:"not null"`
	NetPrice            string    `gorm:"type:decimal(15,2);not null"`
	PriceUnit           string    `gorm:"type:varchar(16);not null"`
	PriceUnitOrder      string    `gorm:"type:varchar(16)"`
	LineTotal           string    `gorm:"type:decimal(15,2);not null"`
	QuantityDelivered   string    `gorm:"type:decimal(12,3);not null"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the full line set.
func fromDomain(ord *order.Order) OrderDTO {
	orderID := ord.ID().Bytes()
	items := make([]OrderItemDTO, 0, len(ord.Items()))

	for _, item := range ord.Items() {
		items = append(items, OrderItemDTO{
			ID:                  item.ID().Bytes(),
			OrderID:             orderID,
			Position:            item.Position(),
			MaterialCode:        item.MaterialCode(),
			MaterialDescription: item.MaterialDescription(),
			QuantityOrdered:     item.QuantityOrdered().String(),
			UnitOfMeasure:       item.UnitOfMeasure(),
			DeliveryDate:        item.DeliveryDate(),
			NetPrice:            item.NetPrice().String(),
			PriceUnit:           item.PriceUnit(),
			PriceUnitOrder:      item.PriceUnitOrder(),
			LineTotal:           item.LineTotal().String(),
			QuantityDelivered:   item.QuantityDelivered().String(),
		})
	}

	return OrderDTO{
		ID:           orderID,
		Number:       ord.Number(),
		PartnerID:    ord.PartnerID().Bytes(),
		OrderDate:    ord.OrderDate(),
		DeliveryDate: ord.DeliveryDate(),
		Currency:     ord.Currency(),
		TotalValue:   ord.TotalValue().String(),
		Status:       int(ord.Status()),
		Notes:        ord.Notes(),
		SyncedAt:     ord.SyncedAt(),
		Items:        items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate with its lines using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	partnerID, err := kernel.UUIDFromBytes(dto.PartnerID[:])
	if err != nil {
		return nil, err
	}

	totalValue, err := kernel.ParseMoney(dto.TotalValue)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		partnerID,
		dto.OrderDate,
		dto.DeliveryDate,
		dto.Currency,
		totalValue,
		order.Status(dto.Status),
		dto.Notes,
		dto.SyncedAt,
		items,
	)
}

// itemToDomain converts an order line DTO to its domain entity.
func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	quantityOrdered, err := kernel.ParseQuantity(dto.QuantityOrdered)
	if err != nil {
		return nil, err
	}

	netPrice, err := kernel.ParseMoney(dto.NetPrice)
	if err != nil {
		return nil, err
	}

	lineTotal, err := kernel.ParseMoney(dto.LineTotal)
	if err != nil {
		return nil, err
	}

	quantityDelivered, err := kernel.ParseQuantity(dto.QuantityDelivered)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(
		id,
		dto.Position,
		dto.MaterialCode,
		dto.MaterialDescription,
		quantityOrdered,
		dto.UnitOfMeasure,
		dto.DeliveryDate,
		netPrice,
		dto.PriceUnit,
		dto.PriceUnitOrder,
		lineTotal,
		quantityDelivered,
	)
}
