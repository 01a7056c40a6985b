package postgres

import (
	"context"
	"time"

	"barrieredi/internal/pkg/errs"

	"gorm.io/gorm"
)

// counterDayLayout is the key format of the day-scoped counter rows.
const counterDayLayout = "20060102"

// DeliveryCounterDTO is the day-scoped counter backing delivery notice
// numbers. One row per calendar day, incremented atomically.
type DeliveryCounterDTO struct {
	Day   string `gorm:"type:varchar(8);primaryKey"`
	Value int    `gorm:"not null"`
}

// TableName specifies the database table name for delivery counters.
func (DeliveryCounterDTO) TableName() string {
	return "delivery_counters"
}

// GormDeliveryNumberSequence issues day-scoped sequence values through an
// upsert with increment. The row lock taken by the upsert serializes
// concurrent transactions on the same day, so no two notices ever share a
// number.
type GormDeliveryNumberSequence struct {
	db *gorm.DB
}

// NewGormDeliveryNumberSequence creates a sequence backed by the given connection.
func NewGormDeliveryNumberSequence(db *gorm.DB) *GormDeliveryNumberSequence {
	return &GormDeliveryNumberSequence{db: db}
}

// Next returns the next sequence value for the given day, starting at 1.
func (s *GormDeliveryNumberSequence) Next(ctx context.Context, day time.Time) (int, error) {
	key := day.Format(counterDayLayout)

	var value int
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO delivery_counters (day, value)
		VALUES (?, 1)
		ON CONFLICT (day) DO UPDATE SET value = delivery_counters.value + 1
		RETURNING value
	`, key).Scan(&value).Error
	if err != nil {
		return 0, err
	}

	if value <= 0 {
		return 0, errs.NewConflictError("delivery counter " + key)
	}

	return value, nil
}
