package orderrepo

import (
	"context"
	"errors"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/order"
	"barrieredi/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. Lines are upserted by ID;
// lines no longer present on the aggregate are removed together with any
// delivery lines referencing them, so a feed re-import supersedes local state.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("Items").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	keep := make([]uuid.UUID, 0, len(dto.Items))
	for _, item := range dto.Items {
		keep = append(keep, item.ID)
	}

	if len(dto.Items) > 0 {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.Items).Error; err != nil {
			return err
		}

		if err := db.Exec(
			`DELETE FROM delivery_items
			 WHERE order_item_id IN (SELECT id FROM order_items WHERE order_id = ? AND id NOT IN ?)`,
			dto.ID, keep,
		).Error; err != nil {
			return err
		}

		if err := db.Where("order_id = ? AND id NOT IN ?", dto.ID, keep).Delete(&OrderItemDTO{}).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its lines by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Items", sortedByPosition).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its external order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Items", sortedByPosition).
		First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOpenByPartner retrieves a partner's orders in the open status set.
func (r *GormOrderRepository) GetAllOpenByPartner(
	ctx context.Context,
	partnerID kernel.UUID,
) ([]*order.Order, error) {
	if err := partnerID.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]int, 0, len(order.OpenStatuses()))
	for _, status := range order.OpenStatuses() {
		statuses = append(statuses, int(status))
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Preload("Items", sortedByPosition).
		Order("number").
		Find(&dtos, "partner_id = ? AND status IN ?", partnerID.Bytes(), statuses).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// sortedByPosition keeps preloaded lines in source-system position order.
func sortedByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
