package queries_test

import (
	"path/filepath"
	"testing"
	"time"

	"barrieredi/internal/adapters/out/postgres/orderrepo"
	"barrieredi/internal/adapters/out/postgres/partnerrepo"
	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newQueryTestDB opens a throwaway sqlite database with the persistence
// schema, so the read side can be exercised without a running server.
func newQueryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "queries.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&partnerrepo.PartnerDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	))

	return db
}

func seedPartner(t *testing.T, db *gorm.DB, code string) uuid.UUID {
	t.Helper()

	dto := partnerrepo.PartnerDTO{
		ID:       kernel.NewUUID().Bytes(),
		Code:     code,
		Name:     "Barrier SRL",
		IsActive: true,
	}
	require.NoError(t, db.Create(&dto).Error)
	return dto.ID
}

type seedLine struct {
	position  int
	ordered   string
	delivered string
}

func seedOrder(
	t *testing.T,
	db *gorm.DB,
	partnerID uuid.UUID,
	number string,
	status order.Status,
	totalValue string,
	lines ...seedLine,
) uuid.UUID {
	t.Helper()

	orderID := kernel.NewUUID().Bytes()
	items := make([]orderrepo.OrderItemDTO, 0, len(lines))
	for _, line := range lines {
		items = append(items, orderrepo.OrderItemDTO{
			ID:                  kernel.NewUUID().Bytes(),
			OrderID:             orderID,
			Position:            line.position,
			MaterialCode:        "MAT-001",
			MaterialDescription: "Steel profile 40x40",
			QuantityOrdered:     line.ordered,
			UnitOfMeasure:       "BUC",
			DeliveryDate:        time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			NetPrice:            "100.00",
			PriceUnit:           "1",
			LineTotal:           "100.00",
			QuantityDelivered:   line.delivered,
		})
	}

	dto := orderrepo.OrderDTO{
		ID:           orderID,
		Number:       number,
		PartnerID:    partnerID,
		OrderDate:    time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC),
		DeliveryDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Currency:     "EUR",
		TotalValue:   totalValue,
		Status:       int(status),
		Items:        items,
	}
	require.NoError(t, db.Create(&dto).Error)
	return orderID
}
