package queries_test

import (
	"testing"

	"barrieredi/internal/core/application/usecases/queries"
	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetRemainingQuantitiesQuery(t *testing.T) {
	t.Run("rejects_empty_order_id", func(t *testing.T) {
		_, err := queries.NewGetRemainingQuantitiesQuery(kernel.UUID{})

		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var query queries.GetRemainingQuantitiesQuery

		require.ErrorIs(t, query.Validate(), queries.ErrGetRemainingQuantitiesQueryIsNotConstructed)
	})
}

func TestGetRemainingQuantitiesQueryHandler_Handle(t *testing.T) {
	t.Run("lists_only_lines_with_remaining_quantity", func(t *testing.T) {
		ctx := t.Context()
		db := newQueryTestDB(t)

		partnerID := seedPartner(t, db, "PART-A1B2C3")
		orderID := seedOrder(t, db, partnerID, "CMD-2025-0001", order.InDelivery, "500.00",
			seedLine{position: 10, ordered: "10.000", delivered: "7.000"},
			seedLine{position: 20, ordered: "5.000", delivered: "5.000"},
			seedLine{position: 30, ordered: "4.000", delivered: "6.500"},
		)

		id, err := kernel.UUIDFromBytes(orderID[:])
		require.NoError(t, err)
		query, err := queries.NewGetRemainingQuantitiesQuery(id)
		require.NoError(t, err)

		h := queries.NewGetRemainingQuantitiesQueryHandler(db)
		lines, err := h.Handle(ctx, query)
		require.NoError(t, err)

		require.Len(t, lines, 1)
		assert.Equal(t, 10, lines[0].Position)
		assert.Equal(t, "MAT-001", lines[0].MaterialCode)
		assert.Equal(t, "BUC", lines[0].UnitOfMeasure)
		assert.Equal(t, "10.000", lines[0].QuantityOrdered.String())
		assert.Equal(t, "7.000", lines[0].QuantityDelivered.String())
		assert.Equal(t, "3.000", lines[0].Remaining.String())
	})

	t.Run("order_without_lines_yields_empty_listing", func(t *testing.T) {
		ctx := t.Context()
		db := newQueryTestDB(t)

		partnerID := seedPartner(t, db, "PART-A1B2C3")
		orderID := seedOrder(t, db, partnerID, "CMD-2025-0001", order.Pending, "0.00")

		id, err := kernel.UUIDFromBytes(orderID[:])
		require.NoError(t, err)
		query, err := queries.NewGetRemainingQuantitiesQuery(id)
		require.NoError(t, err)

		h := queries.NewGetRemainingQuantitiesQueryHandler(db)
		lines, err := h.Handle(ctx, query)
		require.NoError(t, err)

		assert.Empty(t, lines)
	})
}
