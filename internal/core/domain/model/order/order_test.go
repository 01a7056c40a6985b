package order_test

import (
	"testing"
	"time"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/order"
	"barrieredi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDate() time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
}

func newTestItem(t *testing.T, position int, qty, price string) *order.Item {
	t.Helper()
	item, err := order.NewItem(
		kernel.NewUUID(),
		position,
		"MAT-01", "Test material",
		kernel.MustParseQuantity(qty),
		"BUC",
		testDate(),
		kernel.MustParseMoney(price),
		"BUC", "",
	)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "CMD-1001", kernel.NewUUID(),
		testDate(), testDate(), "RON", "", nil,
	)
	require.NoError(t, err)
	if len(items) > 0 {
		require.NoError(t, o.ReplaceItems(items))
	}
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("starts_pending_with_zero_total", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.True(t, o.TotalValue().IsZero())
		assert.Empty(t, o.Items())
	})

	t.Run("requires_number_partner_and_currency", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", kernel.NewUUID(), testDate(), testDate(), "RON", "", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewOrder(kernel.NewUUID(), "CMD-1001", kernel.UUID{}, testDate(), testDate(), "RON", "", nil)
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), "CMD-1001", kernel.NewUUID(), testDate(), testDate(), "", "", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_ReplaceItems(t *testing.T) {
	t.Run("recomputes_total_from_line_totals", func(t *testing.T) {
		o := newTestOrder(t,
			newTestItem(t, 10, "10.000", "100.00"),
			newTestItem(t, 20, "3", "33.335"),
		)

		// 1000.00 + 100.01 (half-up)
		assert.Equal(t, "1100.01", o.TotalValue().String())
	})

	t.Run("second_replace_discards_first_item_set", func(t *testing.T) {
		o := newTestOrder(t, newTestItem(t, 10, "10.000", "100.00"))
		first := o.Items()[0]
		require.NoError(t, o.ApplyAccepted(first.ID(), kernel.MustParseQuantity("4.000")))

		replacement := newTestItem(t, 10, "5.000", "10.00")
		require.NoError(t, o.ReplaceItems([]*order.Item{replacement}))

		require.Len(t, o.Items(), 1)
		assert.True(t, o.Items()[0].ID().IsEqual(replacement.ID()))
		// Accumulated delivered quantity is gone with the replaced line.
		assert.True(t, o.Items()[0].QuantityDelivered().IsZero())
		assert.Equal(t, "50.00", o.TotalValue().String())
	})

	t.Run("rejects_empty_item_set", func(t *testing.T) {
		o := newTestOrder(t)

		require.ErrorIs(t, o.ReplaceItems(nil), errs.ErrValueIsRequired)
	})

	t.Run("rejects_duplicate_positions", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ReplaceItems([]*order.Item{
			newTestItem(t, 10, "1", "1.00"),
			newTestItem(t, 10, "2", "2.00"),
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_ApplyAccepted(t *testing.T) {
	t.Run("extends_delivered_counter", func(t *testing.T) {
		item := newTestItem(t, 10, "10.000", "100.00")
		o := newTestOrder(t, item)

		require.NoError(t, o.ApplyAccepted(item.ID(), kernel.MustParseQuantity("7.000")))

		assert.Equal(t, "7.000", item.QuantityDelivered().String())
		assert.Equal(t, "3.000", item.Remaining().String())

		require.NoError(t, o.ApplyAccepted(item.ID(), kernel.MustParseQuantity("3.000")))
		assert.True(t, item.IsFullyDelivered())
		assert.True(t, item.Remaining().IsZero())
	})

	t.Run("unknown_item_returns_not_found", func(t *testing.T) {
		o := newTestOrder(t, newTestItem(t, 10, "10.000", "100.00"))

		err := o.ApplyAccepted(kernel.NewUUID(), kernel.MustParseQuantity("1.000"))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("over_acceptance_drives_remaining_negative", func(t *testing.T) {
		item := newTestItem(t, 10, "10.000", "100.00")
		o := newTestOrder(t, item)

		require.NoError(t, o.ApplyAccepted(item.ID(), kernel.MustParseQuantity("12.000")))

		assert.Equal(t, "-2.000", item.Remaining().String())
	})
}

func TestOrder_Completion(t *testing.T) {
	t.Run("no_items_reports_zero_and_incomplete", func(t *testing.T) {
		o := newTestOrder(t)

		c := o.Completion()

		assert.True(t, c.TotalOrdered.IsZero())
		assert.True(t, c.Percentage.IsZero())
		assert.False(t, c.IsComplete)
	})

	t.Run("partial_delivery_reports_percentage", func(t *testing.T) {
		item := newTestItem(t, 10, "10.000", "100.00")
		o := newTestOrder(t, item)
		require.NoError(t, o.ApplyAccepted(item.ID(), kernel.MustParseQuantity("7.000")))

		c := o.Completion()

		assert.Equal(t, "10.000", c.TotalOrdered.String())
		assert.Equal(t, "7.000", c.TotalDelivered.String())
		assert.Equal(t, "70", c.Percentage.String())
		assert.False(t, c.IsComplete)
	})

	t.Run("full_delivery_reports_complete", func(t *testing.T) {
		item := newTestItem(t, 10, "8.000", "10.00")
		o := newTestOrder(t, item)
		require.NoError(t, o.ApplyAccepted(item.ID(), kernel.MustParseQuantity("8.000")))

		c := o.Completion()

		assert.Equal(t, "100", c.Percentage.String())
		assert.True(t, c.IsComplete)
		assert.True(t, o.IsFullyDelivered())
	})
}

func TestOrder_ResetForReimport(t *testing.T) {
	o := newTestOrder(t, newTestItem(t, 10, "10.000", "100.00"))
	newPartner := kernel.NewUUID()
	syncedAt := testDate().Add(24 * time.Hour)

	require.NoError(t, o.ResetForReimport(newPartner, testDate(), testDate(), "EUR", "resent", &syncedAt))

	assert.Equal(t, order.Pending, o.Status())
	assert.True(t, o.PartnerID().IsEqual(newPartner))
	assert.Equal(t, "EUR", o.Currency())
	assert.True(t, o.TotalValue().IsZero())
	assert.Empty(t, o.Items())
}
