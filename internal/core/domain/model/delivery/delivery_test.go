package delivery_test

import (
	"testing"
	"time"

	"barrieredi/internal/core/domain/model/delivery"
	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/model/order"
	"barrieredi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDate() time.Time {
	return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func newTestOrderItem(t *testing.T, position int, qty string) *order.Item {
	t.Helper()
	item, err := order.NewItem(
		kernel.NewUUID(), position, "MAT-01", "Test material",
		kernel.MustParseQuantity(qty), "BUC", testDate(),
		kernel.MustParseMoney("100.00"), "BUC", "",
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
	require.NoError(t, o.ReplaceItems(items))
	return o
}

func newTestDelivery(t *testing.T, ord *order.Order) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), "AVZ-20250601-0001", ord, ord.PartnerID(), testDate(), "",
	)
	require.NoError(t, err)
	return d
}

func addLine(t *testing.T, d *delivery.Delivery, ord *order.Order, orderItemID kernel.UUID, qty string) *delivery.Item {
	t.Helper()
	item, err := delivery.NewItem(kernel.NewUUID(), orderItemID, kernel.MustParseQuantity(qty), "")
	require.NoError(t, err)
	require.NoError(t, d.AddItem(ord, item))
	return item
}

func TestNewDelivery(t *testing.T) {
	t.Run("starts_draft_and_pending", func(t *testing.T) {
		ord := newTestOrder(t, newTestOrderItem(t, 10, "10.000"))

		d := newTestDelivery(t, ord)

		assert.Equal(t, delivery.Draft, d.Status())
		assert.Equal(t, delivery.ValidationPending, d.ValidationStatus())
		assert.Empty(t, d.Items())
		assert.Nil(t, d.SubmittedAt())
		assert.Nil(t, d.ValidatedAt())
	})

	t.Run("rejects_foreign_partner", func(t *testing.T) {
		ord := newTestOrder(t, newTestOrderItem(t, 10, "10.000"))

		_, err := delivery.NewDelivery(
			kernel.NewUUID(), "AVZ-20250601-0001", ord, kernel.NewUUID(), testDate(), "",
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_closed_order", func(t *testing.T) {
		ord := newTestOrder(t, newTestOrderItem(t, 10, "10.000"))
		require.NoError(t, ord.Cancel())

		_, err := delivery.NewDelivery(
			kernel.NewUUID(), "AVZ-20250601-0001", ord, ord.PartnerID(), testDate(), "",
		)

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var d delivery.Delivery

		require.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)
	})
}

func TestDelivery_AddItem(t *testing.T) {
	t.Run("full_declaration_carries_no_discrepancy", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)

		line := addLine(t, d, ord, orderItem.ID(), "10.000")

		assert.False(t, line.HasDiscrepancy())
		assert.Empty(t, line.DiscrepancyReason())
		assert.False(t, d.HasDiscrepancy())
	})

	t.Run("short_declaration_flags_discrepancy", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)

		line := addLine(t, d, ord, orderItem.ID(), "4.000")

		assert.True(t, line.HasDiscrepancy())
		assert.Contains(t, line.DiscrepancyReason(), "4.000")
		assert.Contains(t, line.DiscrepancyReason(), "10.000")
		assert.True(t, d.HasDiscrepancy())
	})

	t.Run("rejects_quantity_above_remaining", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		require.NoError(t, ord.ApplyAccepted(orderItem.ID(), kernel.MustParseQuantity("7.000")))
		d := newTestDelivery(t, ord)

		item, err := delivery.NewItem(kernel.NewUUID(), orderItem.ID(), kernel.MustParseQuantity("3.001"), "")
		require.NoError(t, err)

		require.ErrorIs(t, d.AddItem(ord, item), errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_zero_quantity", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)

		item, err := delivery.NewItem(kernel.NewUUID(), orderItem.ID(), kernel.ZeroQuantity(), "")
		require.NoError(t, err)

		require.ErrorIs(t, d.AddItem(ord, item), errs.ErrValueIsInvalid)
	})

	t.Run("rejects_duplicate_order_line_reference", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)
		addLine(t, d, ord, orderItem.ID(), "4.000")

		item, err := delivery.NewItem(kernel.NewUUID(), orderItem.ID(), kernel.MustParseQuantity("6.000"), "")
		require.NoError(t, err)

		require.ErrorIs(t, d.AddItem(ord, item), errs.ErrValueIsInvalid)
	})

	t.Run("rejects_line_of_another_order", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)

		foreign := newTestOrderItem(t, 10, "5.000")
		item, err := delivery.NewItem(kernel.NewUUID(), foreign.ID(), kernel.MustParseQuantity("5.000"), "")
		require.NoError(t, err)

		require.ErrorIs(t, d.AddItem(ord, item), errs.ErrObjectNotFound)
	})
}

func TestDelivery_Submit(t *testing.T) {
	t.Run("records_submission_time", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)
		addLine(t, d, ord, orderItem.ID(), "10.000")

		require.NoError(t, d.Submit(testDate()))

		assert.Equal(t, delivery.Submitted, d.Status())
		require.NotNil(t, d.SubmittedAt())
		assert.Equal(t, testDate(), *d.SubmittedAt())
	})

	t.Run("accepts_empty_notice", func(t *testing.T) {
		ord := newTestOrder(t, newTestOrderItem(t, 10, "10.000"))
		d := newTestDelivery(t, ord)

		require.NoError(t, d.Submit(testDate()))
		assert.Equal(t, delivery.Submitted, d.Status())
	})

	t.Run("rejects_double_submit", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)
		addLine(t, d, ord, orderItem.ID(), "10.000")
		require.NoError(t, d.Submit(testDate()))

		require.ErrorIs(t, d.Submit(testDate()), errs.ErrConflict)
	})
}

func TestDelivery_ApplyValidation(t *testing.T) {
	validatedAt := testDate().Add(2 * time.Hour)

	t.Run("partial_acceptance", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)
		line := addLine(t, d, ord, orderItem.ID(), "10.000")
		require.NoError(t, d.Submit(testDate()))
		require.False(t, line.HasDiscrepancy())

		err := d.ApplyValidation(ord, "validator@example.com", validatedAt, map[kernel.UUID]kernel.Quantity{
			line.ID(): kernel.MustParseQuantity("7.000"),
		})
		require.NoError(t, err)

		assert.Equal(t, delivery.Validated, d.Status())
		assert.Equal(t, delivery.ValidationPartial, d.ValidationStatus())
		assert.Equal(t, "validator@example.com", d.ValidatedBy())
		require.NotNil(t, d.ValidatedAt())
		assert.Equal(t, validatedAt, *d.ValidatedAt())

		require.NotNil(t, line.QuantityAccepted())
		assert.Equal(t, "7.000", line.QuantityAccepted().String())
		assert.True(t, line.HasDiscrepancy())
		assert.Contains(t, line.DiscrepancyReason(), "accepted 7.000")

		assert.Equal(t, "7.000", orderItem.QuantityDelivered().String())
		assert.Equal(t, "3.000", orderItem.Remaining().String())
	})

	t.Run("full_acceptance_is_approved", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)
		line := addLine(t, d, ord, orderItem.ID(), "10.000")
		require.NoError(t, d.Submit(testDate()))

		err := d.ApplyValidation(ord, "validator@example.com", validatedAt, map[kernel.UUID]kernel.Quantity{
			line.ID(): kernel.MustParseQuantity("10.000"),
		})
		require.NoError(t, err)

		assert.Equal(t, delivery.Validated, d.Status())
		assert.Equal(t, delivery.ValidationApproved, d.ValidationStatus())
		assert.False(t, line.HasDiscrepancy())
		assert.True(t, orderItem.IsFullyDelivered())
	})

	t.Run("full_refusal_is_partial", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)
		line := addLine(t, d, ord, orderItem.ID(), "10.000")
		require.NoError(t, d.Submit(testDate()))

		err := d.ApplyValidation(ord, "validator@example.com", validatedAt, map[kernel.UUID]kernel.Quantity{
			line.ID(): kernel.ZeroQuantity(),
		})
		require.NoError(t, err)

		// Refusing everything is still a completed validation with a
		// discrepancy on every line, not a separate rejected outcome.
		assert.Equal(t, delivery.Validated, d.Status())
		assert.Equal(t, delivery.ValidationPartial, d.ValidationStatus())
		assert.True(t, line.HasDiscrepancy())
		assert.True(t, orderItem.QuantityDelivered().IsZero())
	})

	t.Run("mixed_lines_are_partial", func(t *testing.T) {
		first := newTestOrderItem(t, 10, "10.000")
		second := newTestOrderItem(t, 20, "5.000")
		ord := newTestOrder(t, first, second)
		d := newTestDelivery(t, ord)
		firstLine := addLine(t, d, ord, first.ID(), "10.000")
		secondLine := addLine(t, d, ord, second.ID(), "5.000")
		require.NoError(t, d.Submit(testDate()))

		err := d.ApplyValidation(ord, "validator@example.com", validatedAt, map[kernel.UUID]kernel.Quantity{
			firstLine.ID():  kernel.MustParseQuantity("10.000"),
			secondLine.ID(): kernel.ZeroQuantity(),
		})
		require.NoError(t, err)

		assert.Equal(t, delivery.Validated, d.Status())
		assert.Equal(t, delivery.ValidationPartial, d.ValidationStatus())
		assert.False(t, firstLine.HasDiscrepancy())
		assert.True(t, secondLine.HasDiscrepancy())
	})

	t.Run("second_validation_conflicts", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)
		line := addLine(t, d, ord, orderItem.ID(), "10.000")
		require.NoError(t, d.Submit(testDate()))

		quantities := map[kernel.UUID]kernel.Quantity{
			line.ID(): kernel.MustParseQuantity("7.000"),
		}
		require.NoError(t, d.ApplyValidation(ord, "validator@example.com", validatedAt, quantities))

		err := d.ApplyValidation(ord, "validator@example.com", validatedAt, quantities)
		require.ErrorIs(t, err, errs.ErrConflict)

		// Counters were not extended a second time.
		assert.Equal(t, "7.000", orderItem.QuantityDelivered().String())
	})

	t.Run("validating_status_is_accepted", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)
		line := addLine(t, d, ord, orderItem.ID(), "10.000")
		require.NoError(t, d.Submit(testDate()))
		require.NoError(t, d.BeginValidation())

		err := d.ApplyValidation(ord, "validator@example.com", validatedAt, map[kernel.UUID]kernel.Quantity{
			line.ID(): kernel.MustParseQuantity("10.000"),
		})

		require.NoError(t, err)
	})

	t.Run("missing_line_entry_is_required", func(t *testing.T) {
		first := newTestOrderItem(t, 10, "10.000")
		second := newTestOrderItem(t, 20, "5.000")
		ord := newTestOrder(t, first, second)
		d := newTestDelivery(t, ord)
		firstLine := addLine(t, d, ord, first.ID(), "10.000")
		addLine(t, d, ord, second.ID(), "5.000")
		require.NoError(t, d.Submit(testDate()))

		err := d.ApplyValidation(ord, "validator@example.com", validatedAt, map[kernel.UUID]kernel.Quantity{
			firstLine.ID(): kernel.MustParseQuantity("10.000"),
		})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, delivery.Submitted, d.Status())
	})

	t.Run("accepting_above_declaration_goes_negative", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)
		line := addLine(t, d, ord, orderItem.ID(), "10.000")
		require.NoError(t, d.Submit(testDate()))

		err := d.ApplyValidation(ord, "validator@example.com", validatedAt, map[kernel.UUID]kernel.Quantity{
			line.ID(): kernel.MustParseQuantity("12.000"),
		})
		require.NoError(t, err)

		// Over-acceptance is applied as-is; the remaining counter goes
		// negative and the discrepancy flag carries the signal.
		assert.Equal(t, delivery.Validated, d.Status())
		assert.Equal(t, delivery.ValidationPartial, d.ValidationStatus())
		assert.True(t, line.HasDiscrepancy())
		require.NotNil(t, line.QuantityAccepted())
		assert.Equal(t, "12.000", line.QuantityAccepted().String())
		assert.Equal(t, "12.000", orderItem.QuantityDelivered().String())
		assert.Equal(t, "-2.000", orderItem.Remaining().String())
	})

	t.Run("empty_notice_cannot_be_validated", func(t *testing.T) {
		ord := newTestOrder(t, newTestOrderItem(t, 10, "10.000"))
		d := newTestDelivery(t, ord)
		require.NoError(t, d.Submit(testDate()))

		err := d.ApplyValidation(ord, "validator@example.com", validatedAt, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("draft_notice_cannot_be_validated", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)
		line := addLine(t, d, ord, orderItem.ID(), "10.000")

		err := d.ApplyValidation(ord, "validator@example.com", validatedAt, map[kernel.UUID]kernel.Quantity{
			line.ID(): kernel.MustParseQuantity("10.000"),
		})

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("requires_validator_identity", func(t *testing.T) {
		orderItem := newTestOrderItem(t, 10, "10.000")
		ord := newTestOrder(t, orderItem)
		d := newTestDelivery(t, ord)
		line := addLine(t, d, ord, orderItem.ID(), "10.000")
		require.NoError(t, d.Submit(testDate()))

		err := d.ApplyValidation(ord, "", validatedAt, map[kernel.UUID]kernel.Quantity{
			line.ID(): kernel.MustParseQuantity("10.000"),
		})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
