package delivery_test

import (
	"testing"

	"barrieredi/internal/core/domain/model/delivery"
	"barrieredi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Run("round_trips_valid_statuses", func(t *testing.T) {
		for _, s := range []delivery.Status{
			delivery.Draft, delivery.Submitted, delivery.Validating,
			delivery.Validated, delivery.Rejected,
		} {
			require.NoError(t, s.Validate())
			parsed, err := delivery.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects_invalid_values", func(t *testing.T) {
		require.ErrorIs(t, delivery.StatusUnknown.Validate(), errs.ErrValueIsInvalid)
		_, err := delivery.StatusFromString("shipped")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "unknown", delivery.Status(42).String())
	})

	t.Run("awaiting_validation_set", func(t *testing.T) {
		assert.True(t, delivery.Submitted.IsAwaitingValidation())
		assert.True(t, delivery.Validating.IsAwaitingValidation())
		assert.False(t, delivery.Draft.IsAwaitingValidation())
		assert.False(t, delivery.Validated.IsAwaitingValidation())
		assert.False(t, delivery.Rejected.IsAwaitingValidation())
	})
}

func TestValidationStatus(t *testing.T) {
	t.Run("round_trips_valid_outcomes", func(t *testing.T) {
		for _, s := range []delivery.ValidationStatus{
			delivery.ValidationPending, delivery.ValidationApproved,
			delivery.ValidationRejected, delivery.ValidationPartial,
		} {
			require.NoError(t, s.Validate())
			parsed, err := delivery.ValidationStatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects_invalid_values", func(t *testing.T) {
		require.ErrorIs(t, delivery.ValidationUnknown.Validate(), errs.ErrValueIsInvalid)
		_, err := delivery.ValidationStatusFromString("accepted")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
