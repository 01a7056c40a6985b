package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"barrieredi/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"not_found", errs.NewObjectNotFoundError("order", "42"), http.StatusNotFound},
		{"conflict", errs.NewConflictError("delivery"), http.StatusConflict},
		{"required", errs.NewValueIsRequiredError("currency"), http.StatusBadRequest},
		{"invalid", errs.NewValueIsInvalidError("order_date"), http.StatusBadRequest},
		{"out_of_range", errs.NewValueIsOutOfRangeError("quantity", "11", "0.001", "10"), http.StatusBadRequest},
		{"unclassified", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, statusFromError(tc.err))
		})
	}
}

func TestDecodeImportPayloads(t *testing.T) {
	t.Run("accepts_single_object", func(t *testing.T) {
		payloads, err := decodeImportPayloads([]byte(`{"order_number": "CMD-2025-0001"}`))

		require.NoError(t, err)
		require.Len(t, payloads, 1)
		assert.Equal(t, "CMD-2025-0001", payloads[0].OrderNumber)
	})

	t.Run("accepts_list", func(t *testing.T) {
		payloads, err := decodeImportPayloads(
			[]byte(`[{"order_number": "CMD-2025-0001"}, {"order_number": "CMD-2025-0002"}]`),
		)

		require.NoError(t, err)
		require.Len(t, payloads, 2)
		assert.Equal(t, "CMD-2025-0002", payloads[1].OrderNumber)
	})

	t.Run("rejects_malformed_body", func(t *testing.T) {
		_, err := decodeImportPayloads([]byte(`not json`))

		require.Error(t, err)
	})
}

func TestServer_Health(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	server := &Server{}
	err := server.Health(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestServer_ImportOrders_RejectsMissingAPIKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/import", strings.NewReader(`[]`))
	rec := httptest.NewRecorder()

	server := &Server{feedAPIKey: "feed-secret"}
	err := server.ImportOrders(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_ImportOrders_RejectsWrongAPIKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/import", strings.NewReader(`[]`))
	req.Header.Set(feedAPIKeyHeader, "wrong")
	rec := httptest.NewRecorder()

	server := &Server{feedAPIKey: "feed-secret"}
	err := server.ImportOrders(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
