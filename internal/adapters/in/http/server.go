// Package http exposes the reconciliation use cases over a REST API:
// the authenticated feed import endpoint, the partner portal endpoints for
// filing deliveries, and the back-office validation and progress endpoints.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"barrieredi/internal/core/application/usecases/commands"
	"barrieredi/internal/core/application/usecases/queries"
	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/core/domain/services"
	"barrieredi/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// feedAPIKeyHeader authenticates the source system on the import endpoint.
const feedAPIKeyHeader = "X-API-Key"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	feedAPIKey string

	// Command handlers
	importOrderHandler      commands.ImportOrderCommandHandler
	authenticateHandler     commands.AuthenticatePartnerCommandHandler
	createDeliveryHandler   commands.CreateDeliveryCommandHandler
	validateDeliveryHandler commands.ValidateDeliveryCommandHandler

	// Query handlers
	getActiveOrdersHandler        queries.GetActiveOrdersQueryHandler
	getRemainingQuantitiesHandler queries.GetRemainingQuantitiesQueryHandler
	getOrderCompletionHandler     queries.GetOrderCompletionQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
// The feed API key guards the import endpoint; requests without it are rejected.
func NewServer(
	feedAPIKey string,
	importOrderHandler commands.ImportOrderCommandHandler,
	authenticateHandler commands.AuthenticatePartnerCommandHandler,
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	validateDeliveryHandler commands.ValidateDeliveryCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getRemainingQuantitiesHandler queries.GetRemainingQuantitiesQueryHandler,
	getOrderCompletionHandler queries.GetOrderCompletionQueryHandler,
) *Server {
	return &Server{
		feedAPIKey:                    feedAPIKey,
		importOrderHandler:            importOrderHandler,
		authenticateHandler:           authenticateHandler,
		createDeliveryHandler:         createDeliveryHandler,
		validateDeliveryHandler:       validateDeliveryHandler,
		getActiveOrdersHandler:        getActiveOrdersHandler,
		getRemainingQuantitiesHandler: getRemainingQuantitiesHandler,
		getOrderCompletionHandler:     getOrderCompletionHandler,
	}
}

// RegisterRoutes attaches all API routes to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders/import", s.ImportOrders)
	api.POST("/partners/login", s.Login)
	api.POST("/deliveries", s.CreateDelivery)
	api.POST("/deliveries/:id/validate", s.ValidateDelivery)
	api.GET("/partners/:code/orders", s.GetActiveOrders)
	api.GET("/orders/:id/remaining", s.GetRemainingQuantities)
	api.GET("/orders/:id/completion", s.GetOrderCompletion)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ImportOrders handles POST /api/v1/orders/import - imports a feed batch.
// The body is either a single order payload or a list of them; entries are
// imported independently and the response reports the outcome of each.
func (s *Server) ImportOrders(ctx echo.Context) error {
	if s.feedAPIKey == "" || ctx.Request().Header.Get(feedAPIKeyHeader) != s.feedAPIKey {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "invalid or missing API key",
		})
	}

	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "unreadable request body",
		})
	}

	payloads, err := decodeImportPayloads(body)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid feed payload: " + err.Error(),
		})
	}

	response := ImportResponse{Results: make([]ImportEntryResult, 0, len(payloads))}
	for _, payload := range payloads {
		entry := ImportEntryResult{OrderNumber: payload.OrderNumber}

		cmd, cmdErr := commands.NewImportOrderCommand(payload)
		if cmdErr != nil {
			entry.Error = cmdErr.Error()
			response.Failed++
			response.Results = append(response.Results, entry)
			continue
		}

		result, handleErr := s.importOrderHandler.Handle(ctx.Request().Context(), cmd)
		if handleErr != nil {
			entry.Error = handleErr.Error()
			response.Failed++
			response.Results = append(response.Results, entry)
			continue
		}

		entry.OrderID = result.OrderID.Bytes()
		entry.Created = result.Created
		entry.Warnings = result.Warnings
		response.Imported++
		response.Results = append(response.Results, entry)
	}

	status := http.StatusOK
	switch {
	case response.Imported == 0 && response.Failed > 0:
		status = http.StatusBadRequest
	case response.Failed > 0:
		status = http.StatusMultiStatus
	}

	return ctx.JSON(status, response)
}

// Login handles POST /api/v1/partners/login - authenticates a partner by access code.
func (s *Server) Login(ctx echo.Context) error {
	var req LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAuthenticatePartnerCommand(req.Code)
	if err != nil {
		return errorResponse(ctx, err)
	}

	authenticated, err := s.authenticateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPartnerResponse(authenticated))
}

// CreateDelivery handles POST /api/v1/deliveries - files a delivery notice.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req CreateDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	deliveryDate, err := time.Parse(commands.DateLayout, req.DeliveryDate)
	if err != nil {
		return badRequest(ctx, "delivery_date must be formatted as "+commands.DateLayout)
	}

	orderID, err := kernel.UUIDFromBytes(req.OrderID[:])
	if err != nil {
		return errorResponse(ctx, err)
	}

	lines := make([]services.ProposedLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		orderItemID, lineErr := kernel.UUIDFromBytes(line.OrderItemID[:])
		if lineErr != nil {
			return errorResponse(ctx, lineErr)
		}

		quantity, lineErr := kernel.ParseQuantity(line.Quantity)
		if lineErr != nil {
			return errorResponse(ctx, lineErr)
		}

		lines = append(lines, services.ProposedLine{
			OrderItemID: orderItemID,
			Quantity:    quantity,
			Notes:       line.Notes,
		})
	}

	cmd, err := commands.NewCreateDeliveryCommand(req.PartnerCode, orderID, deliveryDate, lines, req.Notes)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateDeliveryResponse{
		DeliveryResponse: toDeliveryResponse(result.Delivery),
		Populated:        result.Populated,
	})
}

// ValidateDelivery handles POST /api/v1/deliveries/:id/validate - records a
// validator's decision on a submitted notice.
func (s *Server) ValidateDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req ValidateDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	accepted := make(map[kernel.UUID]kernel.Quantity, len(req.Lines))
	for _, line := range req.Lines {
		itemID, lineErr := kernel.UUIDFromBytes(line.DeliveryItemID[:])
		if lineErr != nil {
			return errorResponse(ctx, lineErr)
		}

		quantity, lineErr := kernel.ParseQuantity(line.QuantityAccepted)
		if lineErr != nil {
			return errorResponse(ctx, lineErr)
		}

		accepted[itemID] = quantity
	}

	cmd, err := commands.NewValidateDeliveryCommand(deliveryID, req.ValidatedBy, accepted)
	if err != nil {
		return errorResponse(ctx, err)
	}

	validated, err := s.validateDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryResponse(validated))
}

// GetActiveOrders handles GET /api/v1/partners/:code/orders - lists a
// partner's open orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query, err := queries.NewGetActiveOrdersQuery(ctx.Param("code"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRemainingQuantities handles GET /api/v1/orders/:id/remaining - lists the
// order lines with quantity still to deliver.
func (s *Server) GetRemainingQuantities(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetRemainingQuantitiesQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	lines, err := s.getRemainingQuantitiesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]RemainingLineResponse, 0, len(lines))
	for _, line := range lines {
		response = append(response, toRemainingLineResponse(line))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderCompletion handles GET /api/v1/orders/:id/completion - reports the
// delivery progress of an order.
func (s *Server) GetOrderCompletion(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderCompletionQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	report, err := s.getOrderCompletionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCompletionResponse(report))
}

// decodeImportPayloads accepts both shapes of the feed body: a single order
// object or a list of them.
func decodeImportPayloads(body []byte) ([]commands.OrderPayload, error) {
	var batch []commands.OrderPayload
	if err := json.Unmarshal(body, &batch); err == nil {
		return batch, nil
	}

	var single commands.OrderPayload
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}

	return []commands.OrderPayload{single}, nil
}

// statusFromError maps domain errors onto HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(ctx echo.Context, err error) error {
	status := statusFromError(err)
	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
