package http

import (
	"time"

	"barrieredi/internal/core/application/usecases/commands"
	"barrieredi/internal/core/application/usecases/queries"
	"barrieredi/internal/core/domain/model/delivery"
	"barrieredi/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

// Error is the uniform error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LoginRequest carries a partner portal login attempt.
type LoginRequest struct {
	Code string `json:"code"`
}

// PartnerResponse represents an authenticated partner.
type PartnerResponse struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func toPartnerResponse(p *partner.Partner) PartnerResponse {
	return PartnerResponse{
		ID:          p.ID().Bytes(),
		Code:        p.Code(),
		Name:        p.Name(),
		LastLoginAt: p.LastLoginAt(),
	}
}

// ImportEntryResult reports the outcome of one feed entry.
type ImportEntryResult struct {
	OrderNumber string    `json:"order_number"`
	OrderID     uuid.UUID `json:"order_id,omitempty"`
	Created     bool      `json:"created"`
	Warnings    []string  `json:"warnings,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// ImportResponse reports the outcome of a feed import request.
type ImportResponse struct {
	Imported int                 `json:"imported"`
	Failed   int                 `json:"failed"`
	Results  []ImportEntryResult `json:"results"`
}

// CreateDeliveryRequest carries a partner's delivery notice proposal.
// Lines may be omitted entirely; the notice is then pre-filled with every
// order line that still has remaining quantity.
type CreateDeliveryRequest struct {
	PartnerCode  string                `json:"partner_code"`
	OrderID      uuid.UUID             `json:"order_id"`
	DeliveryDate string                `json:"delivery_date"`
	Notes        string                `json:"notes,omitempty"`
	Lines        []DeliveryLineRequest `json:"lines,omitempty"`
}

// DeliveryLineRequest proposes one delivery line.
type DeliveryLineRequest struct {
	OrderItemID uuid.UUID `json:"order_item_id"`
	Quantity    string    `json:"quantity"`
	Notes       string    `json:"notes,omitempty"`
}

// ValidateDeliveryRequest carries a validator's decision for every line of a
// submitted notice.
type ValidateDeliveryRequest struct {
	ValidatedBy string                  `json:"validated_by"`
	Lines       []ValidationLineRequest `json:"lines"`
}

// ValidationLineRequest records the accepted quantity of one delivery line.
type ValidationLineRequest struct {
	DeliveryItemID   uuid.UUID `json:"delivery_item_id"`
	QuantityAccepted string    `json:"quantity_accepted"`
}

// DeliveryResponse represents a delivery notice with its lines.
type DeliveryResponse struct {
	ID               uuid.UUID              `json:"id"`
	Number           string                 `json:"number"`
	OrderID          uuid.UUID              `json:"order_id"`
	PartnerID        uuid.UUID              `json:"partner_id"`
	DeliveryDate     string                 `json:"delivery_date"`
	Status           string                 `json:"status"`
	ValidationStatus string                 `json:"validation_status"`
	Notes            string                 `json:"notes,omitempty"`
	SubmittedAt      *time.Time             `json:"submitted_at,omitempty"`
	ValidatedAt      *time.Time             `json:"validated_at,omitempty"`
	ValidatedBy      string                 `json:"validated_by,omitempty"`
	HasDiscrepancy   bool                   `json:"has_discrepancy"`
	Items            []DeliveryItemResponse `json:"items"`
}

// DeliveryItemResponse represents one line of a delivery notice.
type DeliveryItemResponse struct {
	ID                uuid.UUID `json:"id"`
	OrderItemID       uuid.UUID `json:"order_item_id"`
	QuantityDelivered string    `json:"quantity_delivered"`
	QuantityAccepted  *string   `json:"quantity_accepted,omitempty"`
	HasDiscrepancy    bool      `json:"has_discrepancy"`
	DiscrepancyReason string    `json:"discrepancy_reason,omitempty"`
	Notes             string    `json:"notes,omitempty"`
}

func toDeliveryResponse(d *delivery.Delivery) DeliveryResponse {
	items := make([]DeliveryItemResponse, 0, len(d.Items()))
	for _, item := range d.Items() {
		var accepted *string
		if q := item.QuantityAccepted(); q != nil {
			value := q.String()
			accepted = &value
		}

		items = append(items, DeliveryItemResponse{
			ID:                item.ID().Bytes(),
			OrderItemID:       item.OrderItemID().Bytes(),
			QuantityDelivered: item.QuantityDelivered().String(),
			QuantityAccepted:  accepted,
			HasDiscrepancy:    item.HasDiscrepancy(),
			DiscrepancyReason: item.DiscrepancyReason(),
			Notes:             item.Notes(),
		})
	}

	return DeliveryResponse{
		ID:               d.ID().Bytes(),
		Number:           d.Number(),
		OrderID:          d.OrderID().Bytes(),
		PartnerID:        d.PartnerID().Bytes(),
		DeliveryDate:     d.DeliveryDate().Format(commands.DateLayout),
		Status:           d.Status().String(),
		ValidationStatus: d.ValidationStatus().String(),
		Notes:            d.Notes(),
		SubmittedAt:      d.SubmittedAt(),
		ValidatedAt:      d.ValidatedAt(),
		ValidatedBy:      d.ValidatedBy(),
		HasDiscrepancy:   d.HasDiscrepancy(),
		Items:            items,
	}
}

// CreateDeliveryResponse is the body of a successful delivery filing.
// Populated reports that the lines were auto-filled from the order's
// remaining quantities because the request proposed none.
type CreateDeliveryResponse struct {
	DeliveryResponse
	Populated bool `json:"populated"`
}

// OrderResponse represents one open order in the portal listing.
type OrderResponse struct {
	ID           uuid.UUID `json:"id"`
	Number       string    `json:"number"`
	Status       string    `json:"status"`
	OrderDate    string    `json:"order_date"`
	DeliveryDate string    `json:"delivery_date"`
	Currency     string    `json:"currency"`
	TotalValue   string    `json:"total_value"`
}

func toOrderResponse(o queries.GetActiveOrdersQueryResponse) OrderResponse {
	return OrderResponse{
		ID:           o.ID.Bytes(),
		Number:       o.Number,
		Status:       o.Status,
		OrderDate:    o.OrderDate.Format(commands.DateLayout),
		DeliveryDate: o.DeliveryDate.Format(commands.DateLayout),
		Currency:     o.Currency,
		TotalValue:   o.TotalValue.String(),
	}
}

// RemainingLineResponse represents one order line with quantity left to deliver.
type RemainingLineResponse struct {
	OrderItemID         uuid.UUID `json:"order_item_id"`
	Position            int       `json:"position"`
	MaterialCode        string    `json:"material_code"`
	MaterialDescription string    `json:"material_description"`
	UnitOfMeasure       string    `json:"unit_of_measure"`
	QuantityOrdered     string    `json:"quantity_ordered"`
	QuantityDelivered   string    `json:"quantity_delivered"`
	Remaining           string    `json:"remaining"`
}

func toRemainingLineResponse(line queries.GetRemainingQuantitiesQueryResponse) RemainingLineResponse {
	return RemainingLineResponse{
		OrderItemID:         line.OrderItemID.Bytes(),
		Position:            line.Position,
		MaterialCode:        line.MaterialCode,
		MaterialDescription: line.MaterialDescription,
		UnitOfMeasure:       line.UnitOfMeasure,
		QuantityOrdered:     line.QuantityOrdered.String(),
		QuantityDelivered:   line.QuantityDelivered.String(),
		Remaining:           line.Remaining.String(),
	}
}

// CompletionResponse represents the delivery progress of one order.
type CompletionResponse struct {
	OrderID        uuid.UUID `json:"order_id"`
	TotalOrdered   string    `json:"total_ordered"`
	TotalDelivered string    `json:"total_delivered"`
	Percentage     string    `json:"percentage"`
	IsComplete     bool      `json:"is_complete"`
}

func toCompletionResponse(report queries.GetOrderCompletionQueryResponse) CompletionResponse {
	return CompletionResponse{
		OrderID:        report.OrderID.Bytes(),
		TotalOrdered:   report.TotalOrdered.String(),
		TotalDelivered: report.TotalDelivered.String(),
		Percentage:     report.Percentage.StringFixed(2),
		IsComplete:     report.IsComplete,
	}
}
