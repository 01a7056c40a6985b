package commands

import (
	"bytes"
	"encoding/json"

	"barrieredi/internal/core/domain/model/kernel"
	"barrieredi/internal/pkg/errs"
)

// PayloadNumber is a quantity or price field of the order feed, which sends
// numeric values either as JSON numbers or as numeric strings. Parsing into
// a domain value is deferred so a malformed value can degrade to zero with a
// warning instead of failing the import; a nil *PayloadNumber means the feed
// omitted the field entirely, which is a hard error.
type PayloadNumber struct {
	raw string
}

// UnmarshalJSON accepts both `12.5` and `"12.5"` without judging whether the
// content is actually numeric.
func (n *PayloadNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) >= 2 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n.raw = s
		return nil
	}
	n.raw = string(data)
	return nil
}

// Raw returns the textual value as sent by the feed.
func (n *PayloadNumber) Raw() string {
	return n.raw
}

// Quantity parses the value at 3 decimals. A malformed value yields a zero
// quantity and the parse error so the caller can surface a warning.
func (n *PayloadNumber) Quantity() (kernel.Quantity, error) {
	return kernel.ParseQuantity(n.raw)
}

// Money parses the value at monetary precision. A malformed value yields
// zero and the parse error so the caller can surface a warning.
func (n *PayloadNumber) Money() (kernel.Money, error) {
	return kernel.ParseMoney(n.raw)
}

// OrderItemPayload is one line of an order feed entry.
type OrderItemPayload struct {
	Position            int            `json:"position"`
	MaterialCode        string         `json:"material_code"`
	MaterialDescription string         `json:"material_description"`
	QuantityOrdered     *PayloadNumber `json:"quantity_ordered"`
	UnitOfMeasure       string         `json:"unit_of_measure"`
	DeliveryDate        string         `json:"delivery_date"`
	NetPrice            *PayloadNumber `json:"net_price"`
	PriceUnit           string         `json:"price_unit"`
	PriceUnitOrder      string         `json:"price_unit_order"`
}

// OrderPayload is one entry of the order feed, shaped after the source
// system's export. Dates use the 2006-01-02 layout.
type OrderPayload struct {
	OrderNumber  string             `json:"order_number"`
	PartnerCode  string             `json:"partner_code"`
	OrderDate    string             `json:"order_date"`
	DeliveryDate string             `json:"delivery_date"`
	Currency     string             `json:"currency"`
	Notes        string             `json:"notes"`
	Items        []OrderItemPayload `json:"items"`
}

// validate checks the presence of every required field without touching the
// numeric values; those are parsed defensively later. Returns an error
// naming the first missing field.
func (p OrderPayload) validate() error {
	switch {
	case p.OrderNumber == "":
		return errs.NewValueIsRequiredError("order_number")
	case p.PartnerCode == "":
		return errs.NewValueIsRequiredError("partner_code")
	case p.OrderDate == "":
		return errs.NewValueIsRequiredError("order_date")
	case p.DeliveryDate == "":
		return errs.NewValueIsRequiredError("delivery_date")
	case p.Currency == "":
		return errs.NewValueIsRequiredError("currency")
	case len(p.Items) == 0:
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range p.Items {
		if err := item.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (p OrderItemPayload) validate() error {
	switch {
	case p.Position == 0:
		return errs.NewValueIsRequiredError("position")
	case p.MaterialCode == "":
		return errs.NewValueIsRequiredError("material_code")
	case p.MaterialDescription == "":
		return errs.NewValueIsRequiredError("material_description")
	case p.QuantityOrdered == nil:
		return errs.NewValueIsRequiredError("quantity_ordered")
	case p.UnitOfMeasure == "":
		return errs.NewValueIsRequiredError("unit_of_measure")
	case p.DeliveryDate == "":
		return errs.NewValueIsRequiredError("delivery_date")
	case p.NetPrice == nil:
		return errs.NewValueIsRequiredError("net_price")
	case p.PriceUnit == "":
		return errs.NewValueIsRequiredError("price_unit")
	}
	return nil
}
