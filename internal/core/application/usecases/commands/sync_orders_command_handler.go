package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// SyncOrdersResult aggregates a batch run: how many entries landed, which
// failed and why, and any defensive-parse warnings from the imported ones.
type SyncOrdersResult struct {
	Imported int
	Errors   []string
	Warnings []string
}

// OrderImporter imports a single feed entry. Satisfied by
// *ImportOrderCommandHandler; narrowed to an interface so the batch handler
// can be tested without a database.
type OrderImporter interface {
	Handle(ctx context.Context, cmd ImportOrderCommand) (ImportOrderResult, error)
}

// SyncOrdersCommandHandler runs the order feed batch. Each entry is imported
// in its own transaction; one entry's failure is recorded and the batch
// moves on. Partial success is the expected outcome of a run, not an error.
type SyncOrdersCommandHandler struct {
	importer OrderImporter
}

// NewSyncOrdersCommandHandler creates a handler for batch synchronization.
func NewSyncOrdersCommandHandler(importer OrderImporter) SyncOrdersCommandHandler {
	return SyncOrdersCommandHandler{
		importer: importer,
	}
}

// Handle resolves the batch source, then imports entry by entry. The
// returned error covers only run-level failures (unreadable file, malformed
// JSON); per-entry failures land in the result's error list.
func (h *SyncOrdersCommandHandler) Handle(ctx context.Context, cmd SyncOrdersCommand) (SyncOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return SyncOrdersResult{}, err
	}

	payloads, err := h.resolveBatch(cmd)
	if err != nil {
		return SyncOrdersResult{}, err
	}

	var result SyncOrdersResult
	for _, payload := range payloads {
		entryCmd, err := NewImportOrderCommand(payload)
		if err != nil {
			result.Errors = append(result.Errors, entryError(payload, err))
			continue
		}
		if cmd.DryRun() {
			result.Imported++
			continue
		}

		entryResult, err := h.importer.Handle(ctx, entryCmd)
		if err != nil {
			result.Errors = append(result.Errors, entryError(payload, err))
			continue
		}

		result.Imported++
		result.Warnings = append(result.Warnings, entryResult.Warnings...)
	}

	return result, nil
}

// resolveBatch picks inline payloads first, then the feed file, then the
// built-in sample batch.
func (h *SyncOrdersCommandHandler) resolveBatch(cmd SyncOrdersCommand) ([]OrderPayload, error) {
	if len(cmd.Payloads()) > 0 {
		return cmd.Payloads(), nil
	}

	if cmd.FilePath() != "" {
		data, err := os.ReadFile(cmd.FilePath())
		if err != nil {
			return nil, fmt.Errorf("read feed file: %w", err)
		}
		var payloads []OrderPayload
		if err = json.Unmarshal(data, &payloads); err != nil {
			return nil, fmt.Errorf("decode feed file: %w", err)
		}
		return payloads, nil
	}

	return samplePayloads(), nil
}

func entryError(payload OrderPayload, err error) string {
	number := payload.OrderNumber
	if number == "" {
		number = "<no order_number>"
	}
	return fmt.Sprintf("%s: %v", number, err)
}

// samplePayloads is the fallback batch for environments without a feed,
// mirroring a typical source-system export.
func samplePayloads() []OrderPayload {
	qty := func(s string) *PayloadNumber { return &PayloadNumber{raw: s} }

	return []OrderPayload{
		{
			OrderNumber:  "CMD-2025-0001",
			PartnerCode:  "PART-A1B2C3",
			OrderDate:    "2025-05-26",
			DeliveryDate: "2025-06-02",
			Currency:     "RON",
			Items: []OrderItemPayload{
				{
					Position:            10,
					MaterialCode:        "MAT-STL-010",
					MaterialDescription: "Steel profile 40x40",
					QuantityOrdered:     qty("120.000"),
					UnitOfMeasure:       "BUC",
					DeliveryDate:        "2025-06-02",
					NetPrice:            qty("14.50"),
					PriceUnit:           "BUC",
				},
				{
					Position:            20,
					MaterialCode:        "MAT-STL-025",
					MaterialDescription: "Steel sheet 2mm",
					QuantityOrdered:     qty("35.500"),
					UnitOfMeasure:       "KG",
					DeliveryDate:        "2025-06-02",
					NetPrice:            qty("8.20"),
					PriceUnit:           "KG",
				},
			},
		},
		{
			OrderNumber:  "CMD-2025-0002",
			PartnerCode:  "PART-D4E5F6",
			OrderDate:    "2025-05-27",
			DeliveryDate: "2025-06-05",
			Currency:     "EUR",
			Items: []OrderItemPayload{
				{
					Position:            10,
					MaterialCode:        "MAT-ALU-001",
					MaterialDescription: "Aluminium rail 3m",
					QuantityOrdered:     qty("60.000"),
					UnitOfMeasure:       "BUC",
					DeliveryDate:        "2025-06-05",
					NetPrice:            qty("22.75"),
					PriceUnit:           "BUC",
				},
			},
		},
	}
}
