// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"barrieredi/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PartnerRepoFactory provides access to partner repository within a transaction.
	PartnerRepoFactory interface {
		PartnerRepository() ports.PartnerRepository
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DeliveryRepoFactory provides access to delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// DeliveryNumberFactory provides access to the delivery number sequence
	// within a transaction.
	DeliveryNumberFactory interface {
		DeliveryNumbers() ports.DeliveryNumberSequence
	}

	// PartnerUoW manages transactions for partner-only operations.
	// Used when commands only modify partner aggregates.
	PartnerUoW interface {
		TxManager
		PartnerRepoFactory
	}

	// PartnerUoWFactory creates new partner unit of work instances.
	PartnerUoWFactory interface {
		Create() PartnerUoW
	}

	// ImportUoW manages transactions for the order feed import, which
	// resolves partners and writes order aggregates.
	ImportUoW interface {
		TxManager
		PartnerRepoFactory
		OrderRepoFactory
	}

	// ImportUoWFactory creates new import unit of work instances.
	ImportUoWFactory interface {
		Create() ImportUoW
	}

	// DeliveryUoW manages transactions for delivery creation, which touches
	// partners, orders, deliveries and the number sequence.
	DeliveryUoW interface {
		TxManager
		PartnerRepoFactory
		OrderRepoFactory
		DeliveryRepoFactory
		DeliveryNumberFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// ValidationUoW manages transactions for delivery validation, which
	// updates the delivery and the order counters together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   deliveryRepo := uow.DeliveryRepository()
	//   orderRepo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	ValidationUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
	}

	// ValidationUoWFactory creates new validation unit of work instances.
	ValidationUoWFactory interface {
		Create() ValidationUoW
	}
)
