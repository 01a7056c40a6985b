// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the reconciliation system. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - DeliveryAssembler: A domain service that builds and submits a delivery
//     notice from a partner's proposal, auto-filling undelivered order lines
//     when the proposal is empty
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
