// Package kernel provides core domain primitives and utilities for the
// order-and-delivery reconciliation system. It implements fundamental building
// blocks following Domain-Driven Design principles that are used throughout
// the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Quantity: A fixed 3-decimal value object for ordered/delivered/accepted amounts
//   - Money: A fixed 2-decimal value object for prices and totals with half-up rounding
//   - Clock: An injectable time source for day-scoped numbering and audit timestamps
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
//
// The package follows Domain-Driven Design best practices, providing rich domain
// behavior and encapsulation of implementation details.
package kernel
