// Package order provides domain entities and business logic for purchase
// orders imported from the external source system. It implements the Order
// aggregate root with its material lines and delivery-progress tracking.
//
// The package includes:
//   - Order: The aggregate root owning identity, scalar feed fields and lines
//   - Item: A material line with ordered quantity, pricing and the cumulative
//     delivered counter mutated only through the aggregate
//   - Status: The order lifecycle with its open and closed state sets
//
// Key business rules:
//   - The order number is the unique external key; a re-import overwrites
//     scalars, resets the status to pending and replaces all lines
//   - Total value always equals the sum of line totals (2 decimals, half-up)
//   - Remaining quantity is derived as ordered − delivered (3 decimals) and
//     is computed identically wherever it is needed
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
