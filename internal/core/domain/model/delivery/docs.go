// Package delivery provides domain entities and business logic for delivery
// notices partners file against their orders. It implements the Delivery
// aggregate root with its lines and the single-shot validation workflow.
//
// The package includes:
//   - Delivery: The aggregate root owning the notice lifecycle and its lines
//   - Item: A line referencing one order line, with declared and accepted
//     quantities and the two-phase discrepancy flag
//   - Status: The notice lifecycle (draft through validated/rejected)
//   - ValidationStatus: The recorded outcome (approved, rejected, partial)
//
// Key business rules:
//   - A notice belongs to exactly one open order of the filing partner, and
//     every line references a distinct line of that order
//   - Declared quantities must be positive and within the line's remaining
//     quantity; declaring less than the remainder flags a discrepancy
//   - Validation runs at most once; it records accepted quantities, redefines
//     the discrepancy flags against the declarations and extends the order's
//     delivered counters in the same transaction
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package delivery
