// Package partner provides the domain model for external partner
// organizations. A partner owns the orders addressed to it and submits
// delivery notices against them through the portal.
//
// The package includes:
//   - Partner: The aggregate root holding identity, contact data, the active
//     flag and the advisory login-attempt counter
//   - GenerateCode: Cryptographically strong code generation; the code is the
//     partner's portal credential and can be regenerated on demand
//
// Key business rules:
//   - Partner codes are unique across the registry; collisions are resolved
//     by retrying with a fresh candidate
//   - Regenerating a code invalidates the old one immediately
//   - Partners are soft-deactivated, never hard-deleted
package partner
