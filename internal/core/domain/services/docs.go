// Package services provides domain services that orchestrate business rules
// across multiple domain entities in the clinical order system. It implements
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - TypeResolver: resolves an order's effective order type and care setting
//     through the fixed fallback chain (explicit value, concept-class mapping,
//     order-context default)
//   - ChainResolver: walks and validates the previous-order linkage of an
//     order-number lineage, guarding against cycles
//   - BasicOrderValidator: the default structural validator the lifecycle
//     engine consults before accepting a save
//
// Domain services coordinate between aggregates and narrow lookup
// collaborators, following Domain-Driven Design principles.
package services
