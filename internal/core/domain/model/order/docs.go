// Package order provides the domain model for clinical orders: the Order
// aggregate root, the Action value object, and the temporal activity evaluator.
//
// The package includes:
//   - Order: identity, clinical references, lineage, temporal fields, and void metadata
//   - Action: the closed set of lineage actions (New, Revise, Discontinue)
//   - Kind: the closed set of order kinds carrying kind-specific matching rules
//   - IsActiveAsOf / ActiveAsOf: the activity computation over an order's dates
//
// Key business rules:
//   - The order number is unique and immutable once assigned
//   - A revision or discontinuation always references the order it supersedes;
//     history is never mutated in place
//   - Activity is a derived property: a stop date always outranks an auto-expiry
//     date, and a discontinuation order is never itself active
//   - Voiding is reversible; the stop date a later order imposed survives unvoid
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
