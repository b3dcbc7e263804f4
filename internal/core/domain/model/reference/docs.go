// Package reference provides the lookup entities orders refer to: order types,
// care settings, and order frequencies.
//
// These entities are metadata: they carry an identifier, a name, and a retired
// flag, and are mutated only through simple save/retire/unretire/purge
// operations guarded by "reject if in use" checks in the persistence layer.
// Order types additionally form a parent/child hierarchy that activity queries
// traverse transitively, and carry the concept-class associations the type
// resolver uses to derive an order's effective type from its concept.
package reference
