// Package kernel provides core domain primitives for the clinical order service.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package currently contains:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//
// Orders, patients, concepts, providers, encounters, and reference-data entities
// are all keyed by kernel.UUID. The primitive is immutable and thread-safe,
// making it suitable for concurrent use.
package kernel
