// Package errs provides standardized error types for the clinical order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes generic error types for common scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a numeric value is outside its allowed range
//   - ObjectNotFoundError: For when an object required by an operation cannot be found
//
// and order-lifecycle error types that carry the rejection taxonomy:
//   - IllegalTransitionError: Revise/discontinue/edit attempts the state machine forbids
//   - UnresolvedDefaultError: Order type or care setting resolution failed
//   - ConflictError: A concurrent writer already superseded the referenced previous order
//   - DataIntegrityError: Corrupted persisted data, such as a previous-order cycle
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrIllegalTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach makes rejection reasons specific and machine-checkable:
// callers branch on the sentinel via errors.Is and render the typed details.
package errs
