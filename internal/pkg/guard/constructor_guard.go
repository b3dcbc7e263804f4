// Package guard provides a reusable constructor-enforcement helper for
// commands, queries, and value objects. Embedding a ConstructorGuard in a
// struct makes zero-value instances detectable, so objects created outside
// their designated constructor fail validation instead of silently carrying
// unvalidated state.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed objects from zero values.
// The guard holds an internal flag that only the NewConstructorGuard factory sets,
// so a struct embedding it can verify it went through its constructor.
//
// Example usage:
//
//	type VoidOrderCommand struct {
//	    orderID kernel.UUID
//	    reason  string
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewVoidOrderCommand(orderID kernel.UUID, reason string) (VoidOrderCommand, error) {
//	    // ... validate inputs ...
//	    return VoidOrderCommand{orderID: orderID, reason: reason, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c VoidOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrVoidOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. Call this in the constructor of the guarded object.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its constructor.
// Returns nil for properly constructed objects. For zero values it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
