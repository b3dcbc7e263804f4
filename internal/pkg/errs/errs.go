package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrObjectNotFound is the sentinel error for lookups that found nothing
	// in a context where the object was required to exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrValueIsInvalid is the sentinel error for values that fail validation.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrValueIsOutOfRange is the sentinel error for values outside their allowed range.
	ErrValueIsOutOfRange = errors.New("value is out of range")

	// ErrValueIsRequired is the sentinel error for missing required values.
	ErrValueIsRequired = errors.New("value is required")

	// ErrIllegalTransition is the sentinel error for order state transitions
	// that the lifecycle rules forbid, such as revising a stopped order.
	ErrIllegalTransition = errors.New("illegal transition")

	// ErrUnresolvedDefault is the sentinel error for orders whose order type or
	// care setting could not be resolved from the concept mapping or the context.
	ErrUnresolvedDefault = errors.New("unresolved default")

	// ErrConflict is the sentinel error for concurrent-write races, reported when
	// another writer superseded the referenced previous order first.
	ErrConflict = errors.New("conflict")

	// ErrDataIntegrity is the sentinel error for corrupted stored data,
	// such as a cycle in a previous-order chain.
	ErrDataIntegrity = errors.New("data integrity violation")
)

// ObjectNotFoundError indicates that an object required by an operation
// does not exist in storage.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a numeric value lies outside its allowed range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// IllegalTransitionError indicates that a requested order state transition
// violates a lifecycle rule. Rule carries the specific rule that was violated
// so callers receive an actionable reason rather than a generic failure.
type IllegalTransitionError struct {
	Rule  string
	Cause error
}

// NewIllegalTransitionError creates an IllegalTransitionError for the violated rule.
func NewIllegalTransitionError(rule string) *IllegalTransitionError {
	return &IllegalTransitionError{Rule: rule}
}

// NewIllegalTransitionErrorWithCause creates an IllegalTransitionError wrapping an underlying cause.
func NewIllegalTransitionErrorWithCause(rule string, cause error) *IllegalTransitionError {
	return &IllegalTransitionError{Rule: rule, Cause: cause}
}

func (e *IllegalTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrIllegalTransition, e.Rule, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrIllegalTransition, e.Rule)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// UnresolvedDefaultError indicates that a defaultable order attribute
// (order type or care setting) could not be resolved from any source.
type UnresolvedDefaultError struct {
	ParamName string
}

// NewUnresolvedDefaultError creates an UnresolvedDefaultError for the unresolved attribute.
func NewUnresolvedDefaultError(paramName string) *UnresolvedDefaultError {
	return &UnresolvedDefaultError{ParamName: paramName}
}

func (e *UnresolvedDefaultError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnresolvedDefault, e.ParamName)
}

func (e *UnresolvedDefaultError) Unwrap() error {
	return ErrUnresolvedDefault
}

// ConflictError indicates that a concurrent writer won a race for the same
// previous order. The caller is expected to re-fetch and resubmit; the engine
// never retries on its own.
type ConflictError struct {
	ParamName string
	ID        any
}

// NewConflictError creates a ConflictError for the contested object.
func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s is no longer current, ID is: %s", ErrConflict, e.ParamName, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// DataIntegrityError indicates corrupted persisted data rather than caller error.
// It is never silently repaired.
type DataIntegrityError struct {
	Detail string
}

// NewDataIntegrityError creates a DataIntegrityError describing the corruption found.
func NewDataIntegrityError(detail string) *DataIntegrityError {
	return &DataIntegrityError{Detail: detail}
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDataIntegrity, e.Detail)
}

func (e *DataIntegrityError) Unwrap() error {
	return ErrDataIntegrity
}
