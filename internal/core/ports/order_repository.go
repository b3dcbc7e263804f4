// Package ports defines the persistence contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability. Single-object
// lookups return (nil, nil) when nothing matches: absence is a valid answer,
// not an error. Operations that mutate a specific row still fail when the row
// is missing or no longer in the expected state.
package ports

import (
	"context"
	"time"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/order"
)

// OrderFilter narrows FindByPatient results. Zero values mean "no filtering"
// for the corresponding attribute: a nil care setting matches every care
// setting, an empty order-type set matches every type. Callers that filter by
// a parent order type are expected to expand it to the transitive subtype set
// first; the repository matches against the literal set it is given.
type OrderFilter struct {
	ConceptID               *kernel.UUID
	CareSettingID           *kernel.UUID
	OrderTypeIDs            []kernel.UUID
	IncludeVoided           bool
	ExcludeDiscontinuations bool
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. The order must carry a resolved order type,
	// care setting, and an assigned order number; a duplicate order number
	// surfaces as a conflict error.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order (void metadata only in
	// practice; clinical content is immutable once persisted).
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	// Returns (nil, nil) when no order matches.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrderNumber retrieves an order by its human-facing order number.
	// Returns (nil, nil) when no order matches.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// FindByPatient retrieves a patient's orders matching the filter,
	// sorted by start date descending (latest first).
	FindByPatient(ctx context.Context, patientID kernel.UUID, filter OrderFilter) ([]*order.Order, error)

	// Stop sets the stop date on the order with the given id, but only while
	// that order is still current: not voided and not already stopped. Exactly
	// one writer racing for the same order succeeds; every other writer
	// receives a conflict error. This conditional update is what enforces the
	// at-most-one-active-successor guarantee under concurrency.
	Stop(ctx context.Context, id kernel.UUID, at time.Time) error

	// HasDiscontinuation reports whether a non-voided discontinuation order
	// already references the given order as its previous order.
	HasDiscontinuation(ctx context.Context, previousOrderID kernel.UUID) (bool, error)

	// Delete irreversibly removes the order. With cascade, dependent
	// observations are removed too; without it, the delete fails while
	// dependents exist.
	Delete(ctx context.Context, aggregate *order.Order, cascade bool) error
}
