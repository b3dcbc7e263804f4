package queries

import (
	"errors"
	"time"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves the orders active for a patient as of a
// given instant. An empty as-of date means "now". A nil care setting matches
// every care setting; a nil order type matches every type; a given order type
// matches itself and all of its transitive subtypes.
//
// Example:
//
//	query, _ := NewGetActiveOrdersQuery(patientID, nil, nil, nil, time.Time{})
//	handler := NewGetActiveOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active orders: %w", err)
//	}
type GetActiveOrdersQuery struct { //nolint:recvcheck //using for validation
	patientID     kernel.UUID
	conceptID     *kernel.UUID
	careSettingID *kernel.UUID
	orderTypeID   *kernel.UUID
	asOf          time.Time

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for a patient's active orders.
// The patient is required; every other filter is optional.
func NewGetActiveOrdersQuery(
	patientID kernel.UUID,
	conceptID, careSettingID, orderTypeID *kernel.UUID,
	asOf time.Time,
) (GetActiveOrdersQuery, error) {
	if err := patientID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	if asOf.IsZero() {
		asOf = time.Now()
	}

	return GetActiveOrdersQuery{
		patientID:     patientID,
		conceptID:     conceptID,
		careSettingID: careSettingID,
		orderTypeID:   orderTypeID,
		asOf:          asOf.UTC(),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveOrdersQueryIsNotConstructed if validation fails.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// PatientID returns the patient whose orders are queried.
func (q GetActiveOrdersQuery) PatientID() kernel.UUID {
	return q.patientID
}

// ConceptID returns the optional concept filter.
func (q GetActiveOrdersQuery) ConceptID() *kernel.UUID {
	return q.conceptID
}

// CareSettingID returns the optional care setting filter.
func (q GetActiveOrdersQuery) CareSettingID() *kernel.UUID {
	return q.careSettingID
}

// OrderTypeID returns the optional order type filter.
func (q GetActiveOrdersQuery) OrderTypeID() *kernel.UUID {
	return q.orderTypeID
}

// AsOf returns the instant activity is evaluated at.
func (q GetActiveOrdersQuery) AsOf() time.Time {
	return q.asOf
}
