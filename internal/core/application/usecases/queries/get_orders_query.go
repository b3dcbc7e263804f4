package queries

import (
	"errors"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves a patient's orders in a care setting, excluding
// discontinuation orders. Both the patient and the care setting are required;
// an order type filter is optional and expands to its subtypes.
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	patientID     kernel.UUID
	careSettingID kernel.UUID
	orderTypeID   *kernel.UUID
	includeVoided bool

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for a patient's orders in a care setting.
func NewGetOrdersQuery(
	patientID, careSettingID kernel.UUID,
	orderTypeID *kernel.UUID,
	includeVoided bool,
) (GetOrdersQuery, error) {
	if err := errors.Join(patientID.Validate(), careSettingID.Validate()); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		patientID:     patientID,
		careSettingID: careSettingID,
		orderTypeID:   orderTypeID,
		includeVoided: includeVoided,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// PatientID returns the patient whose orders are queried.
func (q GetOrdersQuery) PatientID() kernel.UUID {
	return q.patientID
}

// CareSettingID returns the care setting filter.
func (q GetOrdersQuery) CareSettingID() kernel.UUID {
	return q.careSettingID
}

// OrderTypeID returns the optional order type filter.
func (q GetOrdersQuery) OrderTypeID() *kernel.UUID {
	return q.orderTypeID
}

// IncludeVoided reports whether voided orders are included.
func (q GetOrdersQuery) IncludeVoided() bool {
	return q.includeVoided
}
