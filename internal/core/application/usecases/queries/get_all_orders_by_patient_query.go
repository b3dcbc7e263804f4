package queries

import (
	"errors"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/pkg/guard"
)

var ErrGetAllOrdersByPatientQueryIsNotConstructed = errors.New(
	"GetAllOrdersByPatientQuery must be created via NewGetAllOrdersByPatientQuery constructor",
)

// GetAllOrdersByPatientQuery retrieves every order ever placed for a patient,
// across care settings and including discontinuation and voided orders.
type GetAllOrdersByPatientQuery struct { //nolint:recvcheck //using for validation
	patientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAllOrdersByPatientQuery creates a query for a patient's complete order set.
func NewGetAllOrdersByPatientQuery(patientID kernel.UUID) (GetAllOrdersByPatientQuery, error) {
	if err := patientID.Validate(); err != nil {
		return GetAllOrdersByPatientQuery{}, err
	}

	return GetAllOrdersByPatientQuery{
		patientID: patientID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllOrdersByPatientQueryIsNotConstructed if validation fails.
func (q GetAllOrdersByPatientQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersByPatientQueryIsNotConstructed)
}

// PatientID returns the patient whose orders are queried.
func (q GetAllOrdersByPatientQuery) PatientID() kernel.UUID {
	return q.patientID
}
