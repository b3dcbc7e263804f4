package queries

import (
	"errors"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/pkg/guard"
)

var ErrGetOrderHistoryByConceptQueryIsNotConstructed = errors.New(
	"GetOrderHistoryByConceptQuery must be created via NewGetOrderHistoryByConceptQuery constructor",
)

// GetOrderHistoryByConceptQuery retrieves every order a patient ever had for
// a concept, voided ones included, newest first. Useful for reviewing what
// was prescribed for a condition over time.
type GetOrderHistoryByConceptQuery struct { //nolint:recvcheck //using for validation
	patientID kernel.UUID
	conceptID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryByConceptQuery creates a new GetOrderHistoryByConceptQuery.
func NewGetOrderHistoryByConceptQuery(patientID, conceptID kernel.UUID) (GetOrderHistoryByConceptQuery, error) {
	err := errors.Join(patientID.Validate(), conceptID.Validate())
	if err != nil {
		return GetOrderHistoryByConceptQuery{}, err
	}

	return GetOrderHistoryByConceptQuery{
		patientID: patientID,
		conceptID: conceptID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryByConceptQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryByConceptQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryByConceptQueryIsNotConstructed)
}

// PatientID returns the patient whose history is requested.
func (q GetOrderHistoryByConceptQuery) PatientID() kernel.UUID {
	return q.patientID
}

// ConceptID returns the orderable concept to filter by.
func (q GetOrderHistoryByConceptQuery) ConceptID() kernel.UUID {
	return q.conceptID
}
