package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrderHistoryByConceptQueryHandler lists all orders of a patient for a
// concept, including voided ones.
type GetOrderHistoryByConceptQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryByConceptQueryHandler creates a new GetOrderHistoryByConceptQueryHandler.
func NewGetOrderHistoryByConceptQueryHandler(db *gorm.DB) GetOrderHistoryByConceptQueryHandler {
	return GetOrderHistoryByConceptQueryHandler{db: db}
}

// Handle returns the orders newest first.
func (h GetOrderHistoryByConceptQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryByConceptQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderRow

	result := h.db.WithContext(ctx).
		Table("orders").
		Where("patient_id = ?", query.PatientID().Bytes()).
		Where("concept_id = ?", query.ConceptID().Bytes()).
		Order("start_date DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rowsToResponses(rows)
}
