package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllOrdersByPatientQueryHandler retrieves the complete order set of a
// patient, voided and discontinuation orders included.
type GetAllOrdersByPatientQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersByPatientQueryHandler creates a handler for complete patient listings.
func NewGetAllOrdersByPatientQueryHandler(db *gorm.DB) GetAllOrdersByPatientQueryHandler {
	return GetAllOrdersByPatientQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by start date descending.
func (h GetAllOrdersByPatientQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersByPatientQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).
		Table("orders").
		Where("patient_id = ?", query.PatientID().Bytes()).
		Order("start_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rowsToResponses(rows)
}
