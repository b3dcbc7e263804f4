package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinicalorders/internal/core/domain/model/order"
)

// GetOrdersQueryHandler retrieves a patient's orders in a care setting.
// Discontinuation orders are bookkeeping rows for their lineage and are
// always excluded from this listing.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by start date descending.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := h.db.WithContext(ctx).
		Table("orders").
		Where("patient_id = ? AND care_setting_id = ? AND action != ?",
			query.PatientID().Bytes(), query.CareSettingID().Bytes(), order.ActionDiscontinue.String())

	if !query.IncludeVoided() {
		sql = sql.Where("voided = false")
	}
	if query.OrderTypeID() != nil {
		var typeIDs []uuid.UUID
		err := h.db.WithContext(ctx).Raw(`
			WITH RECURSIVE subtypes AS (
				SELECT id FROM order_types WHERE id = ?
				UNION ALL
				SELECT t.id FROM order_types t
				JOIN subtypes s ON t.parent_id = s.id
			)
			SELECT id FROM subtypes
		`, query.OrderTypeID().Bytes()).Scan(&typeIDs).Error
		if err != nil {
			return nil, err
		}
		sql = sql.Where("order_type_id IN ?", typeIDs)
	}

	var rows []orderRow
	if err := sql.Order("start_date DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rowsToResponses(rows)
}

func rowsToResponses(rows []orderRow) ([]OrderResponse, error) {
	responses := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		o, err := rowToOrder(row)
		if err != nil {
			return nil, err
		}
		responses = append(responses, orderToResponse(o))
	}
	return responses, nil
}
