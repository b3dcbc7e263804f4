package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves a patient's active orders.
// Candidate rows come from SQL; the activity decision itself is made by the
// domain's temporal evaluator so stop-date/expiry tie-breaks stay in one place.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active-order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. An order type filter is expanded to the type and
// all of its transitive subtypes before matching. Results are sorted by start
// date descending.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := h.db.WithContext(ctx).
		Table("orders").
		Where("patient_id = ? AND voided = false", query.PatientID().Bytes())

	if query.ConceptID() != nil {
		sql = sql.Where("concept_id = ?", query.ConceptID().Bytes())
	}
	if query.CareSettingID() != nil {
		sql = sql.Where("care_setting_id = ?", query.CareSettingID().Bytes())
	}
	if query.OrderTypeID() != nil {
		typeIDs, err := h.expandOrderType(ctx, query.OrderTypeID().Bytes())
		if err != nil {
			return nil, err
		}
		sql = sql.Where("order_type_id IN ?", typeIDs)
	}

	var rows []orderRow
	if err := sql.Order("start_date DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		o, err := rowToOrder(row)
		if err != nil {
			return nil, err
		}
		if !o.IsActiveAsOf(query.AsOf()) {
			continue
		}
		responses = append(responses, orderToResponse(o))
	}

	return responses, nil
}

// expandOrderType returns the type itself plus all transitive subtypes.
func (h GetActiveOrdersQueryHandler) expandOrderType(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := h.db.WithContext(ctx).Raw(`
		WITH RECURSIVE subtypes AS (
			SELECT id FROM order_types WHERE id = ?
			UNION ALL
			SELECT t.id FROM order_types t
			JOIN subtypes s ON t.parent_id = s.id
		)
		SELECT id FROM subtypes
	`, id).Scan(&ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
