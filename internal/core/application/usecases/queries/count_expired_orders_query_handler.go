package queries

import (
	"context"

	"gorm.io/gorm"

	"clinicalorders/internal/core/domain/model/order"
)

// CountExpiredOrdersQueryHandler counts lapsed orders for monitoring.
type CountExpiredOrdersQueryHandler struct {
	db *gorm.DB
}

// NewCountExpiredOrdersQueryHandler creates a new CountExpiredOrdersQueryHandler.
func NewCountExpiredOrdersQueryHandler(db *gorm.DB) CountExpiredOrdersQueryHandler {
	return CountExpiredOrdersQueryHandler{db: db}
}

// Handle counts orders whose auto-expire date has passed while they were
// still running. Discontinuations never expire on their own.
func (h CountExpiredOrdersQueryHandler) Handle(ctx context.Context, query CountExpiredOrdersQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int64

	result := h.db.WithContext(ctx).
		Table("orders").
		Where("auto_expire_date IS NOT NULL AND auto_expire_date <= ?", query.AsOf()).
		Where("date_stopped IS NULL").
		Where("voided = false").
		Where("action != ?", order.ActionDiscontinue.String()).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
