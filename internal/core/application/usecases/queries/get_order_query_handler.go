package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrderQueryHandler resolves a single order by id or order number.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a new GetOrderQueryHandler.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the matching order, or nil when no order matches the
// selector.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("orders")
	if query.OrderID() != nil {
		tx = tx.Where("id = ?", query.OrderID().Bytes())
	} else {
		tx = tx.Where("order_number = ?", query.OrderNumber())
	}

	var rows []orderRow

	result := tx.Limit(1).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	if len(rows) == 0 {
		return nil, nil //nolint:nilnil //absence is a valid answer
	}

	aggregate, err := rowToOrder(rows[0])
	if err != nil {
		return nil, err
	}

	response := orderToResponse(aggregate)

	return &response, nil
}
