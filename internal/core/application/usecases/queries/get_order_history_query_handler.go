package queries

import (
	"context"

	"clinicalorders/internal/core/domain/services"
	"clinicalorders/internal/pkg/errs"
)

// GetOrderHistoryQueryHandler walks previous-order links through the domain
// chain resolver instead of raw SQL: lineage integrity checks (broken links,
// cycles) live in one place.
type GetOrderHistoryQueryHandler struct {
	resolver *services.ChainResolver
}

// NewGetOrderHistoryQueryHandler creates a new GetOrderHistoryQueryHandler.
func NewGetOrderHistoryQueryHandler(reader services.OrderReader) (GetOrderHistoryQueryHandler, error) {
	if reader == nil {
		return GetOrderHistoryQueryHandler{}, errs.NewValueIsRequiredError("reader")
	}

	resolver, err := services.NewChainResolver(reader)
	if err != nil {
		return GetOrderHistoryQueryHandler{}, err
	}

	return GetOrderHistoryQueryHandler{resolver: resolver}, nil
}

// Handle returns the chain members most recent first. An unknown order
// number yields an empty slice.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	chain, err := h.resolver.HistoryByOrderNumber(ctx, query.OrderNumber())
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(chain))
	for _, member := range chain {
		responses = append(responses, orderToResponse(member))
	}

	return responses, nil
}
