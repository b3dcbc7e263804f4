package services

import (
	"context"
	"errors"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/pkg/errs"
)

// OrderReader is the narrow read surface ChainResolver needs to walk a
// previous-order lineage.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error)
}

// ChainResolver reconstructs the lineage of an order by following
// previousOrderID links from the most recent member backwards.
type ChainResolver struct {
	reader OrderReader

	isConstructed bool
}

// NewChainResolver creates a ChainResolver backed by the given reader.
func NewChainResolver(reader OrderReader) (*ChainResolver, error) {
	if reader == nil {
		return nil, errs.NewValueIsRequiredError("reader")
	}
	return &ChainResolver{
		reader:        reader,
		isConstructed: true,
	}, nil
}

// HistoryByOrderNumber returns the full lineage containing the order with
// the given order number, most recent member first. An unknown order number
// yields an empty slice. A previousOrderID that points to a missing record,
// or a link that revisits an order already seen, indicates corrupted data
// and yields ErrDataIntegrity.
func (r *ChainResolver) HistoryByOrderNumber(ctx context.Context, orderNumber string) ([]*order.Order, error) {
	if !r.isConstructed {
		return nil, errors.New("ChainResolver is not constructed")
	}
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	head, err := r.reader.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return []*order.Order{}, nil
	}

	history := []*order.Order{head}
	visited := map[kernel.UUID]struct{}{head.ID(): {}}

	current := head
	for current.PreviousOrderID() != nil {
		prevID := *current.PreviousOrderID()
		if _, seen := visited[prevID]; seen {
			return nil, errs.NewDataIntegrityError("cycle detected in previous-order chain")
		}

		prev, err := r.reader.Get(ctx, prevID)
		if err != nil {
			return nil, err
		}
		if prev == nil {
			return nil, errs.NewDataIntegrityError("previous-order link points to a missing order")
		}

		history = append(history, prev)
		visited[prev.ID()] = struct{}{}
		current = prev
	}

	return history, nil
}
