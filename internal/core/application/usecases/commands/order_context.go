package commands

import (
	"context"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/ports"
)

// OrderContext carries the caller's optional overrides for a single save:
// a default order type and care setting used when the order itself carries
// none, an explicit order number, and a custom number-generation strategy.
// The zero value means "no overrides". It is never persisted.
type OrderContext struct {
	OrderTypeID   *kernel.UUID
	CareSettingID *kernel.UUID
	OrderNumber   string
	Generator     ports.OrderNumberGenerator
}

// conceptTypeLookup adapts a transaction-bound reference repository to the
// narrow lookup surface the type resolver expects.
type conceptTypeLookup struct {
	repo ports.ReferenceRepository
}

func (l conceptTypeLookup) OrderTypeForConcept(ctx context.Context, conceptID kernel.UUID) (*kernel.UUID, error) {
	orderType, err := l.repo.OrderTypeForConcept(ctx, conceptID)
	if err != nil || orderType == nil {
		return nil, err
	}

	id := orderType.ID()
	return &id, nil
}
