package commands

import (
	"context"

	"clinicalorders/internal/pkg/errs"
)

// PurgeOrderCommandHandler permanently removes an order row.
type PurgeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPurgeOrderCommandHandler creates a handler for order purging.
func NewPurgeOrderCommandHandler(uowFactory OrderUoWFactory) PurgeOrderCommandHandler {
	return PurgeOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the purge command. Fails when the order does not exist,
// or when dependents exist and cascade was not requested.
func (h *PurgeOrderCommandHandler) Handle(ctx context.Context, cmd PurgeOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if ord == nil {
		return errs.NewObjectNotFoundError("order", cmd.OrderID().String())
	}

	if err = orderRepo.Delete(ctx, ord, cmd.Cascade()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
