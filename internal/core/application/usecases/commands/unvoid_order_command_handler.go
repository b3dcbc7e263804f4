package commands

import (
	"context"

	"clinicalorders/internal/pkg/errs"
)

// UnvoidOrderCommandHandler clears an order's void metadata.
type UnvoidOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUnvoidOrderCommandHandler creates a handler for order unvoiding.
func NewUnvoidOrderCommandHandler(uowFactory OrderUoWFactory) UnvoidOrderCommandHandler {
	return UnvoidOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the unvoid command. Fails when the order does not exist.
func (h *UnvoidOrderCommandHandler) Handle(ctx context.Context, cmd UnvoidOrderCommand) error {
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

	ord.Unvoid()

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
