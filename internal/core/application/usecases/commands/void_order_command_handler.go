package commands

import (
	"context"
	"time"

	"clinicalorders/internal/pkg/errs"
)

// VoidOrderCommandHandler marks an order as voided with the caller's reason.
type VoidOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewVoidOrderCommandHandler creates a handler for order voiding.
func NewVoidOrderCommandHandler(uowFactory OrderUoWFactory) VoidOrderCommandHandler {
	return VoidOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the void command. Fails when the order does not exist.
func (h *VoidOrderCommandHandler) Handle(ctx context.Context, cmd VoidOrderCommand) error {
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

	if err = ord.Void(cmd.Reason(), cmd.VoidedByID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
