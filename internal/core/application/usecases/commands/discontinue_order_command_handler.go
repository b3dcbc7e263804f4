package commands

import (
	"context"
	"time"

	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/pkg/errs"
)

// DiscontinueOrderCommandHandler is the convenience path for stopping an
// order. It screens the target, constructs a discontinuation order that
// inherits the target's patient, concept, kind, drug, order type, and care
// setting, and hands it to the placement handler, which re-validates and
// persists under its own transaction. The conditional stop inside the
// placement path remains the arbiter when two discontinuations race.
type DiscontinueOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	placeHandler PlaceOrderCommandHandler
}

// NewDiscontinueOrderCommandHandler creates a handler for order discontinuation.
func NewDiscontinueOrderCommandHandler(
	uowFactory OrderUoWFactory,
	placeHandler PlaceOrderCommandHandler,
) DiscontinueOrderCommandHandler {
	return DiscontinueOrderCommandHandler{
		uowFactory:   uowFactory,
		placeHandler: placeHandler,
	}
}

// Handle processes the discontinuation command.
// Rejects when the target is missing, voided, already stopped, expired as of
// the discontinuation date, itself a discontinuation, already discontinued,
// or when the discontinuation date lies in the future.
func (h *DiscontinueOrderCommandHandler) Handle(ctx context.Context, cmd DiscontinueOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if cmd.DiscontinueDate().After(now) {
		return errs.NewValueIsOutOfRangeError("discontinueDate", cmd.DiscontinueDate(), nil, now)
	}

	target, err := h.loadTarget(ctx, cmd)
	if err != nil {
		return err
	}

	discontinuation, err := order.NewOrder(
		cmd.OrderID(),
		target.PatientID(),
		target.ConceptID(),
		cmd.OrdererID(),
		order.ActionDiscontinue,
		target.Kind(),
		target.DrugID(),
		cmd.DiscontinueDate(),
	)
	if err != nil {
		return err
	}

	if err = discontinuation.SetPreviousOrder(target.ID()); err != nil {
		return err
	}
	discontinuation.SetOrderReason(cmd.ReasonCodedID(), cmd.Reason())

	if cmd.EncounterID() != nil {
		if err = discontinuation.SetEncounter(*cmd.EncounterID()); err != nil {
			return err
		}
	}
	if target.OrderTypeID() != nil {
		if err = discontinuation.ResolveOrderType(*target.OrderTypeID()); err != nil {
			return err
		}
	}
	if target.CareSettingID() != nil {
		if err = discontinuation.ResolveCareSetting(*target.CareSettingID()); err != nil {
			return err
		}
	}

	placeCmd, err := NewPlaceOrderCommand(discontinuation, OrderContext{})
	if err != nil {
		return err
	}

	return h.placeHandler.Handle(ctx, placeCmd)
}

// loadTarget reads the order being discontinued and screens it for the
// transitions the convenience path rejects up front. The read happens in a
// short transaction that is rolled back before placement begins; the
// placement path repeats the decisive checks.
func (h *DiscontinueOrderCommandHandler) loadTarget(
	ctx context.Context,
	cmd DiscontinueOrderCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	target, err := orderRepo.Get(ctx, cmd.PreviousOrderID())
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errs.NewObjectNotFoundError("previousOrder", cmd.PreviousOrderID().String())
	}

	switch {
	case target.IsVoided():
		return nil, errs.NewIllegalTransitionError("a voided order cannot be discontinued")
	case target.Action() == order.ActionDiscontinue:
		return nil, errs.NewIllegalTransitionError("a discontinuation order cannot be discontinued")
	case target.IsStopped():
		return nil, errs.NewIllegalTransitionError("an already stopped order cannot be discontinued")
	case target.IsExpiredAsOf(cmd.DiscontinueDate()):
		return nil, errs.NewIllegalTransitionError("an expired order cannot be discontinued")
	}

	discontinued, err := orderRepo.HasDiscontinuation(ctx, target.ID())
	if err != nil {
		return nil, err
	}
	if discontinued {
		return nil, errs.NewIllegalTransitionError("the order already has a discontinuation")
	}

	return target, nil
}
