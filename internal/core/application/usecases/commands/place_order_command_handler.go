package commands

import (
	"context"
	"strings"

	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/core/domain/services"
	"clinicalorders/internal/core/ports"
	"clinicalorders/internal/pkg/errs"
)

// PlaceOrderCommandHandler is the write side of the order lifecycle. It
// validates the incoming order, enforces the lineage rules against the
// referenced previous order, resolves the effective order type and care
// setting, allocates an order number, and persists the order, stopping the
// previous order in the same transaction when the action supersedes it.
//
// Two writers racing to supersede the same previous order resolve to exactly
// one winner: the stop is a conditional update, and the loser receives a
// conflict error.
type PlaceOrderCommandHandler struct {
	uowFactory      UoWFactory
	validator       services.OrderValidator
	numberGenerator ports.OrderNumberGenerator
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// The validator screens orders before any transaction is opened; the
// generator supplies order numbers when neither the order nor the context
// carries one.
func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	validator services.OrderValidator,
	numberGenerator ports.OrderNumberGenerator,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:      uowFactory,
		validator:       validator,
		numberGenerator: numberGenerator,
	}
}

// Handle processes the order placement command.
// Runs validation, lineage checks, default resolution, number allocation,
// and persistence as one transaction; on any failure nothing is saved.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ord := cmd.Order()

	if violations := h.validator.Validate(ord); len(violations) > 0 {
		details := make([]string, 0, len(violations))
		for _, v := range violations {
			details = append(details, v.String())
		}
		return errs.NewValueIsInvalidError("order: " + strings.Join(details, "; "))
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	existing, err := orderRepo.Get(ctx, ord.ID())
	if err != nil {
		return err
	}
	if existing != nil && !existing.IsVoided() {
		return errs.NewIllegalTransitionError(
			"a saved order cannot be edited in place; submit a revision instead",
		)
	}

	previous, err := h.checkPreviousOrder(ctx, orderRepo, ord)
	if err != nil {
		return err
	}

	if err = h.resolveDefaults(ctx, uow, ord, cmd.OrderContext()); err != nil {
		return err
	}

	if ord.Action() == order.ActionDiscontinue {
		if err = h.checkDiscontinueTargetIsCurrent(ctx, orderRepo, ord, previous); err != nil {
			return err
		}
	}

	if err = h.allocateOrderNumber(ctx, ord, cmd.OrderContext()); err != nil {
		return err
	}

	if previous != nil {
		if err = orderRepo.Stop(ctx, previous.ID(), ord.StartDate()); err != nil {
			return err
		}
	}

	if err = orderRepo.Add(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// checkPreviousOrder loads and screens the previous order for lineage
// actions. A revision or discontinuation may only supersede an order that is
// present, not voided, not already stopped, not expired as of the new order's
// start date, and not itself a discontinuation. Revisions must additionally
// match the previous order's concept, and drug orders its drug.
func (h *PlaceOrderCommandHandler) checkPreviousOrder(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	ord *order.Order,
) (*order.Order, error) {
	if !ord.Action().RequiresPreviousOrder() {
		return nil, nil
	}

	previous, err := orderRepo.Get(ctx, *ord.PreviousOrderID())
	if err != nil {
		return nil, err
	}
	if previous == nil {
		return nil, errs.NewObjectNotFoundError("previousOrder", ord.PreviousOrderID().String())
	}

	switch {
	case previous.IsVoided():
		return nil, errs.NewIllegalTransitionError("a voided order cannot be revised or discontinued")
	case previous.Action() == order.ActionDiscontinue:
		return nil, errs.NewIllegalTransitionError("a discontinuation order cannot be revised or discontinued")
	case previous.IsStopped():
		return nil, errs.NewIllegalTransitionError("an already stopped order cannot be revised or discontinued")
	case previous.IsExpiredAsOf(ord.StartDate()):
		return nil, errs.NewIllegalTransitionError("an expired order cannot be revised or discontinued")
	}

	if ord.Action() == order.ActionRevise {
		if !ord.ConceptID().IsEqual(previous.ConceptID()) {
			return nil, errs.NewIllegalTransitionError("a revision must keep the previous order's concept")
		}
		if ord.Kind() == order.KindDrug {
			if ord.DrugID() == nil || previous.DrugID() == nil || !ord.DrugID().IsEqual(*previous.DrugID()) {
				return nil, errs.NewIllegalTransitionError("a drug order revision must keep the previous order's drug")
			}
		}
	}

	return previous, nil
}

// resolveDefaults fills in the order's type and care setting through the
// fallback chain, using the transaction-bound reference repository for the
// concept mapping and the order context for caller defaults.
func (h *PlaceOrderCommandHandler) resolveDefaults(
	ctx context.Context,
	uow UoW,
	ord *order.Order,
	orderContext OrderContext,
) error {
	resolver, err := services.NewTypeResolver(conceptTypeLookup{repo: uow.ReferenceRepository()})
	if err != nil {
		return err
	}

	if err = resolver.ResolveOrderType(ctx, ord, orderContext.OrderTypeID); err != nil {
		return err
	}

	return resolver.ResolveCareSetting(ord, orderContext.CareSettingID)
}

// checkDiscontinueTargetIsCurrent rejects a discontinuation whose previous
// order is stale: if another non-discontinuation order for the same patient,
// concept, and care setting is active as of the discontinuation date, the
// discontinuation must target that order, not the one it names.
func (h *PlaceOrderCommandHandler) checkDiscontinueTargetIsCurrent(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	ord *order.Order,
	previous *order.Order,
) error {
	conceptID := ord.ConceptID()
	filter := ports.OrderFilter{
		ConceptID:               &conceptID,
		CareSettingID:           ord.CareSettingID(),
		ExcludeDiscontinuations: true,
	}

	siblings, err := orderRepo.FindByPatient(ctx, ord.PatientID(), filter)
	if err != nil {
		return err
	}

	for _, sibling := range order.ActiveAsOf(siblings, ord.StartDate()) {
		if !sibling.ID().IsEqual(previous.ID()) {
			return errs.NewConflictError("previousOrder", previous.ID().String())
		}
	}

	return nil
}

// allocateOrderNumber assigns an order number when the order carries none.
// An explicit number from the context wins, then the context's generation
// strategy, then the handler's default generator.
func (h *PlaceOrderCommandHandler) allocateOrderNumber(
	ctx context.Context,
	ord *order.Order,
	orderContext OrderContext,
) error {
	if ord.OrderNumber() != "" {
		return nil
	}

	number := orderContext.OrderNumber
	if number == "" {
		generator := orderContext.Generator
		if generator == nil {
			generator = h.numberGenerator
		}

		var err error
		if number, err = generator.NextOrderNumber(ctx); err != nil {
			return err
		}
	}

	return ord.AssignOrderNumber(number)
}
