package commands

import (
	"errors"

	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/pkg/errs"
	"clinicalorders/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a request to save a new order: an initial
// order, a revision, or a discontinuation, distinguished by the order's
// action. The order context carries the caller's optional overrides used
// during default resolution.
//
// Example:
//
//	ord, _ := order.NewOrder(orderID, patientID, conceptID, ordererID,
//	    order.ActionNew, order.KindGeneral, nil, startDate)
//	cmd, err := NewPlaceOrderCommand(ord, OrderContext{})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, validator, generator)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	ord          *order.Order
	orderContext OrderContext

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to save the given order.
// The order must satisfy its own structural invariants; lineage and
// resolution rules are enforced by the handler under a transaction.
func NewPlaceOrderCommand(ord *order.Order, orderContext OrderContext) (PlaceOrderCommand, error) {
	if ord == nil {
		return PlaceOrderCommand{}, errs.NewValueIsRequiredError("ord")
	}
	if err := ord.Validate(); err != nil {
		return PlaceOrderCommand{}, err
	}

	return PlaceOrderCommand{
		ord:          ord,
		orderContext: orderContext,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// Order returns the order to be saved.
func (c PlaceOrderCommand) Order() *order.Order {
	return c.ord
}

// OrderContext returns the caller's save-time overrides.
func (c PlaceOrderCommand) OrderContext() OrderContext {
	return c.orderContext
}
