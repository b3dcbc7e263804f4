package commands

import (
	"errors"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/pkg/guard"
)

var ErrUnvoidOrderCommandIsNotConstructed = errors.New(
	"UnvoidOrderCommand must be created via NewUnvoidOrderCommand constructor",
)

// UnvoidOrderCommand represents a request to restore a voided order. The
// order returns to its prior temporal state; stop dates written by other
// orders in the interim remain as they are.
type UnvoidOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnvoidOrderCommand creates a command to unvoid the given order.
func NewUnvoidOrderCommand(orderID kernel.UUID) (UnvoidOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UnvoidOrderCommand{}, err
	}

	return UnvoidOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUnvoidOrderCommandIsNotConstructed if validation fails.
func (c UnvoidOrderCommand) Validate() error {
	return c.guard.Validate(ErrUnvoidOrderCommandIsNotConstructed)
}

// OrderID returns the identity of the order being unvoided.
func (c UnvoidOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
