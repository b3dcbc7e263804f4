package commands

import (
	"errors"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/pkg/guard"
)

var ErrPurgeOrderCommandIsNotConstructed = errors.New(
	"PurgeOrderCommand must be created via NewPurgeOrderCommand constructor",
)

// PurgeOrderCommand represents a request to permanently delete an order row.
// Purge is independent of voiding and cannot be undone. With cascade the
// observations referencing the order are removed too; without it the purge
// fails while dependents exist.
type PurgeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	cascade bool

	guard guard.ConstructorGuard
}

// NewPurgeOrderCommand creates a command to purge the given order.
func NewPurgeOrderCommand(orderID kernel.UUID, cascade bool) (PurgeOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return PurgeOrderCommand{}, err
	}

	return PurgeOrderCommand{
		orderID: orderID,
		cascade: cascade,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPurgeOrderCommandIsNotConstructed if validation fails.
func (c PurgeOrderCommand) Validate() error {
	return c.guard.Validate(ErrPurgeOrderCommandIsNotConstructed)
}

// OrderID returns the identity of the order being purged.
func (c PurgeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Cascade reports whether dependent observations are removed as well.
func (c PurgeOrderCommand) Cascade() bool {
	return c.cascade
}
