package commands

import (
	"errors"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/pkg/errs"
	"clinicalorders/internal/pkg/guard"
)

var ErrVoidOrderCommandIsNotConstructed = errors.New(
	"VoidOrderCommand must be created via NewVoidOrderCommand constructor",
)

// VoidOrderCommand represents a request to hide an order as erroneous.
// Voiding is reversible and mutates only the void metadata; stop dates left
// behind by the order's lineage are untouched.
type VoidOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	reason     string
	voidedByID kernel.UUID

	guard guard.ConstructorGuard
}

// NewVoidOrderCommand creates a command to void the given order.
// A reason is mandatory.
func NewVoidOrderCommand(orderID kernel.UUID, reason string, voidedByID kernel.UUID) (VoidOrderCommand, error) {
	command := VoidOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setReason(reason),
		command.setVoidedByID(voidedByID),
	); err != nil {
		return VoidOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrVoidOrderCommandIsNotConstructed if validation fails.
func (c VoidOrderCommand) Validate() error {
	return c.guard.Validate(ErrVoidOrderCommandIsNotConstructed)
}

// OrderID returns the identity of the order being voided.
func (c VoidOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the mandatory void reason.
func (c VoidOrderCommand) Reason() string {
	return c.reason
}

// VoidedByID returns the user performing the void.
func (c VoidOrderCommand) VoidedByID() kernel.UUID {
	return c.voidedByID
}

func (c *VoidOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *VoidOrderCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

func (c *VoidOrderCommand) setVoidedByID(voidedByID kernel.UUID) error {
	if err := voidedByID.Validate(); err != nil {
		return err
	}

	c.voidedByID = voidedByID
	return nil
}
