package commands

import (
	"errors"
	"time"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/pkg/errs"
	"clinicalorders/internal/pkg/guard"
)

var ErrDiscontinueOrderCommandIsNotConstructed = errors.New(
	"DiscontinueOrderCommand must be created via NewDiscontinueOrderCommand constructor",
)

// DiscontinueOrderCommand represents a request to stop a clinical order by
// creating a discontinuation order linked to it. The reason may be coded,
// free text, or both; at least one part is required.
type DiscontinueOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	previousOrderID kernel.UUID
	ordererID       kernel.UUID
	encounterID     *kernel.UUID
	reasonCodedID   *kernel.UUID
	reason          string
	discontinueDate time.Time

	guard guard.ConstructorGuard
}

// NewDiscontinueOrderCommand creates a command to discontinue the order with
// the given previous order id. orderID is the identity the new
// discontinuation order will carry.
func NewDiscontinueOrderCommand(
	orderID kernel.UUID,
	previousOrderID kernel.UUID,
	ordererID kernel.UUID,
	encounterID *kernel.UUID,
	reasonCodedID *kernel.UUID,
	reason string,
	discontinueDate time.Time,
) (DiscontinueOrderCommand, error) {
	command := DiscontinueOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPreviousOrderID(previousOrderID),
		command.setOrdererID(ordererID),
		command.setReason(reasonCodedID, reason),
		command.setDiscontinueDate(discontinueDate),
	); err != nil {
		return DiscontinueOrderCommand{}, err
	}

	command.encounterID = encounterID
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDiscontinueOrderCommandIsNotConstructed if validation fails.
func (c DiscontinueOrderCommand) Validate() error {
	return c.guard.Validate(ErrDiscontinueOrderCommandIsNotConstructed)
}

// OrderID returns the identity assigned to the new discontinuation order.
func (c DiscontinueOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PreviousOrderID returns the identity of the order being discontinued.
func (c DiscontinueOrderCommand) PreviousOrderID() kernel.UUID {
	return c.previousOrderID
}

// OrdererID returns the provider requesting the discontinuation.
func (c DiscontinueOrderCommand) OrdererID() kernel.UUID {
	return c.ordererID
}

// EncounterID returns the encounter the discontinuation belongs to, if any.
func (c DiscontinueOrderCommand) EncounterID() *kernel.UUID {
	return c.encounterID
}

// ReasonCodedID returns the coded discontinuation reason, if any.
func (c DiscontinueOrderCommand) ReasonCodedID() *kernel.UUID {
	return c.reasonCodedID
}

// Reason returns the free-text discontinuation reason, if any.
func (c DiscontinueOrderCommand) Reason() string {
	return c.reason
}

// DiscontinueDate returns the instant the order stops being active.
func (c DiscontinueOrderCommand) DiscontinueDate() time.Time {
	return c.discontinueDate
}

func (c *DiscontinueOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DiscontinueOrderCommand) setPreviousOrderID(previousOrderID kernel.UUID) error {
	if err := previousOrderID.Validate(); err != nil {
		return err
	}

	c.previousOrderID = previousOrderID
	return nil
}

func (c *DiscontinueOrderCommand) setOrdererID(ordererID kernel.UUID) error {
	if err := ordererID.Validate(); err != nil {
		return err
	}

	c.ordererID = ordererID
	return nil
}

func (c *DiscontinueOrderCommand) setReason(reasonCodedID *kernel.UUID, reason string) error {
	if reasonCodedID == nil && reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if reasonCodedID != nil {
		if err := reasonCodedID.Validate(); err != nil {
			return err
		}
	}

	c.reasonCodedID = reasonCodedID
	c.reason = reason
	return nil
}

func (c *DiscontinueOrderCommand) setDiscontinueDate(discontinueDate time.Time) error {
	if discontinueDate.IsZero() {
		return errs.NewValueIsRequiredError("discontinueDate")
	}

	c.discontinueDate = discontinueDate.UTC()
	return nil
}
