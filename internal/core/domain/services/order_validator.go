package services

import (
	"fmt"

	"clinicalorders/internal/core/domain/model/order"
)

// Violation describes a single rule an order failed during validation.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// OrderValidator inspects an order before it is accepted for saving and
// reports every rule it breaks. An empty slice means the order is valid.
type OrderValidator interface {
	Validate(o *order.Order) []Violation
}

// BasicOrderValidator is the default structural validator. It covers the
// rules that do not require repository access: lineage actions must name a
// previous order, and discontinuations must carry a reason.
type BasicOrderValidator struct{}

// NewBasicOrderValidator creates the default validator.
func NewBasicOrderValidator() *BasicOrderValidator {
	return &BasicOrderValidator{}
}

// Validate reports every structural violation found on the order.
func (v *BasicOrderValidator) Validate(o *order.Order) []Violation {
	violations := make([]Violation, 0)

	if o == nil {
		return append(violations, Violation{Field: "order", Message: "order is required"})
	}

	if o.Action().RequiresPreviousOrder() && o.PreviousOrderID() == nil {
		violations = append(violations, Violation{
			Field:   "previousOrder",
			Message: fmt.Sprintf("a previous order is required for action %s", o.Action()),
		})
	}

	if o.Action() == order.ActionDiscontinue &&
		o.OrderReasonCodedID() == nil && o.OrderReason() == "" {
		violations = append(violations, Violation{
			Field:   "orderReason",
			Message: "a discontinuation reason is required",
		})
	}

	return violations
}
