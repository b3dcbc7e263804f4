package queries

import (
	"errors"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/pkg/errs"
	"clinicalorders/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQueryByID or NewGetOrderQueryByNumber constructor",
)

// GetOrderQuery retrieves a single order by its id or by its order number.
// Exactly one selector is set, depending on the constructor used. Absence is
// a valid answer: the handler returns nil rather than an error when nothing
// matches.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID     *kernel.UUID
	orderNumber string

	guard guard.ConstructorGuard
}

// NewGetOrderQueryByID creates a lookup by unique identifier.
func NewGetOrderQueryByID(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: &orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewGetOrderQueryByNumber creates a lookup by human-facing order number.
func NewGetOrderQueryByNumber(orderNumber string) (GetOrderQuery, error) {
	if orderNumber == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}

	return GetOrderQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the id selector, nil for number lookups.
func (q GetOrderQuery) OrderID() *kernel.UUID {
	return q.orderID
}

// OrderNumber returns the number selector, empty for id lookups.
func (q GetOrderQuery) OrderNumber() string {
	return q.orderNumber
}
