package queries

import (
	"errors"

	"clinicalorders/internal/pkg/errs"
	"clinicalorders/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves the full revision chain that the order with
// the given number belongs to, most recent member first.
type GetOrderHistoryQuery struct { //nolint:recvcheck //using for validation
	orderNumber string

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a new GetOrderHistoryQuery.
func NewGetOrderHistoryQuery(orderNumber string) (GetOrderHistoryQuery, error) {
	if orderNumber == "" {
		return GetOrderHistoryQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}

	return GetOrderHistoryQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// OrderNumber returns the number of the chain member to start from.
func (q GetOrderHistoryQuery) OrderNumber() string {
	return q.orderNumber
}
