package queries

import (
	"errors"
	"time"

	"clinicalorders/internal/pkg/guard"
)

var ErrCountExpiredOrdersQueryIsNotConstructed = errors.New(
	"CountExpiredOrdersQuery must be created via NewCountExpiredOrdersQuery constructor",
)

// CountExpiredOrdersQuery counts orders that ran past their auto-expire date
// without ever being stopped or voided. The expiry monitor job feeds this
// number into a gauge.
type CountExpiredOrdersQuery struct { //nolint:recvcheck //using for validation
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewCountExpiredOrdersQuery creates a new CountExpiredOrdersQuery.
// A zero asOf defaults to the current time.
func NewCountExpiredOrdersQuery(asOf time.Time) (CountExpiredOrdersQuery, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	return CountExpiredOrdersQuery{
		asOf:  asOf.UTC(),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrCountExpiredOrdersQueryIsNotConstructed if validation fails.
func (q CountExpiredOrdersQuery) Validate() error {
	return q.guard.Validate(ErrCountExpiredOrdersQueryIsNotConstructed)
}

// AsOf returns the instant expiry is evaluated against.
func (q CountExpiredOrdersQuery) AsOf() time.Time {
	return q.asOf
}
