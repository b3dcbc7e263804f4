package order

import "time"

// IsActiveAsOf reports whether the order is active at the given instant.
//
// The checks run in this exact order:
//  1. a voided order is never active
//  2. a discontinuation order is never active; it only affects the order it discontinues
//  3. an order that has not started yet is not active
//  4. if a stop date is set, the order is active while the stop date is in the
//     future. The stop date always outranks the auto-expiry date even when both
//     are set: an order cannot expire and then be stopped later, so once
//     stopped, the stop date is authoritative
//  5. otherwise, if an auto-expiry date is set, the order is active while it is
//     in the future
//  6. otherwise the order is active indefinitely from its start date onward
func (o *Order) IsActiveAsOf(asOf time.Time) bool {
	if o.voided {
		return false
	}
	if o.action == ActionDiscontinue {
		return false
	}
	if o.startDate.After(asOf) {
		return false
	}
	if o.dateStopped != nil {
		return o.dateStopped.After(asOf)
	}
	if o.autoExpireDate != nil {
		return o.autoExpireDate.After(asOf)
	}
	return true
}

// ActiveAsOf filters the given orders down to those active at the given
// instant. Ordering within the result is whatever the input carried; history
// queries define their own strict ordering.
func ActiveAsOf(orders []*Order, asOf time.Time) []*Order {
	active := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if o.IsActiveAsOf(asOf) {
			active = append(active, o)
		}
	}
	return active
}
