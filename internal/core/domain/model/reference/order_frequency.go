package reference

import (
	"errors"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/pkg/errs"
)

// ErrOrderFrequencyIsNotConstructed is returned when an OrderFrequency was not
// created through NewOrderFrequency or RestoreOrderFrequency.
var ErrOrderFrequencyIsNotConstructed = errors.New(
	"OrderFrequency must be created via NewOrderFrequency or RestoreOrderFrequency")

// OrderFrequency describes how often an ordered item recurs, such as "twice
// daily". Each frequency is backed by a concept and carries the numeric
// frequency per day used by dosing calculations.
type OrderFrequency struct {
	id              kernel.UUID
	conceptID       kernel.UUID
	frequencyPerDay float64
	retired         bool
	retireReason    string
	isConstructed   bool
}

// NewOrderFrequency creates an order frequency backed by the given concept.
// frequencyPerDay must be positive.
func NewOrderFrequency(id, conceptID kernel.UUID, frequencyPerDay float64) (*OrderFrequency, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := conceptID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("concept", err)
	}
	if frequencyPerDay <= 0 {
		return nil, errs.NewValueIsInvalidError("frequencyPerDay")
	}

	return &OrderFrequency{
		id:              id,
		conceptID:       conceptID,
		frequencyPerDay: frequencyPerDay,
		isConstructed:   true,
	}, nil
}

// RestoreOrderFrequency reconstructs an order frequency from persistence.
func RestoreOrderFrequency(
	id, conceptID kernel.UUID, frequencyPerDay float64, retired bool, retireReason string,
) (*OrderFrequency, error) {
	f, err := NewOrderFrequency(id, conceptID, frequencyPerDay)
	if err != nil {
		return nil, err
	}
	f.retired = retired
	f.retireReason = retireReason
	return f, nil
}

// Validate ensures the frequency was created through a factory function.
func (f *OrderFrequency) Validate() error {
	if f == nil || !f.isConstructed {
		return ErrOrderFrequencyIsNotConstructed
	}
	return nil
}

// ID returns the frequency's unique identifier.
func (f *OrderFrequency) ID() kernel.UUID {
	return f.id
}

// ConceptID returns the concept backing this frequency.
func (f *OrderFrequency) ConceptID() kernel.UUID {
	return f.conceptID
}

// FrequencyPerDay returns the number of occurrences per day.
func (f *OrderFrequency) FrequencyPerDay() float64 {
	return f.frequencyPerDay
}

// IsRetired reports whether the frequency is retired.
func (f *OrderFrequency) IsRetired() bool {
	return f.retired
}

// RetireReason returns the reason recorded when the frequency was retired.
func (f *OrderFrequency) RetireReason() string {
	return f.retireReason
}

// Retire marks the frequency retired. The reason is mandatory.
func (f *OrderFrequency) Retire(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("retireReason")
	}
	f.retired = true
	f.retireReason = reason
	return nil
}

// Unretire restores a previously retired frequency.
func (f *OrderFrequency) Unretire() {
	f.retired = false
	f.retireReason = ""
}
