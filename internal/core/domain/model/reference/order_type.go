package reference

import (
	"errors"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/pkg/errs"
)

// ErrOrderTypeIsNotConstructed is returned when an OrderType was not created
// through NewOrderType or RestoreOrderType.
var ErrOrderTypeIsNotConstructed = errors.New("OrderType must be created via NewOrderType or RestoreOrderType")

// OrderType classifies orders (e.g. "Drug Order", "Test Order"). Types form a
// hierarchy: a type may have a parent, and queries that filter by a type
// include all of its transitive subtypes. Each type may be associated with one
// or more concept classes; the type resolver uses those associations to derive
// the effective type of an order whose type was not supplied explicitly.
type OrderType struct {
	id             kernel.UUID
	name           string
	description    string
	parentID       *kernel.UUID
	conceptClasses []kernel.UUID
	retired        bool
	retireReason   string
	isConstructed  bool
}

// NewOrderType creates an order type with the given name.
// The parent is optional; concept-class associations may be attached afterwards.
func NewOrderType(id kernel.UUID, name, description string, parentID *kernel.UUID) (*OrderType, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if parentID != nil {
		if err := parentID.Validate(); err != nil {
			return nil, err
		}
	}

	return &OrderType{
		id:            id,
		name:          name,
		description:   description,
		parentID:      parentID,
		isConstructed: true,
	}, nil
}

// RestoreOrderType reconstructs an order type from persistence.
func RestoreOrderType(
	id kernel.UUID,
	name, description string,
	parentID *kernel.UUID,
	conceptClasses []kernel.UUID,
	retired bool,
	retireReason string,
) (*OrderType, error) {
	ot, err := NewOrderType(id, name, description, parentID)
	if err != nil {
		return nil, err
	}
	ot.conceptClasses = conceptClasses
	ot.retired = retired
	ot.retireReason = retireReason
	return ot, nil
}

// Validate ensures the order type was created through a factory function.
func (t *OrderType) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrOrderTypeIsNotConstructed
	}
	return nil
}

// ID returns the order type's unique identifier.
func (t *OrderType) ID() kernel.UUID {
	return t.id
}

// Name returns the order type's name.
func (t *OrderType) Name() string {
	return t.name
}

// Description returns the order type's description.
func (t *OrderType) Description() string {
	return t.description
}

// ParentID returns the parent type, nil for root types.
func (t *OrderType) ParentID() *kernel.UUID {
	return t.parentID
}

// ConceptClasses returns the concept classes associated with this type.
func (t *OrderType) ConceptClasses() []kernel.UUID {
	return t.conceptClasses
}

// IsRetired reports whether the order type is retired.
func (t *OrderType) IsRetired() bool {
	return t.retired
}

// RetireReason returns the reason recorded when the type was retired.
func (t *OrderType) RetireReason() string {
	return t.retireReason
}

// AssociateConceptClass attaches a concept class to this type so the type
// resolver can map concepts of that class to it.
func (t *OrderType) AssociateConceptClass(classID kernel.UUID) error {
	if err := classID.Validate(); err != nil {
		return err
	}
	for _, existing := range t.conceptClasses {
		if existing.IsEqual(classID) {
			return nil
		}
	}
	t.conceptClasses = append(t.conceptClasses, classID)
	return nil
}

// Retire marks the order type retired. The reason is mandatory.
func (t *OrderType) Retire(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("retireReason")
	}
	t.retired = true
	t.retireReason = reason
	return nil
}

// Unretire restores a previously retired order type.
func (t *OrderType) Unretire() {
	t.retired = false
	t.retireReason = ""
}
