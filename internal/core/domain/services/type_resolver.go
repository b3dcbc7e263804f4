package services

import (
	"context"
	"errors"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/pkg/errs"
)

// ConceptTypeLookup resolves the order type mapped to a clinical concept,
// if one exists. Returns nil without error when no mapping is configured.
type ConceptTypeLookup interface {
	OrderTypeForConcept(ctx context.Context, conceptID kernel.UUID) (*kernel.UUID, error)
}

// TypeResolver determines the effective order type and care setting for an
// order that is about to be saved. Resolution follows a strict precedence:
// a value already present on the order always wins, then the concept-class
// mapping (for order types), then the default supplied by the caller's
// order context. When no source yields a value the resolution fails.
type TypeResolver struct {
	lookup ConceptTypeLookup

	isConstructed bool
}

// NewTypeResolver creates a TypeResolver backed by the given concept lookup.
func NewTypeResolver(lookup ConceptTypeLookup) (*TypeResolver, error) {
	if lookup == nil {
		return nil, errs.NewValueIsRequiredError("lookup")
	}
	return &TypeResolver{
		lookup:        lookup,
		isConstructed: true,
	}, nil
}

// ResolveOrderType fills in the order's order type when it is missing.
// Precedence: explicit value on the order, concept-class mapping,
// context default. Returns ErrUnresolvedDefault when all sources are empty.
func (r *TypeResolver) ResolveOrderType(ctx context.Context, o *order.Order, contextDefault *kernel.UUID) error {
	if !r.isConstructed {
		return errors.New("TypeResolver is not constructed")
	}
	if o == nil {
		return errs.NewValueIsRequiredError("o")
	}

	if o.OrderTypeID() != nil {
		return nil
	}

	mapped, err := r.lookup.OrderTypeForConcept(ctx, o.ConceptID())
	if err != nil {
		return err
	}
	if mapped != nil {
		return o.ResolveOrderType(*mapped)
	}

	if contextDefault != nil {
		return o.ResolveOrderType(*contextDefault)
	}

	return errs.NewUnresolvedDefaultError("orderType")
}

// ResolveCareSetting fills in the order's care setting when it is missing.
// Precedence: explicit value on the order, context default. Returns
// ErrUnresolvedDefault when neither is present.
func (r *TypeResolver) ResolveCareSetting(o *order.Order, contextDefault *kernel.UUID) error {
	if !r.isConstructed {
		return errors.New("TypeResolver is not constructed")
	}
	if o == nil {
		return errs.NewValueIsRequiredError("o")
	}

	if o.CareSettingID() != nil {
		return nil
	}

	if contextDefault != nil {
		return o.ResolveCareSetting(*contextDefault)
	}

	return errs.NewUnresolvedDefaultError("careSetting")
}
