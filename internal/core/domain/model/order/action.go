package order

import (
	"fmt"

	"clinicalorders/internal/pkg/errs"
)

// Action represents the lineage role of an order within its order-number
// history. It is a value object: every order is created with exactly one
// action and the action never changes afterwards.
//
// Lineage shape:
//
//	New ──> Revise ──> Revise ──> ... ──> Discontinue
//	         (each arrow is a separate order row pointing
//	          back at the order it supersedes)
//
// A Discontinue order terminates its lineage; it can never itself be revised
// or discontinued.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	// This value (0) helps catch uninitialized Action values.
	ActionUnknown Action = iota

	// ActionNew marks the first order of a lineage. It has no previous order.
	ActionNew

	// ActionRevise marks an order that supersedes a previous order with
	// corrected content. The previous order is stopped at the revision's
	// start date.
	ActionRevise

	// ActionDiscontinue marks an order that terminates a previous order.
	// Discontinuation orders are never themselves active.
	ActionDiscontinue
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:     "Unknown",
		ActionNew:         "New",
		ActionRevise:      "Revise",
		ActionDiscontinue: "Discontinue",
	}
}

func getValidActionStrings() map[Action]string {
	//nolint:exhaustive // ActionUnknown is intentionally excluded as it's invalid
	return map[Action]string{
		ActionNew:         "New",
		ActionRevise:      "Revise",
		ActionDiscontinue: "Discontinue",
	}
}

// Validate checks if the Action value is valid.
// Valid actions are New, Revise, and Discontinue.
func (a Action) Validate() error {
	if _, ok := getValidActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid",
			fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// String returns the human-readable name of the action.
// Implements fmt.Stringer and is safe on any Action value.
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "Unknown"
}

// ActionFromString parses an action name as supplied by API callers.
// Matching is exact on the canonical names "New", "Revise", "Discontinue".
func ActionFromString(s string) (Action, error) {
	for action, name := range getValidActionStrings() {
		if name == s {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action is invalid",
		fmt.Errorf("%q is not a valid action", s))
}

// RequiresPreviousOrder reports whether orders with this action must reference
// the order they supersede.
func (a Action) RequiresPreviousOrder() bool {
	return a == ActionRevise || a == ActionDiscontinue
}

// Kind represents the clinical subtype of an order as a tagged variant.
// The revise-compatibility rules dispatch on the kind: a drug order must match
// both the concept and the specific drug of the order it revises, while other
// kinds match on concept alone.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindGeneral is an order with no kind-specific matching fields.
	KindGeneral

	// KindDrug is a medication order. It carries a drug reference that must
	// match across revisions.
	KindDrug

	// KindTest is a test/lab order with no kind-specific matching fields.
	KindTest
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown: "Unknown",
		KindGeneral: "General",
		KindDrug:    "Drug",
		KindTest:    "Test",
	}
}

func getValidKindStrings() map[Kind]string {
	//nolint:exhaustive // KindUnknown is intentionally excluded as it's invalid
	return map[Kind]string{
		KindGeneral: "General",
		KindDrug:    "Drug",
		KindTest:    "Test",
	}
}

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	if _, ok := getValidKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid",
			fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// KindFromString parses a kind name as supplied by API callers.
func KindFromString(s string) (Kind, error) {
	for kind, name := range getValidKindStrings() {
		if name == s {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("kind is invalid",
		fmt.Errorf("%q is not a valid kind", s))
}
