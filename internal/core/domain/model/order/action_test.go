package order_test

import (
	"testing"

	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_Validate(t *testing.T) {
	for _, a := range []order.Action{order.ActionNew, order.ActionRevise, order.ActionDiscontinue} {
		assert.NoError(t, a.Validate(), a.String())
	}

	require.ErrorIs(t, order.ActionUnknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Action(99).Validate(), errs.ErrValueIsInvalid)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "New", order.ActionNew.String())
	assert.Equal(t, "Revise", order.ActionRevise.String())
	assert.Equal(t, "Discontinue", order.ActionDiscontinue.String())
	assert.Equal(t, "Unknown", order.Action(99).String())
}

func TestActionFromString(t *testing.T) {
	a, err := order.ActionFromString("Discontinue")
	require.NoError(t, err)
	assert.Equal(t, order.ActionDiscontinue, a)

	_, err = order.ActionFromString("discontinue")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAction_RequiresPreviousOrder(t *testing.T) {
	assert.False(t, order.ActionNew.RequiresPreviousOrder())
	assert.True(t, order.ActionRevise.RequiresPreviousOrder())
	assert.True(t, order.ActionDiscontinue.RequiresPreviousOrder())
}

func TestKind(t *testing.T) {
	for _, k := range []order.Kind{order.KindGeneral, order.KindDrug, order.KindTest} {
		assert.NoError(t, k.Validate(), k.String())
	}
	require.ErrorIs(t, order.KindUnknown.Validate(), errs.ErrValueIsInvalid)

	k, err := order.KindFromString("Drug")
	require.NoError(t, err)
	assert.Equal(t, order.KindDrug, k)

	_, err = order.KindFromString("Potion")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
