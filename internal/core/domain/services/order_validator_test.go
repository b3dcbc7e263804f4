package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/core/domain/services"
)

func Test_BasicOrderValidator_Validate(t *testing.T) {
	validator := services.NewBasicOrderValidator()
	startDate := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("nil order is reported", func(t *testing.T) {
		violations := validator.Validate(nil)

		require.Len(t, violations, 1)
		assert.Equal(t, "order", violations[0].Field)
	})

	t.Run("new order with no previous passes", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			order.ActionNew, order.KindGeneral, nil, startDate,
		)
		require.NoError(t, err)

		assert.Empty(t, validator.Validate(o))
	})

	t.Run("revision without previous order is reported", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			order.ActionRevise, order.KindGeneral, nil, startDate,
		)
		require.NoError(t, err)

		violations := validator.Validate(o)

		require.Len(t, violations, 1)
		assert.Equal(t, "previousOrder", violations[0].Field)
	})

	t.Run("discontinuation without reason is reported", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			order.ActionDiscontinue, order.KindGeneral, nil, startDate,
		)
		require.NoError(t, err)
		require.NoError(t, o.SetPreviousOrder(kernel.NewUUID()))

		violations := validator.Validate(o)

		require.Len(t, violations, 1)
		assert.Equal(t, "orderReason", violations[0].Field)
	})

	t.Run("discontinuation with text reason passes", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			order.ActionDiscontinue, order.KindGeneral, nil, startDate,
		)
		require.NoError(t, err)
		require.NoError(t, o.SetPreviousOrder(kernel.NewUUID()))
		o.SetOrderReason(nil, "condition resolved")

		assert.Empty(t, validator.Validate(o))
	})
}
