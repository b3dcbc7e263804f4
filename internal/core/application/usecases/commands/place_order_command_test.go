package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicalorders/internal/core/application/usecases/commands"
	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/pkg/errs"
)

func Test_NewPlaceOrderCommand(t *testing.T) {
	startDate := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("requires an order", func(t *testing.T) {
		cmd, err := commands.NewPlaceOrderCommand(nil, commands.OrderContext{})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Error(t, cmd.Validate())
	})

	t.Run("accepts a valid order", func(t *testing.T) {
		ord := buildOrder(t, order.ActionNew, order.KindGeneral, startDate, false)

		cmd, err := commands.NewPlaceOrderCommand(ord, commands.OrderContext{})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Same(t, ord, cmd.Order())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.PlaceOrderCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrPlaceOrderCommandIsNotConstructed)
	})
}
