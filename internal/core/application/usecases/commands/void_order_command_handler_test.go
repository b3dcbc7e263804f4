package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clinicalorders/internal/core/application/usecases/commands"
	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/pkg/errs"
)

func Test_NewVoidOrderCommand(t *testing.T) {
	t.Run("requires a reason", func(t *testing.T) {
		_, err := commands.NewVoidOrderCommand(kernel.NewUUID(), "", kernel.NewUUID())

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.VoidOrderCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrVoidOrderCommandIsNotConstructed)
	})
}

func TestVoidOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	ord := buildOrder(t, order.ActionNew, order.KindGeneral,
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), true)
	voidedByID := kernel.NewUUID()

	cmd, err := commands.NewVoidOrderCommand(ord.ID(), "entered in error", voidedByID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("Update", ctx, ord).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewVoidOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, ord.IsVoided())
	assert.Equal(t, "entered in error", ord.VoidReason())
	assert.Equal(t, voidedByID, *ord.VoidedByID())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestVoidOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewVoidOrderCommand(orderID, "entered in error", kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewVoidOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestVoidOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.VoidOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewVoidOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrVoidOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
