package commands_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clinicalorders/internal/core/application/usecases/commands"
	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/core/domain/services"
	"clinicalorders/internal/pkg/errs"
)

var testStartDate = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

func newPlaceHandler(
	factory *MockUoWFactory,
	generator *MockOrderNumberGenerator,
) commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(factory, services.NewBasicOrderValidator(), generator)
}

// buildRevision creates a revision that legally targets the previous order.
func buildRevision(t *testing.T, previous *order.Order) *order.Order {
	t.Helper()

	revision, err := order.NewOrder(
		kernel.NewUUID(), previous.PatientID(), previous.ConceptID(), kernel.NewUUID(),
		order.ActionRevise, previous.Kind(), previous.DrugID(), testStartDate,
	)
	require.NoError(t, err)
	require.NoError(t, revision.SetPreviousOrder(previous.ID()))
	require.NoError(t, revision.ResolveOrderType(kernel.NewUUID()))
	require.NoError(t, revision.ResolveCareSetting(kernel.NewUUID()))
	return revision
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PlaceOrderCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := newPlaceHandler(factory, new(MockOrderNumberGenerator))
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_ValidatorViolation(t *testing.T) {
	ctx := t.Context()

	// Revision with no previous order fails structural validation.
	ord := buildOrder(t, order.ActionRevise, order.KindGeneral, testStartDate, true)
	cmd, err := commands.NewPlaceOrderCommand(ord, commands.OrderContext{})
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	handler := newPlaceHandler(factory, new(MockOrderNumberGenerator))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_NewOrderSuccess(t *testing.T) {
	ctx := t.Context()

	ord := buildOrder(t, order.ActionNew, order.KindGeneral, testStartDate, false)
	orderTypeID := kernel.NewUUID()
	careSettingID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(ord, commands.OrderContext{
		OrderTypeID:   &orderTypeID,
		CareSettingID: &careSettingID,
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	refRepo := new(MockReferenceRepository)
	generator := new(MockOrderNumberGenerator)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(nil, nil).Once(),
		uow.On("ReferenceRepository").Return(refRepo).Once(),
		refRepo.On("OrderTypeForConcept", ctx, ord.ConceptID()).Return(nil, nil).Once(),
		generator.On("NextOrderNumber", ctx).Return("ORD-7", nil).Once(),
		orderRepo.On("Add", ctx, ord).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newPlaceHandler(factory, generator)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "ORD-7", ord.OrderNumber())
	assert.Equal(t, orderTypeID, *ord.OrderTypeID())
	assert.Equal(t, careSettingID, *ord.CareSettingID())
	orderRepo.AssertExpectations(t)
	refRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ContextOrderNumberWins(t *testing.T) {
	ctx := t.Context()

	ord := buildOrder(t, order.ActionNew, order.KindGeneral, testStartDate, true)
	cmd, err := commands.NewPlaceOrderCommand(ord, commands.OrderContext{OrderNumber: "EXT-42"})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	refRepo := new(MockReferenceRepository)
	generator := new(MockOrderNumberGenerator)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(nil, nil).Once(),
		uow.On("ReferenceRepository").Return(refRepo).Once(),
		orderRepo.On("Add", ctx, ord).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newPlaceHandler(factory, generator)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "EXT-42", ord.OrderNumber())
	generator.AssertNotCalled(t, "NextOrderNumber", ctx)
}

func TestPlaceOrderCommandHandler_Handle_EditInPlaceRejected(t *testing.T) {
	ctx := t.Context()

	ord := buildOrder(t, order.ActionNew, order.KindGeneral, testStartDate, true)
	cmd, err := commands.NewPlaceOrderCommand(ord, commands.OrderContext{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newPlaceHandler(factory, new(MockOrderNumberGenerator))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrIllegalTransition)
}

func TestPlaceOrderCommandHandler_Handle_ReviseSuccess(t *testing.T) {
	ctx := t.Context()

	previous := buildOrder(t, order.ActionNew, order.KindGeneral, testStartDate.AddDate(0, 0, -5), true)
	revision := buildRevision(t, previous)
	cmd, err := commands.NewPlaceOrderCommand(revision, commands.OrderContext{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	refRepo := new(MockReferenceRepository)
	generator := new(MockOrderNumberGenerator)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, revision.ID()).Return(nil, nil).Once(),
		orderRepo.On("Get", ctx, previous.ID()).Return(previous, nil).Once(),
		uow.On("ReferenceRepository").Return(refRepo).Once(),
		generator.On("NextOrderNumber", ctx).Return("ORD-8", nil).Once(),
		orderRepo.On("Stop", ctx, previous.ID(), revision.StartDate()).Return(nil).Once(),
		orderRepo.On("Add", ctx, revision).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newPlaceHandler(factory, generator)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_PreviousOrderNotFound(t *testing.T) {
	ctx := t.Context()

	previous := buildOrder(t, order.ActionNew, order.KindGeneral, testStartDate.AddDate(0, 0, -5), true)
	revision := buildRevision(t, previous)
	cmd, err := commands.NewPlaceOrderCommand(revision, commands.OrderContext{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, revision.ID()).Return(nil, nil).Once(),
		orderRepo.On("Get", ctx, previous.ID()).Return(nil, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newPlaceHandler(factory, new(MockOrderNumberGenerator))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestPlaceOrderCommandHandler_Handle_ReviseStoppedPreviousRejected(t *testing.T) {
	ctx := t.Context()

	previous := buildOrder(t, order.ActionNew, order.KindGeneral, testStartDate.AddDate(0, 0, -5), true)
	require.NoError(t, previous.MarkStopped(testStartDate.AddDate(0, 0, -1)))
	revision := buildRevision(t, previous)
	cmd, err := commands.NewPlaceOrderCommand(revision, commands.OrderContext{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, revision.ID()).Return(nil, nil).Once(),
		orderRepo.On("Get", ctx, previous.ID()).Return(previous, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newPlaceHandler(factory, new(MockOrderNumberGenerator))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrIllegalTransition)
}

func TestPlaceOrderCommandHandler_Handle_ReviseConceptMismatchRejected(t *testing.T) {
	ctx := t.Context()

	previous := buildOrder(t, order.ActionNew, order.KindGeneral, testStartDate.AddDate(0, 0, -5), true)

	revision, err := order.NewOrder(
		kernel.NewUUID(), previous.PatientID(), kernel.NewUUID(), kernel.NewUUID(),
		order.ActionRevise, order.KindGeneral, nil, testStartDate,
	)
	require.NoError(t, err)
	require.NoError(t, revision.SetPreviousOrder(previous.ID()))
	require.NoError(t, revision.ResolveOrderType(kernel.NewUUID()))
	require.NoError(t, revision.ResolveCareSetting(kernel.NewUUID()))

	cmd, err := commands.NewPlaceOrderCommand(revision, commands.OrderContext{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, revision.ID()).Return(nil, nil).Once(),
		orderRepo.On("Get", ctx, previous.ID()).Return(previous, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newPlaceHandler(factory, new(MockOrderNumberGenerator))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrIllegalTransition)
}

func TestPlaceOrderCommandHandler_Handle_DrugReviseRequiresSameDrug(t *testing.T) {
	ctx := t.Context()

	previous := buildOrder(t, order.ActionNew, order.KindDrug, testStartDate.AddDate(0, 0, -5), true)

	otherDrugID := kernel.NewUUID()
	revision, err := order.NewOrder(
		kernel.NewUUID(), previous.PatientID(), previous.ConceptID(), kernel.NewUUID(),
		order.ActionRevise, order.KindDrug, &otherDrugID, testStartDate,
	)
	require.NoError(t, err)
	require.NoError(t, revision.SetPreviousOrder(previous.ID()))
	require.NoError(t, revision.ResolveOrderType(kernel.NewUUID()))
	require.NoError(t, revision.ResolveCareSetting(kernel.NewUUID()))

	cmd, err := commands.NewPlaceOrderCommand(revision, commands.OrderContext{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, revision.ID()).Return(nil, nil).Once(),
		orderRepo.On("Get", ctx, previous.ID()).Return(previous, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newPlaceHandler(factory, new(MockOrderNumberGenerator))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrIllegalTransition)
}

func TestPlaceOrderCommandHandler_Handle_DiscontinueStaleTargetRejected(t *testing.T) {
	ctx := t.Context()

	previous := buildOrder(t, order.ActionNew, order.KindGeneral, testStartDate.AddDate(0, 0, -10), true)

	// Another order for the same lineage is the current active one.
	current, err := order.NewOrder(
		kernel.NewUUID(), previous.PatientID(), previous.ConceptID(), kernel.NewUUID(),
		order.ActionNew, order.KindGeneral, nil, testStartDate.AddDate(0, 0, -2),
	)
	require.NoError(t, err)

	discontinuation, err := order.NewOrder(
		kernel.NewUUID(), previous.PatientID(), previous.ConceptID(), kernel.NewUUID(),
		order.ActionDiscontinue, order.KindGeneral, nil, testStartDate,
	)
	require.NoError(t, err)
	require.NoError(t, discontinuation.SetPreviousOrder(previous.ID()))
	discontinuation.SetOrderReason(nil, "condition resolved")
	require.NoError(t, discontinuation.ResolveOrderType(kernel.NewUUID()))
	require.NoError(t, discontinuation.ResolveCareSetting(kernel.NewUUID()))

	cmd, err := commands.NewPlaceOrderCommand(discontinuation, commands.OrderContext{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	refRepo := new(MockReferenceRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, discontinuation.ID()).Return(nil, nil).Once(),
		orderRepo.On("Get", ctx, previous.ID()).Return(previous, nil).Once(),
		uow.On("ReferenceRepository").Return(refRepo).Once(),
		orderRepo.On("FindByPatient", ctx, discontinuation.PatientID(), mock.AnythingOfType("ports.OrderFilter")).
			Return([]*order.Order{previous, current}, nil).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newPlaceHandler(factory, new(MockOrderNumberGenerator))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestPlaceOrderCommandHandler_Handle_StopConflictPropagates(t *testing.T) {
	ctx := t.Context()

	previous := buildOrder(t, order.ActionNew, order.KindGeneral, testStartDate.AddDate(0, 0, -5), true)
	revision := buildRevision(t, previous)
	cmd, err := commands.NewPlaceOrderCommand(revision, commands.OrderContext{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	refRepo := new(MockReferenceRepository)
	generator := new(MockOrderNumberGenerator)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, revision.ID()).Return(nil, nil).Once(),
		orderRepo.On("Get", ctx, previous.ID()).Return(previous, nil).Once(),
		uow.On("ReferenceRepository").Return(refRepo).Once(),
		generator.On("NextOrderNumber", ctx).Return("ORD-9", nil).Once(),
		orderRepo.On("Stop", ctx, previous.ID(), revision.StartDate()).
			Return(errs.NewConflictError("order", previous.ID().String())).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newPlaceHandler(factory, generator)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	orderRepo.AssertNotCalled(t, "Add", ctx, revision)
}

func TestPlaceOrderCommandHandler_Handle_UnresolvedOrderType(t *testing.T) {
	ctx := t.Context()

	ord := buildOrder(t, order.ActionNew, order.KindGeneral, testStartDate, false)
	cmd, err := commands.NewPlaceOrderCommand(ord, commands.OrderContext{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	refRepo := new(MockReferenceRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(nil, nil).Once(),
		uow.On("ReferenceRepository").Return(refRepo).Once(),
		refRepo.On("OrderTypeForConcept", ctx, ord.ConceptID()).Return(nil, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newPlaceHandler(factory, new(MockOrderNumberGenerator))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnresolvedDefault)
}

func TestPlaceOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	ord := buildOrder(t, order.ActionNew, order.KindGeneral, testStartDate, true)
	cmd, err := commands.NewPlaceOrderCommand(ord, commands.OrderContext{})
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := newPlaceHandler(factory, new(MockOrderNumberGenerator))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}
