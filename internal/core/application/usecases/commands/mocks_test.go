package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clinicalorders/internal/core/application/usecases/commands"
	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/core/domain/model/reference"
	"clinicalorders/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByPatient(
	ctx context.Context,
	patientID kernel.UUID,
	filter ports.OrderFilter,
) ([]*order.Order, error) {
	args := m.Called(ctx, patientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Stop(ctx context.Context, id kernel.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockOrderRepository) HasDiscontinuation(ctx context.Context, previousOrderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, previousOrderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, o *order.Order, cascade bool) error {
	args := m.Called(ctx, o, cascade)
	return args.Error(0)
}

type MockReferenceRepository struct{ mock.Mock }

func (m *MockReferenceRepository) SaveOrderType(ctx context.Context, orderType *reference.OrderType) error {
	args := m.Called(ctx, orderType)
	return args.Error(0)
}

func (m *MockReferenceRepository) GetOrderType(ctx context.Context, id kernel.UUID) (*reference.OrderType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reference.OrderType), args.Error(1)
}

func (m *MockReferenceRepository) GetOrderTypeByName(ctx context.Context, name string) (*reference.OrderType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reference.OrderType), args.Error(1)
}

func (m *MockReferenceRepository) GetOrderTypes(
	ctx context.Context,
	includeRetired bool,
) ([]*reference.OrderType, error) {
	args := m.Called(ctx, includeRetired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reference.OrderType), args.Error(1)
}

func (m *MockReferenceRepository) GetSubtypes(
	ctx context.Context,
	id kernel.UUID,
	includeRetired bool,
) ([]*reference.OrderType, error) {
	args := m.Called(ctx, id, includeRetired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reference.OrderType), args.Error(1)
}

func (m *MockReferenceRepository) OrderTypeForConcept(
	ctx context.Context,
	conceptID kernel.UUID,
) (*reference.OrderType, error) {
	args := m.Called(ctx, conceptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reference.OrderType), args.Error(1)
}

func (m *MockReferenceRepository) PurgeOrderType(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReferenceRepository) SaveCareSetting(ctx context.Context, careSetting *reference.CareSetting) error {
	args := m.Called(ctx, careSetting)
	return args.Error(0)
}

func (m *MockReferenceRepository) GetCareSetting(ctx context.Context, id kernel.UUID) (*reference.CareSetting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reference.CareSetting), args.Error(1)
}

func (m *MockReferenceRepository) GetCareSettingByName(
	ctx context.Context,
	name string,
) (*reference.CareSetting, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reference.CareSetting), args.Error(1)
}

func (m *MockReferenceRepository) GetCareSettings(
	ctx context.Context,
	includeRetired bool,
) ([]*reference.CareSetting, error) {
	args := m.Called(ctx, includeRetired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reference.CareSetting), args.Error(1)
}

func (m *MockReferenceRepository) SaveOrderFrequency(
	ctx context.Context,
	frequency *reference.OrderFrequency,
) error {
	args := m.Called(ctx, frequency)
	return args.Error(0)
}

func (m *MockReferenceRepository) GetOrderFrequency(
	ctx context.Context,
	id kernel.UUID,
) (*reference.OrderFrequency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reference.OrderFrequency), args.Error(1)
}

func (m *MockReferenceRepository) GetOrderFrequencyByConcept(
	ctx context.Context,
	conceptID kernel.UUID,
) (*reference.OrderFrequency, error) {
	args := m.Called(ctx, conceptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reference.OrderFrequency), args.Error(1)
}

func (m *MockReferenceRepository) GetOrderFrequencies(
	ctx context.Context,
	includeRetired bool,
) ([]*reference.OrderFrequency, error) {
	args := m.Called(ctx, includeRetired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reference.OrderFrequency), args.Error(1)
}

func (m *MockReferenceRepository) PurgeOrderFrequency(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ReferenceRepository() ports.ReferenceRepository {
	args := m.Called()
	return args.Get(0).(ports.ReferenceRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderNumberGenerator struct{ mock.Mock }

func (m *MockOrderNumberGenerator) NextOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// buildOrder creates a valid order for handler tests. Resolved orders carry
// an explicit order type and care setting so the save path skips lookups.
func buildOrder(
	t *testing.T,
	action order.Action,
	kind order.Kind,
	startDate time.Time,
	resolved bool,
) *order.Order {
	t.Helper()

	var drugID *kernel.UUID
	if kind == order.KindDrug {
		id := kernel.NewUUID()
		drugID = &id
	}

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		action, kind, drugID, startDate,
	)
	require.NoError(t, err)

	if resolved {
		require.NoError(t, o.ResolveOrderType(kernel.NewUUID()))
		require.NoError(t, o.ResolveCareSetting(kernel.NewUUID()))
	}

	return o
}
