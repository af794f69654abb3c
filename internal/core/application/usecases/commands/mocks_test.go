package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.OrderID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockOrderTimers struct{ mock.Mock }

func (m *MockOrderTimers) ArmAutoDispatch(id kernel.OrderID)       { m.Called(id) }
func (m *MockOrderTimers) ArmAutoMarkForReceipt(id kernel.OrderID) { m.Called(id) }
func (m *MockOrderTimers) Revoke(id kernel.OrderID)                { m.Called(id) }

type MockDispatchNotifier struct{ mock.Mock }

func (m *MockDispatchNotifier) NotifyDispatched(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

type sequenceIDs struct {
	at  time.Time
	seq int
}

func (s *sequenceIDs) Next() kernel.OrderID {
	s.seq++
	id, _ := kernel.NewOrderID(s.at, s.seq)
	return id
}

var (
	baseTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	payTime  = baseTime.Add(time.Minute)
)

func fixedClock(t time.Time) commands.Clock {
	return func() time.Time { return t }
}

// fixture is an in-memory store seeded with one PendingPayment order.
type fixture struct {
	store   *memory.Store
	factory commands.OrderUoWFactory
	order   *order.Order
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := memory.NewStore()
	uows := memory.NewUnitOfWorkFactory(store)
	factory := commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return uows.Create() })

	cmd, err := commands.NewCreateOrderCommand(
		order.Address{Name: "张三", Phone: "13800138000", Detail: "XX路XX号"},
		[]commands.OrderLine{{ProductID: 1, Count: 2}},
		order.Checkout{},
	)
	require.NoError(t, err)

	h := commands.NewCreateOrderCommandHandler(factory, &sequenceIDs{at: baseTime})
	created, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)

	return fixture{store: store, factory: factory, order: created}
}

func (f fixture) status(t *testing.T) order.Status {
	t.Helper()
	o, err := f.store.Get(t.Context(), f.order.ID())
	require.NoError(t, err)
	return o.Status()
}
