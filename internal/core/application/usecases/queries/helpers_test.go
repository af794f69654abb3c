package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func newStoredOrder(t *testing.T, seq int, status order.Status) *order.Order {
	t.Helper()

	id, err := kernel.NewOrderID(now.Add(-time.Hour), seq)
	require.NoError(t, err)
	item, err := order.NewLineItem(int64(seq), "item", kernel.MoneyFromInt(10), 1, "", "")
	require.NoError(t, err)
	o, err := order.NewOrder(id, order.Address{Name: "n", Phone: "p", Detail: "d"},
		[]order.LineItem{item}, order.Checkout{}, id.CreatedAt())
	require.NoError(t, err)

	at := now.Add(-30 * time.Minute)
	if status >= order.PendingDispatch {
		require.NoError(t, o.Pay(at))
	}
	if status >= order.Dispatched {
		require.NoError(t, o.Dispatch(at))
	}
	if status >= order.PendingReceipt {
		require.NoError(t, o.MarkForReceipt())
	}
	if status >= order.Completed {
		require.NoError(t, o.ConfirmReceipt(at))
	}
	return o
}

func seed(t *testing.T, orders ...*order.Order) *memory.Store {
	t.Helper()

	store := memory.NewStore()
	uow := memory.NewUnitOfWorkFactory(store).Create()
	require.NoError(t, uow.Begin(t.Context()))
	for _, o := range orders {
		require.NoError(t, uow.OrderRepository().Add(t.Context(), o))
	}
	require.NoError(t, uow.Commit(t.Context()))
	return store
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderReader) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[order.Status]int)
	return counts, args.Error(1)
}
