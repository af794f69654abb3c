package queries_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func detail(t *testing.T, h queries.GetOrderDetailQueryHandler, id string) (queries.OrderView, error) {
	t.Helper()
	q, err := queries.NewGetOrderDetailQuery(id)
	require.NoError(t, err)
	return h.Handle(t.Context(), q)
}

func TestGetOrderDetailQueryHandler_StoredOrder(t *testing.T) {
	stored := newStoredOrder(t, 7, order.PendingPayment)
	h := queries.NewGetOrderDetailQueryHandler(seed(t, stored), services.NewOrderSynthesizer(0))

	view, err := detail(t, h, stored.ID().String())

	require.NoError(t, err)
	assert.Equal(t, order.ProvenanceStore, view.Provenance)
	assert.Equal(t, order.PendingPayment, view.Status)
	assert.Equal(t, "10", view.TotalPrice.String())
}

func TestGetOrderDetailQueryHandler_DerivesUnknownIDs(t *testing.T) {
	h := queries.NewGetOrderDetailQueryHandler(seed(t), services.NewOrderSynthesizer(0))
	const id = "ORDER17000000000000007"

	first, err := detail(t, h, id)
	require.NoError(t, err)
	second, err := detail(t, h, id)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, id, first.ID)
	assert.Equal(t, order.Dispatched, first.Status)
	assert.Equal(t, "已发货", first.StatusText)
	assert.Equal(t, order.ProvenanceSynthesized, first.Provenance)
	assert.Equal(t, int64(1700000000000), first.CreateTime.UnixMilli())
	assert.Equal(t, "1700", first.TotalPrice.String())
}

func TestGetOrderDetailQueryHandler_CancelledOrderFallsBackToDerivation(t *testing.T) {
	stored := newStoredOrder(t, 7, order.PendingPayment)
	store := seed(t, stored)
	h := queries.NewGetOrderDetailQueryHandler(store, services.NewOrderSynthesizer(0))

	uow := newDeleteUoW(t, store)
	require.NoError(t, uow.OrderRepository().Delete(t.Context(), stored.ID()))
	require.NoError(t, uow.Commit(t.Context()))

	view, err := detail(t, h, stored.ID().String())

	require.NoError(t, err)
	assert.Equal(t, order.ProvenanceSynthesized, view.Provenance)
	assert.Equal(t, order.Dispatched, view.Status)
}

func TestGetOrderDetailQueryHandler_Errors(t *testing.T) {
	t.Run("underivable id", func(t *testing.T) {
		h := queries.NewGetOrderDetailQueryHandler(seed(t), services.NewOrderSynthesizer(0))

		_, err := detail(t, h, "abc")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := queries.NewGetOrderDetailQuery(" ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("reader failure is not masked", func(t *testing.T) {
		reader := new(MockOrderReader)
		reader.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
		h := queries.NewGetOrderDetailQueryHandler(reader, services.NewOrderSynthesizer(0))

		_, err := detail(t, h, "ORDER17000000000000007")

		require.EqualError(t, err, "db down")
	})
}
