package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func TestOrderSynthesizer_Backfill(t *testing.T) {
	s := services.NewOrderSynthesizer(services.DefaultListFloor)

	t.Run("fills an empty list to the floor with the requested status", func(t *testing.T) {
		rows, err := s.Backfill(0, order.PendingDispatch, now)

		require.NoError(t, err)
		require.Len(t, rows, 10)
		for _, o := range rows {
			assert.Equal(t, order.PendingDispatch, o.Status())
			assert.Equal(t, "待发货", o.StatusText())
			assert.NotNil(t, o.PayTime())
			assert.Nil(t, o.DeliveryTime())
		}
	})

	t.Run("row formulas", func(t *testing.T) {
		rows, err := s.Backfill(0, order.Completed, now)
		require.NoError(t, err)

		// Row i = 2
		o := rows[1]
		createdAt := now.Add(-8 * 24 * time.Hour)
		assert.Equal(t, createdAt, o.CreateTime())
		assert.Equal(t, createdAt.Add(30*time.Minute), *o.PayTime())
		assert.Equal(t, createdAt.Add(30*time.Minute+24*time.Hour), *o.DeliveryTime())
		assert.Equal(t, createdAt.Add(30*time.Minute+72*time.Hour), *o.ReceiveTime())
		assert.True(t, o.TotalPrice().IsEqual(kernel.MoneyFromInt(1200)))
		assert.Equal(t, 2, o.ID().Sequence())
		assert.Equal(t, "用户2", o.Address().Name)
		assert.Equal(t, "13800138002", o.Address().Phone)

		products := o.Products()
		require.Len(t, products, 3)
		assert.Equal(t, int64(23), products[2].ID)
		assert.Equal(t, "订单商品3", products[2].Title)
		assert.True(t, products[2].Price.IsEqual(kernel.MoneyFromInt(230)))
		assert.Equal(t, 3, products[2].Count)
		assert.Equal(t, "https://picsum.photos/100/100?random=23", products[2].ImgURL)
	})

	t.Run("returns nothing when the floor is reached", func(t *testing.T) {
		rows, err := s.Backfill(12, order.Completed, now)

		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("tops up a partial list", func(t *testing.T) {
		rows, err := s.Backfill(7, order.Completed, now)

		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("rejects an invalid status", func(t *testing.T) {
		_, err := s.Backfill(0, order.Status(7), now)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestOrderSynthesizer_Detail(t *testing.T) {
	s := services.NewOrderSynthesizer(0)

	t.Run("derives status from the sequence", func(t *testing.T) {
		o, err := s.Detail("ORDER17000000000000007")

		require.NoError(t, err)
		assert.Equal(t, "ORDER17000000000000007", o.ID().String())
		assert.Equal(t, order.Dispatched, o.Status())
		assert.Equal(t, time.UnixMilli(1700000000000), o.CreateTime())
		assert.True(t, o.TotalPrice().IsEqual(kernel.MoneyFromInt(1700)))
		assert.Len(t, o.Products(), 2)
		assert.NotNil(t, o.DeliveryTime())
		assert.Nil(t, o.ReceiveTime())
	})

	t.Run("is a pure function of the id", func(t *testing.T) {
		first, err := s.Detail("ORDER17000000000001234")
		require.NoError(t, err)
		second, err := s.Detail("ORDER17000000000001234")
		require.NoError(t, err)

		assert.Equal(t, first.Snapshot(), second.Snapshot())
	})

	t.Run("treats sequence zero as one", func(t *testing.T) {
		o, err := s.Detail("ORDER17000000000000000")

		require.NoError(t, err)
		assert.Equal(t, order.PendingDispatch, o.Status())
		assert.Equal(t, "用户1", o.Address().Name)
	})

	t.Run("unparseable id is not found", func(t *testing.T) {
		o, err := s.Detail("not-an-order")

		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
