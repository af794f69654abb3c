package services

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

const (
	// DefaultListFloor is the minimum number of rows a list query returns.
	DefaultListFloor = 10

	day = 24 * time.Hour

	payOffset      = 30 * time.Minute
	deliveryOffset = payOffset + day
	receiveOffset  = payOffset + 3*day

	synthesizedAddressDetail = "XX路XX号XX小区XX栋XX单元XX号"
	synthesizedSpecs         = "红色,XL"
)

// OrderSynthesizer derives placeholder orders from a row index or from an
// order id. The results are never stored.
//
// Row formulas, with i the row index (list) or the id sequence (detail):
//   - createTime: now minus (floor − i) days for lists, the instant embedded in the id for details
//   - payTime: createTime + 30m if status > PendingPayment
//   - deliveryTime: createTime + 30m + 1 day if status > PendingDispatch
//   - receiveTime: createTime + 30m + 3 days if status > PendingReceipt
//   - totalPrice: 1000 + i·100
//   - (i mod 3) + 1 line items, item j has id i·10+j, price id·10, count j
//
// List rows depend on the wall clock, so two calls made on different days
// return different ids. Detail rows are a pure function of the id.
type OrderSynthesizer struct {
	floor int
}

func NewOrderSynthesizer(floor int) OrderSynthesizer {
	if floor <= 0 {
		floor = DefaultListFloor
	}
	return OrderSynthesizer{floor: floor}
}

// Floor returns the minimum list length.
func (s OrderSynthesizer) Floor() int {
	return s.floor
}

// Backfill returns the rows a list of `have` real orders needs to reach the
// floor. Every row carries the given status.
func (s OrderSynthesizer) Backfill(have int, status order.Status, now time.Time) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	needed := s.floor - have
	if needed <= 0 {
		return nil, nil
	}

	rows := make([]*order.Order, 0, needed)
	for i := 1; i <= needed; i++ {
		createdAt := now.Add(-time.Duration(s.floor-i) * day)

		id, err := kernel.NewOrderID(createdAt, i)
		if err != nil {
			return nil, err
		}

		o, err := synthesize(id, i, status, createdAt)
		if err != nil {
			return nil, err
		}
		rows = append(rows, o)
	}
	return rows, nil
}

// Detail derives an order from its id alone. Ids that do not follow the
// ORDER<millis><4 digits> layout cannot be derived and yield ObjectNotFoundError.
func (s OrderSynthesizer) Detail(rawID string) (*order.Order, error) {
	id, err := kernel.ParseOrderID(rawID)
	if err != nil {
		return nil, errs.NewObjectNotFoundErrorWithCause("order id", rawID, err)
	}

	seq := id.Sequence()
	if seq == 0 {
		seq = 1
	}

	return synthesize(id, seq, order.Status(seq%len(order.AllStatuses())), id.CreatedAt())
}

func synthesize(id kernel.OrderID, i int, status order.Status, createdAt time.Time) (*order.Order, error) {
	snapshot := order.Snapshot{
		ID:         id,
		Status:     status,
		TotalPrice: kernel.MoneyFromInt(int64(1000 + i*100)),
		CreateTime: createdAt,
		Address: order.Address{
			Name:     fmt.Sprintf("用户%d", i),
			Phone:    fmt.Sprintf("1380013800%d", i),
			Province: "北京市",
			City:     "北京市",
			District: "朝阳区",
			Detail:   synthesizedAddressDetail,
		},
		Products: synthesizeProducts(i),
	}

	if status > order.PendingPayment {
		snapshot.PayTime = offset(createdAt, payOffset)
	}
	if status > order.PendingDispatch {
		snapshot.DeliveryTime = offset(createdAt, deliveryOffset)
	}
	if status > order.PendingReceipt {
		snapshot.ReceiveTime = offset(createdAt, receiveOffset)
	}

	return order.RestoreOrder(snapshot)
}

func synthesizeProducts(i int) []order.LineItem {
	count := i%3 + 1
	products := make([]order.LineItem, 0, count)
	for j := 1; j <= count; j++ {
		productID := int64(i*10 + j)
		products = append(products, order.LineItem{
			ID:     productID,
			Title:  fmt.Sprintf("订单商品%d", j),
			Price:  kernel.MoneyFromInt(productID * 10),
			Count:  j,
			ImgURL: fmt.Sprintf("https://picsum.photos/100/100?random=%d", productID),
			Specs:  synthesizedSpecs,
		})
	}
	return products
}

func offset(t time.Time, d time.Duration) *time.Time {
	v := t.Add(d)
	return &v
}
