package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderDetailQueryIsNotConstructed = errors.New(
	"GetOrderDetailQuery must be created via NewGetOrderDetailQuery constructor",
)

type GetOrderDetailQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

func NewGetOrderDetailQuery(orderID string) (GetOrderDetailQuery, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return GetOrderDetailQuery{}, errs.NewValueIsRequiredError("orderID")
	}

	return GetOrderDetailQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailQueryIsNotConstructed)
}

func (q GetOrderDetailQuery) OrderID() string {
	return q.orderID
}
