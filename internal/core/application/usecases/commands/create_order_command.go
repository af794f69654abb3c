package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

const defaultSpecs = "默认规格"

// OrderLine is one requested product. Empty fields take catalog defaults:
// price id×10, title 商品<id>, a placeholder image and the default spec.
type OrderLine struct {
	ProductID int64
	Title     string
	Price     *decimal.Decimal
	Count     int
	ImgURL    string
	Specs     string
}

// CreateOrderCommand represents a checkout: recipient, products and the
// pass-through delivery/payment choice.
//
// Example:
//
//	price := decimal.NewFromInt(50)
//	cmd, err := NewCreateOrderCommand(
//	    order.Address{Name: "张三", Phone: "13800138000", Detail: "XX路XX号"},
//	    []OrderLine{{ProductID: 1, Price: &price, Count: 2}},
//	    order.Checkout{DeliveryType: "express", PaymentType: "wechat"},
//	)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	address  order.Address
	products []order.LineItem
	checkout order.Checkout

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the payload and fills line defaults.
// Every problem is reported, joined into one error.
func NewCreateOrderCommand(address order.Address, lines []OrderLine, checkout order.Checkout) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		checkout: checkout,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAddress(address),
		cmd.setProducts(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Address() order.Address {
	return c.address
}

func (c CreateOrderCommand) Products() []order.LineItem {
	return append([]order.LineItem(nil), c.products...)
}

func (c CreateOrderCommand) Checkout() order.Checkout {
	return c.checkout
}

func (c *CreateOrderCommand) setAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setProducts(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("products")
	}

	var joined []error
	products := make([]order.LineItem, 0, len(lines))
	for i, line := range lines {
		item, err := line.toLineItem()
		if err != nil {
			joined = append(joined, fmt.Errorf("products[%d]: %w", i, err))
			continue
		}
		products = append(products, item)
	}

	if err := errors.Join(joined...); err != nil {
		return err
	}

	c.products = products
	return nil
}

func (l OrderLine) toLineItem() (order.LineItem, error) {
	price := kernel.MoneyFromInt(l.ProductID * 10)
	if l.Price != nil {
		var err error
		if price, err = kernel.NewMoney(*l.Price); err != nil {
			return order.LineItem{}, err
		}
	}

	title := l.Title
	if title == "" {
		title = fmt.Sprintf("商品%d", l.ProductID)
	}

	imgURL := l.ImgURL
	if imgURL == "" {
		imgURL = fmt.Sprintf("https://picsum.photos/100/100?random=%d", l.ProductID)
	}

	specs := l.Specs
	if specs == "" {
		specs = defaultSpecs
	}

	return order.NewLineItem(l.ProductID, title, price, l.Count, imgURL, specs)
}
