package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// LineItem is one product row of an order, fixed at creation.
type LineItem struct {
	ID     int64
	Title  string
	Price  kernel.Money
	Count  int
	ImgURL string
	Specs  string
}

func NewLineItem(id int64, title string, price kernel.Money, count int, imgURL, specs string) (LineItem, error) {
	item := LineItem{
		ID:     id,
		Title:  title,
		Price:  price,
		Count:  count,
		ImgURL: imgURL,
		Specs:  specs,
	}
	if err := item.Validate(); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

func (li LineItem) Validate() error {
	var joined []error
	if li.ID <= 0 {
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause(
			"product id", fmt.Errorf("%d is not greater than 0", li.ID)))
	}
	if li.Count <= 0 {
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause(
			"count", fmt.Errorf("%d is not greater than 0", li.Count)))
	}
	if li.Price.Decimal().IsNegative() {
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause(
			"price", fmt.Errorf("%s is negative", li.Price)))
	}
	return errors.Join(joined...)
}

// Subtotal is price × count.
func (li LineItem) Subtotal() kernel.Money {
	return li.Price.Times(li.Count)
}
