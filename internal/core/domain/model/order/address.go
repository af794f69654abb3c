package order

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Address is the recipient of an order.
type Address struct {
	Name     string
	Phone    string
	Province string
	City     string
	District string
	Detail   string
}

// Validate requires the fields a courier cannot do without.
func (a Address) Validate() error {
	var joined []error
	if strings.TrimSpace(a.Name) == "" {
		joined = append(joined, errs.NewValueIsRequiredError("address.name"))
	}
	if strings.TrimSpace(a.Phone) == "" {
		joined = append(joined, errs.NewValueIsRequiredError("address.phone"))
	}
	if strings.TrimSpace(a.Detail) == "" {
		joined = append(joined, errs.NewValueIsRequiredError("address.detail"))
	}
	return errors.Join(joined...)
}
