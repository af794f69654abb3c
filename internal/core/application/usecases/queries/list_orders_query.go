package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders, optionally narrowed to one status.
//
// Example:
//
//	status := 1
//	query := NewListOrdersQuery(&status)
//	handler := NewListOrdersQueryHandler(reader, synthesizer, time.Now)
//
//	views, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery accepts a raw status code. A nil or out of range code
// lists every status.
func NewListOrdersQuery(status *int) ListOrdersQuery {
	q := ListOrdersQuery{guard: guard.NewConstructorGuard()}
	if status == nil {
		return q
	}

	if parsed, err := order.ParseStatus(*status); err == nil {
		q.status = &parsed
	}
	return q
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the filter, or nil when every status is listed.
func (q ListOrdersQuery) Status() *order.Status {
	if q.status == nil {
		return nil
	}
	s := *q.status
	return &s
}
