package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrCountOrdersQueryIsNotConstructed = errors.New(
	"CountOrdersQuery must be created via NewCountOrdersQuery constructor",
)

// CountOrdersQuery counts stored orders per status. Synthesized rows are not counted.
type CountOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewCountOrdersQuery() CountOrdersQuery {
	return CountOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q CountOrdersQuery) Validate() error {
	return q.guard.Validate(ErrCountOrdersQueryIsNotConstructed)
}
