package memory

import (
	"context"
	"fmt"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// orderRepository reads through the staged changes of its unit of work.
type orderRepository struct {
	uow *UnitOfWork
}

var _ ports.OrderRepository = (*orderRepository)(nil)

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := r.check(aggregate); err != nil {
		return err
	}

	id := aggregate.ID().String()
	if _, ok := r.current(id); ok {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%s already exists", id))
	}

	if _, stored := r.uow.store.lookup(id); !stored && !slices.Contains(r.uow.added, id) {
		r.uow.added = append(r.uow.added, id)
	}
	r.uow.changes[id] = aggregate.Clone()
	return nil
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := r.check(aggregate); err != nil {
		return err
	}

	id := aggregate.ID().String()
	if _, ok := r.current(id); !ok {
		return errs.NewObjectNotFoundError("order", id)
	}

	r.uow.changes[id] = aggregate.Clone()
	return nil
}

func (r *orderRepository) Get(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	if !r.uow.active {
		return nil, ErrUnitOfWorkIsNotActive
	}

	o, ok := r.current(id.String())
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o.Clone(), nil
}

func (r *orderRepository) Delete(_ context.Context, id kernel.OrderID) error {
	if !r.uow.active {
		return ErrUnitOfWorkIsNotActive
	}

	key := id.String()
	if _, ok := r.current(key); !ok {
		return errs.NewObjectNotFoundError("order", key)
	}

	r.uow.changes[key] = nil
	return nil
}

func (r *orderRepository) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	if !r.uow.active {
		return nil, ErrUnitOfWorkIsNotActive
	}

	ids := r.uow.store.snapshotIDs()
	for _, id := range r.uow.added {
		if _, stored := r.uow.store.lookup(id); !stored {
			ids = append(ids, id)
		}
	}

	result := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		o, ok := r.current(id)
		if ok && filter.Matches(o) {
			result = append(result, o.Clone())
		}
	}
	return result, nil
}

func (r *orderRepository) check(aggregate *order.Order) error {
	if !r.uow.active {
		return ErrUnitOfWorkIsNotActive
	}
	return aggregate.Validate()
}

// current resolves an id against the staged changes first, then the store.
func (r *orderRepository) current(id string) (*order.Order, bool) {
	if o, staged := r.uow.changes[id]; staged {
		return o, o != nil
	}
	return r.uow.store.lookup(id)
}
