package memory

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"golang.org/x/sync/semaphore"
)

// ErrUnitOfWorkIsNotActive is returned by operations on a unit of work that
// has not begun or has already been committed or rolled back.
var ErrUnitOfWorkIsNotActive = errors.New("unit of work is not active")

// UnitOfWorkFactory admits one writer at a time to the store.
type UnitOfWorkFactory struct {
	store   *Store
	writers *semaphore.Weighted
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		store:   store,
		writers: semaphore.NewWeighted(1),
	}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:   f.store,
		writers: f.writers,
	}
}

// UnitOfWork stages writes against the store and applies them on Commit.
type UnitOfWork struct {
	store   *Store
	writers *semaphore.Weighted
	active  bool

	// changes maps an order id to its staged state; a nil value stages a delete.
	changes map[string]*order.Order
	added   []string
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// Begin waits until no other unit of work is active. It gives up when ctx is done.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.active {
		return nil
	}

	if err := uow.writers.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}

	uow.active = true
	uow.changes = make(map[string]*order.Order)
	uow.added = nil
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrUnitOfWorkIsNotActive
	}

	uow.store.apply(uow.changes, uow.added)

	uow.release()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrUnitOfWorkIsNotActive
	}

	uow.release()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *UnitOfWork) release() {
	uow.active = false
	uow.changes = nil
	uow.added = nil
	uow.writers.Release(1)
}
