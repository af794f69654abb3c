// Package memory provides the default in-process order store.
//
// A Store holds the orders in insertion order. Writers go through a UnitOfWork
// obtained from a UnitOfWorkFactory: Begin admits one writer at a time, staged
// writes become visible to readers only on Commit. Readers take a read lock and
// receive clones, so no caller can mutate stored state.
package memory

import (
	"context"
	"slices"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Store is the authoritative in-memory order collection.
type Store struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
	ids    []string
}

func NewStore() *Store {
	return &Store{
		orders: make(map[string]*order.Order),
	}
}

var _ ports.OrderReader = (*Store)(nil)

// Get returns a copy of the stored order.
func (s *Store) Get(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o.Clone(), nil
}

// List returns copies of the orders passing the filter in insertion order.
func (s *Store) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*order.Order, 0, len(s.ids))
	for _, id := range s.ids {
		o := s.orders[id]
		if filter.Matches(o) {
			result = append(result, o.Clone())
		}
	}
	return result, nil
}

func (s *Store) CountByStatus(_ context.Context) (map[order.Status]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[order.Status]int, len(order.AllStatuses()))
	for _, st := range order.AllStatuses() {
		counts[st] = 0
	}
	for _, o := range s.orders {
		counts[o.Status()]++
	}
	return counts, nil
}

// Len returns the number of stored orders.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

func (s *Store) lookup(id string) (*order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

func (s *Store) snapshotIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// apply writes a committed change set under the write lock.
func (s *Store) apply(changes map[string]*order.Order, added []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range added {
		if _, exists := s.orders[id]; !exists {
			s.ids = append(s.ids, id)
		}
	}

	var deleted bool
	for id, o := range changes {
		if o == nil {
			delete(s.orders, id)
			deleted = true
			continue
		}
		s.orders[id] = o
	}

	if deleted {
		s.ids = slices.DeleteFunc(s.ids, func(id string) bool {
			_, ok := s.orders[id]
			return !ok
		})
	}
}
