// Package postgres provides the GORM-backed order store.
//
// Writers are admitted one at a time by the factory; each unit of work runs in
// its own database transaction so nothing it writes is visible before Commit.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"fmt"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/ports"

	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates unit of work instances sharing one writer slot.
type GormUnitOfWorkFactory struct {
	db      *gorm.DB
	writers *semaphore.Weighted
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:      db,
		writers: semaphore.NewWeighted(1),
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:      f.db,
		writers: f.writers,
	}
}

// GormUnitOfWork wraps one GORM transaction.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	writers *semaphore.Weighted
}

// Begin waits for the writer slot and opens a transaction.
// Multiple calls on the same instance are safe and do not nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	if err := uow.writers.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if err := uow.tx.Error; err != nil {
		uow.tx = nil
		uow.writers.Release(1)
		return err
	}

	return nil
}

// Commit returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.close()
	return err
}

// Rollback returns gorm.ErrInvalidTransaction if no transaction is active,
// which makes a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.close()
	return err
}

// OrderRepository runs on the active transaction, or directly on the
// connection when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db)
}

func (uow *GormUnitOfWork) close() {
	uow.tx = nil
	uow.writers.Release(1)
}

// NewOrderReader serves queries straight from the connection pool.
func NewOrderReader(db *gorm.DB) ports.OrderReader {
	return orderrepo.NewGormOrderRepository(db)
}

// Migrate creates or updates the order tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{})
}
