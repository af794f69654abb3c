package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of every order mutation.
// Between Begin and Commit/Rollback the caller is the only writer of the store;
// nothing it stages is visible to readers before Commit.
type UnitOfWork interface {
	// Begin acquires the store for writing.
	Begin(ctx context.Context) error

	// Commit applies the staged writes and releases the store.
	Commit(ctx context.Context) error

	// Rollback discards the staged writes and releases the store.
	// Calling it after Commit is a no-op that returns an error.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to this unit of work.
	OrderRepository() OrderRepository
}
