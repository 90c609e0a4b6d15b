package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new read-write transaction at READ COMMITTED.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Rolling back a finished transaction is not an error.
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// SnapshotManager opens read-only transactions that see a single consistent snapshot.
type SnapshotManager interface {
	// BeginSnapshot starts a REPEATABLE READ, READ ONLY transaction.
	BeginSnapshot(ctx context.Context) (pgx.Tx, error)

	// Rollback ends a transaction.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
