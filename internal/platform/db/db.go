package db

import (
	"context"
	"database/sql"
)

// Executor is satisfied by both *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type TxManager interface {
	// RunInTx executes fn within a database transaction. The context passed
	// to fn carries the transaction; repositories pick it up through
	// ExecutorFromContext. The transaction is committed when fn returns nil
	// and rolled back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
