package database

import (
	"context"
)

// Database is the execution side a flattened statement is handed to. Both
// pgxpool and database/sql are adapted to it.
type Database interface {
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (Result, error)
	PingContext(ctx context.Context) error
	Close() error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Columns() ([]string, error)
	Err() error
}

type Result interface {
	RowsAffected() (int64, error)
}
