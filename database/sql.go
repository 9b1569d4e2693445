package database

import (
	"context"
	"database/sql"
	"reflect"

	"github.com/lib/pq"
)

// SqlDatabase implements Database for *sql.DB.
type SqlDatabase struct {
	db             *sql.DB
	postgresArrays bool
}

type SqlOption func(*SqlDatabase)

// WithPostgresArrays wraps slice arguments ([]string, []int64, ...) with
// pq.Array so drivers that only accept scalar driver.Value types can bind them
// as Postgres arrays. []byte is left alone.
func WithPostgresArrays() SqlOption {
	return func(s *SqlDatabase) { s.postgresArrays = true }
}

// NewSqlDatabase creates a new SqlDatabase.
func NewSqlDatabase(db *sql.DB, opts ...SqlOption) *SqlDatabase {
	s := &SqlDatabase{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB returns the underlying *sql.DB.
func (s *SqlDatabase) DB() *sql.DB { return s.db }

// QueryContext executes a query that returns rows.
func (s *SqlDatabase) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, s.bindArgs(args)...)
	if err != nil {
		return nil, err
	}
	return &SqlRows{rows: rows}, nil
}

// ExecContext executes a query without returning rows.
func (s *SqlDatabase) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := s.db.ExecContext(ctx, query, s.bindArgs(args)...)
	if err != nil {
		return nil, err
	}
	return res, nil // sql.Result implements Result
}

// PingContext verifies the connection to the database is alive.
func (s *SqlDatabase) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SqlDatabase) Close() error { return s.db.Close() }

func (s *SqlDatabase) bindArgs(args []any) []any {
	if !s.postgresArrays {
		return args
	}
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
		if isArray(a) {
			out[i] = pq.Array(a)
		}
	}
	return out
}

func isArray(a any) bool {
	if a == nil {
		return false
	}
	if _, ok := a.([]byte); ok {
		return false
	}
	return reflect.TypeOf(a).Kind() == reflect.Slice
}

// SqlRows implements Rows for *sql.Rows.
type SqlRows struct {
	rows *sql.Rows
}

func (s *SqlRows) Next() bool                 { return s.rows.Next() }
func (s *SqlRows) Scan(dest ...any) error     { return s.rows.Scan(dest...) }
func (s *SqlRows) Close() error               { return s.rows.Close() }
func (s *SqlRows) Columns() ([]string, error) { return s.rows.Columns() }
func (s *SqlRows) Err() error                 { return s.rows.Err() }

var _ Database = (*SqlDatabase)(nil)
