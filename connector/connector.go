package connector

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/sqlfrag/database"
	"github.com/Konsultn-Engineering/sqlfrag/dialect"
)

// Connection is an open database together with the dialect its statements
// must be rendered in.
type Connection interface {
	Database() database.Database
	Dialect() dialect.Dialect
	Health(ctx context.Context) error
	Stats() ConnectionStats
	Close() error
}

// Provider opens connections for one driver. Providers register themselves
// with Register from an init function.
type Provider interface {
	Connect(ctx context.Context, config Config) (Connection, error)
	Dialect() dialect.Dialect
}

// NewRunner returns a Runner that flattens fragments for conn's dialect.
func NewRunner(conn Connection, opts ...database.RunnerOption) *database.Runner {
	return database.NewRunner(conn.Database(), conn.Dialect(), opts...)
}

// SQLConnection adapts a *sql.DB opened by a database/sql driver.
type SQLConnection struct {
	db      *sql.DB
	dialect dialect.Dialect
	wrapped *database.SqlDatabase
}

// NewSQLConnection applies pool settings to db and wraps it.
func NewSQLConnection(db *sql.DB, d dialect.Dialect, pool PoolConfig, opts ...database.SqlOption) *SQLConnection {
	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)
	db.SetConnMaxIdleTime(pool.MaxIdleTime)
	return &SQLConnection{
		db:      db,
		dialect: d,
		wrapped: database.NewSqlDatabase(db, opts...),
	}
}

func (c *SQLConnection) Database() database.Database { return c.wrapped }
func (c *SQLConnection) Dialect() dialect.Dialect    { return c.dialect }

func (c *SQLConnection) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *SQLConnection) Stats() ConnectionStats {
	s := c.db.Stats()
	return ConnectionStats{
		OpenConnections: s.OpenConnections,
		InUse:           s.InUse,
		Idle:            s.Idle,
	}
}

func (c *SQLConnection) Close() error { return c.db.Close() }

var _ Connection = (*SQLConnection)(nil)

// ConnectionStats is a snapshot of pool usage.
type ConnectionStats struct {
	OpenConnections int
	InUse           int
	Idle            int
}
