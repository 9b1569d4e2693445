// Package sqlite registers the "sqlite" driver using the pure-Go
// modernc.org/sqlite. Config.Database is the file path or ":memory:".
package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/Konsultn-Engineering/sqlfrag/connector"
	"github.com/Konsultn-Engineering/sqlfrag/dialect"
)

const Driver = "sqlite"

const memory = ":memory:"

type Provider struct{}

func init() {
	connector.Register(Driver, &Provider{})
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = cfg.Database
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	pool := cfg.Pool
	// Every connection to :memory: is a separate database.
	if dsn == memory {
		pool.MaxOpen = 1
		pool.MaxIdle = 1
		pool.MaxLifetime = 0
		pool.MaxIdleTime = 0
	}
	return connector.NewSQLConnection(db, p.Dialect(), pool), nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewSQLiteDialect()
}
