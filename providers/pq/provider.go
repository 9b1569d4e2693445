// Package pq registers the "pq" driver: Postgres through database/sql and
// lib/pq. Array parameters are bound with pq.Array.
package pq

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/Konsultn-Engineering/sqlfrag/connector"
	"github.com/Konsultn-Engineering/sqlfrag/database"
	"github.com/Konsultn-Engineering/sqlfrag/dialect"
)

const Driver = "pq"

type Provider struct{}

func init() {
	connector.Register(Driver, &Provider{})
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	db, err := sql.Open("postgres", connector.PostgresDSN(cfg))
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return connector.NewSQLConnection(db, p.Dialect(), cfg.Pool, database.WithPostgresArrays()), nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewPostgresDialect()
}
