package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Konsultn-Engineering/sqlfrag/dialect"
	"github.com/Konsultn-Engineering/sqlfrag/query"
)

// Runner flattens fragment trees for one connection's dialect and submits the
// result. A fragment that fails to flatten never reaches the database.
type Runner struct {
	db        Database
	flattener *query.Flattener
	logger    zerolog.Logger
}

type RunnerOption func(*runnerConfig)

type runnerConfig struct {
	logger      zerolog.Logger
	flattenOpts []query.Option
}

// WithLogger sets the logger statements are reported to. Statements are logged
// at debug level; failures at error level.
func WithLogger(l zerolog.Logger) RunnerOption {
	return func(c *runnerConfig) { c.logger = l }
}

// WithFlattenOptions passes extra options (cache, depth limit) to the runner's
// Flattener. The dialect always comes from NewRunner.
func WithFlattenOptions(opts ...query.Option) RunnerOption {
	return func(c *runnerConfig) { c.flattenOpts = append(c.flattenOpts, opts...) }
}

func NewRunner(db Database, d dialect.Dialect, opts ...RunnerOption) *Runner {
	cfg := runnerConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	flattenOpts := append(cfg.flattenOpts, query.WithDialect(d))

	return &Runner{
		db:        db,
		flattener: query.NewFlattener(flattenOpts...),
		logger:    cfg.logger.With().Str("dialect", d.Name()).Logger(),
	}
}

// Database returns the database statements are sent to.
func (r *Runner) Database() Database { return r.db }

// Flatten renders f for the runner's dialect without executing it.
func (r *Runner) Flatten(f *query.Fragment) (query.Statement, error) {
	stmt, err := r.flattener.Flatten(f)
	if err != nil {
		r.logger.Error().Err(err).Msg("flatten failed")
		return query.Statement{}, fmt.Errorf("flatten: %w", err)
	}
	r.logger.Debug().
		Str("sql", stmt.SQL).
		Int("params", len(stmt.Params)).
		Msg("statement")
	return stmt, nil
}

// Query flattens f and runs it as a row-returning query.
func (r *Runner) Query(ctx context.Context, f *query.Fragment) (Rows, error) {
	stmt, err := r.Flatten(f)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt.SQL, stmt.Params...)
	if err != nil {
		r.logger.Error().Err(err).Str("sql", stmt.SQL).Msg("query failed")
		return nil, fmt.Errorf("query: %w", err)
	}
	return rows, nil
}

// Exec flattens f and runs it without returning rows.
func (r *Runner) Exec(ctx context.Context, f *query.Fragment) (Result, error) {
	stmt, err := r.Flatten(f)
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, stmt.SQL, stmt.Params...)
	if err != nil {
		r.logger.Error().Err(err).Str("sql", stmt.SQL).Msg("exec failed")
		return nil, fmt.Errorf("exec: %w", err)
	}
	return res, nil
}
