package connector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlfrag/database"
	"github.com/Konsultn-Engineering/sqlfrag/dialect"
)

type fakeConnection struct {
	cfg Config
}

func (c *fakeConnection) Database() database.Database      { return nil }
func (c *fakeConnection) Dialect() dialect.Dialect         { return dialect.NewSQLiteDialect() }
func (c *fakeConnection) Health(ctx context.Context) error { return nil }
func (c *fakeConnection) Stats() ConnectionStats           { return ConnectionStats{} }
func (c *fakeConnection) Close() error                     { return nil }

type flakyProvider struct {
	failures int
	attempts int
}

func (p *flakyProvider) Connect(ctx context.Context, cfg Config) (Connection, error) {
	p.attempts++
	if p.attempts <= p.failures {
		return nil, errors.New("connection refused")
	}
	return &fakeConnection{cfg: cfg}, nil
}

func (p *flakyProvider) Dialect() dialect.Dialect { return dialect.NewSQLiteDialect() }

func TestOpenUsesRegisteredProvider(t *testing.T) {
	p := &flakyProvider{}
	Register("fake-ok", p)
	assert.Contains(t, Drivers(), "fake-ok")

	conn, err := Open(context.Background(), Config{Driver: "fake-ok", DSN: "fake://"})
	require.NoError(t, err)
	assert.Equal(t, 1, p.attempts)

	// Defaults are applied before the provider sees the config.
	fc := conn.(*fakeConnection)
	assert.Equal(t, 10, fc.cfg.Pool.MaxOpen)
}

func TestOpenRetries(t *testing.T) {
	p := &flakyProvider{failures: 2}
	Register("fake-flaky", p)

	_, err := Open(context.Background(), Config{
		Driver: "fake-flaky",
		DSN:    "fake://",
		Retry:  &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, p.attempts)
}

func TestOpenGivesUpAfterMaxRetries(t *testing.T) {
	p := &flakyProvider{failures: 10}
	Register("fake-down", p)

	_, err := Open(context.Background(), Config{
		Driver: "fake-down",
		DSN:    "fake://",
		Retry:  &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect after 2 retries: connection refused")
	assert.Equal(t, 3, p.attempts)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "nope", DSN: "x"})
	assert.EqualError(t, err, "provider nope not registered")

	_, err = Open(context.Background(), Config{})
	assert.EqualError(t, err, "invalid config: driver is required")
}

func TestRetryConnectHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	_, err := retryConnect(ctx, RetryConfig{MaxRetries: 5, BaseDelay: time.Hour}, func(context.Context) (Connection, error) {
		attempts++
		return nil, errors.New("down")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestNewRunnerUsesConnectionDialect(t *testing.T) {
	r := NewRunner(&fakeConnection{})
	assert.NotNil(t, r)
}
