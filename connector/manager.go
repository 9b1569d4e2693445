package connector

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

var globalManager = &Manager{
	providers: make(map[string]Provider),
}

// Manager is a registry of providers keyed by driver name.
type Manager struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

func Register(name string, provider Provider) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.providers[name] = provider
}

// Drivers returns the registered driver names, sorted.
func Drivers() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	names := make([]string, 0, len(globalManager.providers))
	for name := range globalManager.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(name string) (Provider, bool) {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	p, ok := globalManager.providers[name]
	return p, ok
}

// Open validates cfg and connects through the provider registered for
// cfg.Driver, retrying according to cfg.Retry.
func Open(ctx context.Context, cfg Config) (Connection, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	provider, ok := lookup(cfg.Driver)
	if !ok {
		return nil, fmt.Errorf("provider %s not registered", cfg.Driver)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	connect := func(ctx context.Context) (Connection, error) {
		return provider.Connect(ctx, cfg)
	}
	if cfg.Retry == nil {
		return connect(ctx)
	}

	conn, err := retryConnect(ctx, *cfg.Retry, connect)
	if err != nil {
		return nil, fmt.Errorf("failed to connect after %d retries: %w", cfg.Retry.MaxRetries, err)
	}
	return conn, nil
}
