package connector

import (
	"context"
	"time"
)

// retryConnect calls connectFn once plus up to MaxRetries more times, sleeping
// between attempts with exponential backoff capped at MaxDelay.
func retryConnect(ctx context.Context, cfg RetryConfig, connectFn func(context.Context) (Connection, error)) (Connection, error) {
	delay := cfg.BaseDelay
	if delay <= 0 {
		delay = time.Second
	}
	backoff := cfg.Backoff
	if backoff <= 1 {
		backoff = 2
	}

	var err error
	for attempt := 0; ; attempt++ {
		var conn Connection
		conn, err = connectFn(ctx)
		if err == nil {
			return conn, nil
		}
		if attempt >= cfg.MaxRetries {
			return nil, err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * backoff)
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
}
