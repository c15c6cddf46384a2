// Package timeouts provides centralized timeout values for request handling.
//
// Timeouts can be configured at startup using Configure(). If not configured,
// defaults are used.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and backend reachability checks
//   - Upstream: one dashboard aggregation request to the backend
//   - Await: how long a handler waits for a board to settle before it
//     answers with the loading state
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing     = 2 * time.Second
	DefaultUpstream = 15 * time.Second
	DefaultAwait    = 10 * time.Second
)

// mu protects all timeout values from concurrent access.
var mu sync.RWMutex

var (
	ping     = DefaultPing
	upstream = DefaultUpstream
	await    = DefaultAwait
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Upstream returns the ceiling for one backend dashboard request.
func Upstream() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return upstream
}

// Await returns how long a handler waits on a board.
func Await() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return await
}

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping     time.Duration
	Upstream time.Duration
	Await    time.Duration
}

// Configure sets custom timeout values. Zero values in the config are ignored,
// keeping the current (or default) values. Call it during startup before
// handlers are registered.
//
// Example:
//
//	timeouts.Configure(timeouts.Config{
//	    Upstream: 30 * time.Second,
//	})
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Upstream > 0 {
		upstream = cfg.Upstream
	}
	if cfg.Await > 0 {
		await = cfg.Await
	}
}

// Reset restores all timeouts to their default values.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	upstream = DefaultUpstream
	await = DefaultAwait
}

// ConfigureFromEnv reads timeout overrides from the environment:
//   - TIMEOUT_PING: e.g., "2s", "500ms"
//   - TIMEOUT_UPSTREAM: e.g., "15s"
//   - TIMEOUT_AWAIT: e.g., "10s"
//
// Returns the number of timeouts successfully configured from environment.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()
	configured := 0

	for _, v := range []struct {
		env string
		dst *time.Duration
	}{
		{"TIMEOUT_PING", &ping},
		{"TIMEOUT_UPSTREAM", &upstream},
		{"TIMEOUT_AWAIT", &await},
	} {
		raw := os.Getenv(v.env)
		if raw == "" {
			continue
		}
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			*v.dst = d
			configured++
		}
	}
	return configured
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Upstream: upstream, Await: await}
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the context was canceled due to deadline exceeded.
//
// Example:
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Await(), h.Log, "await manager board")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
