// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/leadpulse/internal/app/store/dashapi"
	"github.com/dalemusser/leadpulse/internal/app/system/boards"
	"github.com/dalemusser/leadpulse/internal/app/system/metrics"
	"github.com/dalemusser/leadpulse/internal/app/system/ratelimit"
	"github.com/dalemusser/leadpulse/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the backend client and the per-visitor board registry.
// The backend is pinged once; an unreachable backend is logged but does not
// stop startup, so the health endpoint can report it.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	client, err := dashapi.New(dashapi.Config{
		BaseURL:      appCfg.BackendBaseURL,
		Token:        appCfg.BackendToken,
		Timeout:      appCfg.BackendTimeout,
		MaxBodyBytes: appCfg.BackendMaxBodyBytes,
	}, logger.Named("dashapi"))
	if err != nil {
		return DBDeps{}, fmt.Errorf("backend client: %w", err)
	}

	if err := client.Ping(ctx); err != nil {
		logger.Warn("dashboard backend not reachable at startup",
			zap.String("base_url", client.BaseURL()),
			zap.Error(err))
	} else {
		logger.Info("dashboard backend reachable", zap.String("base_url", client.BaseURL()))
	}

	var (
		reg       *boards.Registry
		refreshes *ratelimit.Limiter
	)
	gauges := map[string]func() int{
		"visitor_sessions": func() int { return reg.Len() },
	}
	if appCfg.RefreshInterval > 0 {
		refreshes = ratelimit.New(appCfg.RefreshInterval, appCfg.RefreshBurst)
		gauges["refresh_limiter_keys"] = refreshes.Len
	}
	m := metrics.New(gauges)

	// Open-ended ranges and "today" in the worker schedule use the
	// configured zone, the same one responses are rendered in.
	loc := appCfg.Location
	if loc == nil {
		loc = time.UTC
	}
	reg = boards.NewRegistry(m.Instrument(client), logger.Named("boards"), boards.SessionOptions{
		Debounce: appCfg.RangeDebounce,
		Timeout:  appCfg.BackendTimeout,
		Now:      func() time.Time { return time.Now().In(loc) },
	})

	deps := DBDeps{
		Backend:   client,
		Boards:    reg,
		Sweeper:   workers.NewBoardSweeper(reg, logger.Named("sweeper"), appCfg.BoardSweepInterval, appCfg.BoardIdleTTL),
		Refreshes: refreshes,
		Metrics:   m,
	}
	if refreshes != nil {
		deps.Sweeper.Also("refresh_limiter", refreshes)
	}
	return deps, nil
}

// EnsureSchema has nothing to do: leadpulse owns no storage.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
