// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/leadpulse/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after the backend is connected and
// before the HTTP handler is built: timeouts are fixed and the idle board
// sweeper starts.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Upstream: appCfg.BackendTimeout,
		Await:    appCfg.AwaitTimeout,
	})
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n))
	}
	cur := timeouts.Current()
	logger.Info("timeouts configured",
		zap.Duration("ping", cur.Ping),
		zap.Duration("upstream", cur.Upstream),
		zap.Duration("await", cur.Await))

	if deps.Sweeper != nil {
		deps.Sweeper.Start()
	}
	return nil
}
