// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops the sweeper and closes every visitor board, canceling
// in-flight backend requests.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Sweeper != nil {
		deps.Sweeper.Stop()
	}
	if deps.Boards != nil {
		logger.Info("closing dashboard boards", zap.Int("sessions", deps.Boards.Len()))
		deps.Boards.Close()
	}
	return nil
}
