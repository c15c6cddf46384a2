// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	dashboardfeature "github.com/dalemusser/leadpulse/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/leadpulse/internal/app/features/errors"
	healthfeature "github.com/dalemusser/leadpulse/internal/app/features/health"
	"github.com/dalemusser/leadpulse/internal/app/system/visitor"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend connection and Startup
// have completed. Health is mounted outside the visitor cookie so health checks
// never create boards.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	visitors, err := visitor.New(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("visitor cookie init failed", zap.Error(err))
		return nil, err
	}

	errorsHandler := errorsfeature.NewHandler(logger)

	r := chi.NewRouter()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Backend, deps.Boards, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus scrape endpoint, also outside the visitor cookie
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	// Dashboards, one board pair per visitor cookie
	dashboardHandler := dashboardfeature.NewHandler(deps.Boards, appCfg.Location, logger)
	if deps.Refreshes != nil {
		dashboardHandler.WithRefreshLimit(deps.Refreshes)
	}
	r.Group(func(vr chi.Router) {
		vr.Use(visitors.Middleware)
		vr.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))
	})

	return r, nil
}
