// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/leadpulse/internal/app/store/dashapi"
	"github.com/dalemusser/leadpulse/internal/app/system/boards"
	"github.com/dalemusser/leadpulse/internal/app/system/metrics"
	"github.com/dalemusser/leadpulse/internal/app/system/ratelimit"
	"github.com/dalemusser/leadpulse/internal/app/system/workers"
)

// DBDeps holds the back-end dependencies for the app. leadpulse has no
// database of its own; its "DB" is the dashboard aggregation API.
type DBDeps struct {
	Backend *dashapi.Client
	Boards  *boards.Registry
	Sweeper *workers.BoardSweeper

	// Refreshes is nil when refresh throttling is disabled.
	Refreshes *ratelimit.Limiter

	Metrics *metrics.Metrics
}
