// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig keeps
// the framework-level settings (ports, TLS, logging, CORS); everything
// specific to leadpulse lives here.
type AppConfig struct {
	// Dashboard aggregation backend
	BackendBaseURL      string        // e.g. http://localhost:5000/api
	BackendToken        string        // bearer token sent upstream (blank: none)
	BackendTimeout      time.Duration // per-request ceiling
	BackendMaxBodyBytes int64         // response size cap

	// Board behavior
	RangeDebounce      time.Duration // quiet period before a range change fetches
	AwaitTimeout       time.Duration // how long a request waits for a board
	BoardIdleTTL       time.Duration // visitor boards idle longer than this are closed
	BoardSweepInterval time.Duration // how often idle boards are swept

	// Per-visitor refresh throttling
	RefreshInterval time.Duration // token refill period; 0 disables
	RefreshBurst    int           // bucket size

	// Day boundaries for ?from=&to= and for response ranges
	Timezone string
	Location *time.Location // parsed from Timezone in LoadConfig; nil if invalid

	// Visitor cookie
	SessionKey    string // secret for signing the visitor cookie
	SessionName   string // cookie name
	SessionDomain string // cookie domain (blank means current host)
}
