// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for leadpulse.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: backend_base_url, session_name, etc.
//   - Environment variables: LEADPULSE_BACKEND_BASE_URL, LEADPULSE_SESSION_NAME, etc.
//   - Command-line flags: --backend_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "backend_base_url", Default: "http://localhost:5000/api", Desc: "Base URL of the dashboard aggregation API"},
	{Name: "backend_token", Default: "", Desc: "Bearer token for the aggregation API (blank sends none)"},
	{Name: "backend_timeout", Default: "15s", Desc: "Per-request timeout for backend calls (e.g., 15s)"},
	{Name: "backend_max_body_bytes", Default: 4 << 20, Desc: "Maximum accepted backend response size in bytes"},

	{Name: "range_debounce", Default: "0s", Desc: "Quiet period before a range change triggers a fetch (0 fetches immediately)"},
	{Name: "await_timeout", Default: "10s", Desc: "How long a dashboard request waits before answering 'loading'"},
	{Name: "board_idle_ttl", Default: "30m", Desc: "Close a visitor's boards after this much inactivity"},
	{Name: "board_sweep_interval", Default: "1m", Desc: "How often idle boards are swept"},

	{Name: "refresh_interval", Default: "2s", Desc: "One refresh token per visitor refills this often (0 disables throttling)"},
	{Name: "refresh_burst", Default: 5, Desc: "Refreshes a visitor may make back to back"},

	{Name: "timezone", Default: "UTC", Desc: "IANA time zone for day boundaries (e.g., America/Chicago)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Visitor cookie signing key (must be strong in production)"},
	{Name: "session_name", Default: "leadpulse-visitor", Desc: "Visitor cookie name"},
	{Name: "session_domain", Default: "", Desc: "Visitor cookie domain (blank means current host)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// environment variables (WAFFLE_* for core, LEADPULSE_* for app) and
// command-line flags with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "LEADPULSE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		BackendBaseURL:      appValues.String("backend_base_url"),
		BackendToken:        appValues.String("backend_token"),
		BackendTimeout:      appValues.Duration("backend_timeout", 15*time.Second),
		BackendMaxBodyBytes: int64(appValues.Int("backend_max_body_bytes")),

		RangeDebounce:      appValues.Duration("range_debounce", 0),
		AwaitTimeout:       appValues.Duration("await_timeout", 10*time.Second),
		BoardIdleTTL:       appValues.Duration("board_idle_ttl", 30*time.Minute),
		BoardSweepInterval: appValues.Duration("board_sweep_interval", time.Minute),

		RefreshInterval: appValues.Duration("refresh_interval", 2*time.Second),
		RefreshBurst:    appValues.Int("refresh_burst"),

		Timezone: appValues.String("timezone"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
	}

	if loc, err := time.LoadLocation(appCfg.Timezone); err == nil {
		appCfg.Location = loc
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	u, err := url.Parse(appCfg.BackendBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		logger.Error("invalid backend base URL", zap.String("backend_base_url", appCfg.BackendBaseURL))
		return fmt.Errorf("invalid backend_base_url %q: must be an absolute http(s) URL", appCfg.BackendBaseURL)
	}

	if appCfg.Location == nil {
		return fmt.Errorf("invalid timezone %q", appCfg.Timezone)
	}

	if appCfg.RangeDebounce < 0 {
		return fmt.Errorf("range_debounce must not be negative")
	}
	if appCfg.BoardSweepInterval <= 0 {
		return fmt.Errorf("board_sweep_interval must be positive")
	}

	if appCfg.RefreshInterval < 0 {
		return fmt.Errorf("refresh_interval must not be negative")
	}
	if appCfg.RefreshInterval > 0 && appCfg.RefreshBurst < 1 {
		return fmt.Errorf("refresh_burst must be at least 1 when refresh_interval is set")
	}

	if coreCfg != nil && coreCfg.Env == "prod" && len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters in production")
	}

	return nil
}
