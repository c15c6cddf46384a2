// Package visitor gives every browser a stable, signed visitor id so its
// dashboard boards survive between requests.
package visitor

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	// DefaultCookieName is used when no session name is configured.
	DefaultCookieName = "leadpulse-visitor"

	idKey  = "visitor_id"
	maxAge = 30 * 24 * 60 * 60
)

type ctxKey string

const visitorKey ctxKey = "visitorID"

// Manager issues and reads visitor cookies.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// New builds a Manager. The secure flag controls the Secure attribute and
// the SameSite mode of the cookie.
func New(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultCookieName
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("visitor cookie store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Manager{store: store, name: name, log: logger}, nil
}

// Middleware makes sure the request carries a visitor id, minting one
// (and setting the cookie) when it is missing or its signature is bad.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Get returns a fresh session alongside a decode error.
		sess, err := m.store.Get(r, m.name)
		if err != nil {
			m.log.Debug("visitor cookie rejected", zap.Error(err))
		}

		id, _ := sess.Values[idKey].(string)
		if _, perr := uuid.Parse(id); perr != nil {
			id = uuid.NewString()
			sess.Values[idKey] = id
			if err := sess.Save(r, w); err != nil {
				m.log.Error("visitor cookie save failed", zap.Error(err))
			}
		}

		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}

// ID returns the visitor id placed in context by Middleware.
func ID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(visitorKey).(string)
	return id, ok && id != ""
}

// WithID stores id in ctx. Tests use it to bypass the cookie.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorKey, id)
}
