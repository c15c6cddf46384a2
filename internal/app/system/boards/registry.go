// internal/app/system/boards/registry.go
package boards

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dalemusser/leadpulse/internal/app/system/daterange"
	"github.com/dalemusser/leadpulse/internal/app/viewmodel"
	"github.com/dalemusser/leadpulse/internal/domain/models"
	"go.uber.org/zap"
)

// ErrClosed is returned by Get once the registry is closed.
var ErrClosed = errors.New("boards: registry closed")

// Fetcher is the backend the boards read from.
type Fetcher interface {
	Manager(ctx context.Context, rng *daterange.DateRange) (*models.ManagerPayload, error)
	Worker(ctx context.Context, rng *daterange.DateRange) (*models.WorkerPayload, error)
}

type (
	ManagerBoard = Board[models.ManagerPayload, viewmodel.ManagerViewModel]
	WorkerBoard  = Board[models.WorkerPayload, viewmodel.WorkerViewModel]
)

// SessionOptions apply to every board a Registry creates.
type SessionOptions struct {
	Debounce time.Duration
	Timeout  time.Duration
	Now      func() time.Time
}

// Session is one visitor's pair of dashboards.
type Session struct {
	ID      string
	Manager *ManagerBoard
	Worker  *WorkerBoard

	mu       sync.Mutex
	lastSeen time.Time
}

// NewSession builds the manager and worker boards for one visitor. The
// manager board idles without a range; the worker board fetches unbounded.
func NewSession(id string, f Fetcher, logger *zap.Logger, opts SessionOptions) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := logger.With(zap.String("visitor", id))
	return &Session{
		ID: id,
		Manager: New(f.Manager, viewmodel.DeriveManager, log, Options{
			Name:     "manager",
			Debounce: opts.Debounce,
			Timeout:  opts.Timeout,
			Now:      opts.Now,
		}),
		Worker: New(f.Worker, viewmodel.DeriveWorker, log, Options{
			Name:           "worker",
			Debounce:       opts.Debounce,
			Timeout:        opts.Timeout,
			Now:            opts.Now,
			FetchUnbounded: true,
		}),
		lastSeen: opts.Now(),
	}
}

// LastSeen is the last time the session was handed out.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// Close stops both boards.
func (s *Session) Close() {
	s.Manager.Close()
	s.Worker.Close()
}

// Registry keeps sessions by visitor id.
type Registry struct {
	fetcher Fetcher
	log     *zap.Logger
	opts    SessionOptions

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// NewRegistry creates an empty Registry.
func NewRegistry(f Fetcher, logger *zap.Logger, opts SessionOptions) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{
		fetcher:  f,
		log:      logger,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Get returns the visitor's session, creating it on first use.
func (r *Registry) Get(id string) (*Session, error) {
	now := r.opts.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	s, ok := r.sessions[id]
	if !ok {
		s = NewSession(id, r.fetcher, r.log, r.opts)
		r.sessions[id] = s
		r.log.Debug("board session created", zap.String("visitor", id))
	}
	s.touch(now)
	return s, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes sessions not seen for longer than idle and returns how
// many were removed.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.opts.Now().Add(-idle)

	r.mu.Lock()
	var stale []*Session
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	return len(stale)
}

// Close stops every session. Later Get calls fail with ErrClosed.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	all := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}
