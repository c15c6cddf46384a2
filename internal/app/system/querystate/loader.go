// Package querystate tracks one logical dashboard request at a time through
// idle → loading → success | error.
//
// Every Submit is tagged with a sequence number. Only the response for the
// latest sequence may update state; older responses are discarded when they
// arrive, so a slow early request can never overwrite a fast later one.
package querystate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dalemusser/leadpulse/internal/app/system/daterange"
	"go.uber.org/zap"
)

// Status is the lifecycle state of the current request.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Outcome reports what happened to a submitted request.
type Outcome int

const (
	// Applied: the response (or its error) became the current state.
	Applied Outcome = iota + 1
	// Discarded: a newer request was issued before this one finished.
	Discarded
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Discarded:
		return "discarded"
	default:
		return "pending"
	}
}

// ErrClosed is returned by Wait when the loader is closed before the
// request settles.
var ErrClosed = errors.New("querystate: loader closed")

// FetchFunc performs one request for a range. rng may be nil.
type FetchFunc[P any] func(ctx context.Context, rng *daterange.DateRange) (*P, error)

// State is an immutable snapshot of the loader.
type State[P any] struct {
	Status  Status
	Seq     uint64
	Range   *daterange.DateRange
	Payload *P    // only set in StatusSuccess
	Err     error // only set in StatusError
}

// Options configures a Loader.
type Options struct {
	// Timeout bounds each fetch. Zero means no timeout beyond the base context.
	Timeout time.Duration
	// Name labels log lines (e.g. "manager", "worker").
	Name string
}

// Loader runs fetches and keeps the state of the latest one.
type Loader[P any] struct {
	fetch FetchFunc[P]
	log   *zap.Logger
	opts  Options

	base       context.Context
	cancelBase context.CancelFunc

	mu      sync.Mutex
	seq     uint64
	state   State[P]
	cancel  context.CancelFunc
	changed chan struct{}
	closed  bool
}

// New creates an idle Loader.
func New[P any](fetch FetchFunc[P], logger *zap.Logger, opts Options) *Loader[P] {
	if logger == nil {
		logger = zap.NewNop()
	}
	base, cancel := context.WithCancel(context.Background())
	return &Loader[P]{
		fetch:      fetch,
		log:        logger,
		opts:       opts,
		base:       base,
		cancelBase: cancel,
		state:      State[P]{Status: StatusIdle},
		changed:    make(chan struct{}),
	}
}

// Handle refers to one submitted request.
type Handle struct {
	Seq     uint64
	done    chan struct{}
	outcome Outcome
}

// Done is closed once the request has been applied or discarded.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the request settles or ctx ends.
func (h *Handle) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-h.done:
		if h.outcome == 0 {
			return Discarded, ErrClosed
		}
		return h.outcome, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Submit starts a fetch for rng and makes it the current request. Any
// request still in flight is superseded: its context is canceled and its
// response will be discarded.
func (l *Loader[P]) Submit(rng *daterange.DateRange) *Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	h := &Handle{done: make(chan struct{})}
	if l.closed {
		close(h.done)
		return h
	}

	l.seq++
	h.Seq = l.seq
	if l.cancel != nil {
		l.cancel()
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if l.opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(l.base, l.opts.Timeout)
	} else {
		ctx, cancel = context.WithCancel(l.base)
	}
	l.cancel = cancel

	l.setLocked(State[P]{Status: StatusLoading, Seq: h.Seq, Range: rng})

	l.log.Debug("dashboard fetch issued",
		zap.String("board", l.opts.Name),
		zap.Uint64("seq", h.Seq),
		zap.Stringer("range", rng))

	go l.run(ctx, cancel, h, rng)
	return h
}

func (l *Loader[P]) run(ctx context.Context, cancel context.CancelFunc, h *Handle, rng *daterange.DateRange) {
	defer cancel()
	payload, err := l.fetch(ctx, rng)

	l.mu.Lock()
	defer l.mu.Unlock()
	defer close(h.done)

	if h.Seq != l.seq || l.closed {
		h.outcome = Discarded
		l.log.Debug("stale dashboard response discarded",
			zap.String("board", l.opts.Name),
			zap.Uint64("seq", h.Seq),
			zap.Uint64("latest", l.seq))
		return
	}

	h.outcome = Applied
	l.cancel = nil
	if err != nil {
		l.log.Warn("dashboard fetch failed",
			zap.String("board", l.opts.Name),
			zap.Uint64("seq", h.Seq),
			zap.Stringer("range", rng),
			zap.Error(err))
		l.setLocked(State[P]{Status: StatusError, Seq: h.Seq, Range: rng, Err: err})
		return
	}
	if payload == nil {
		l.setLocked(State[P]{Status: StatusError, Seq: h.Seq, Range: rng, Err: errors.New("querystate: empty response")})
		return
	}
	l.setLocked(State[P]{Status: StatusSuccess, Seq: h.Seq, Range: rng, Payload: payload})
}

// Reset returns to idle and discards anything in flight.
func (l *Loader[P]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.seq++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.setLocked(State[P]{Status: StatusIdle, Seq: l.seq})
}

// Snapshot returns the current state.
func (l *Loader[P]) Snapshot() State[P] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Changed returns a channel that is closed on the next state change.
// Grab it before inspecting Snapshot to avoid missing a wake-up.
func (l *Loader[P]) Changed() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.changed
}

// Closed reports whether Close has been called.
func (l *Loader[P]) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Close cancels in-flight work. Pending handles settle as Discarded.
func (l *Loader[P]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.cancelBase()
	close(l.changed)
}

// setLocked must be called with l.mu held.
func (l *Loader[P]) setLocked(s State[P]) {
	l.state = s
	if l.closed {
		return
	}
	close(l.changed)
	l.changed = make(chan struct{})
}
