// Package boards wires a range controller, a sequence-guarded loader and a
// memoized derivation into one dashboard "board", and keeps one pair of
// boards (manager + worker) per visitor.
package boards

import (
	"context"
	"time"

	"github.com/dalemusser/leadpulse/internal/app/system/daterange"
	"github.com/dalemusser/leadpulse/internal/app/system/memo"
	"github.com/dalemusser/leadpulse/internal/app/system/querystate"
	"github.com/dalemusser/leadpulse/internal/app/system/rangectl"
	"go.uber.org/zap"
)

// Options configures a Board.
type Options struct {
	Name     string
	Debounce time.Duration
	Timeout  time.Duration
	Now      func() time.Time

	// FetchUnbounded decides what a nil range means. When false the board
	// goes idle without fetching; when true it fetches with no bounds.
	FetchUnbounded bool
}

// View is what a board currently shows.
type View[V any] struct {
	Status  querystate.Status
	Seq     uint64
	Range   *daterange.DateRange
	Model   *V    // set only when Status is success
	Err     error // set only when Status is error
	Pending bool  // a debounced range change has not fired yet
}

// Board is one dashboard: range in, derived view model out.
type Board[P any, V any] struct {
	name   string
	ctl    *rangectl.Controller
	loader *querystate.Loader[P]
	memo   *memo.Memo[P, V]
}

// New builds a Board. derive must be pure; its result is cached per payload.
func New[P any, V any](fetch querystate.FetchFunc[P], derive func(*P, time.Time) *V, logger *zap.Logger, opts Options) *Board[P, V] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	b := &Board[P, V]{name: opts.Name}
	b.loader = querystate.New(fetch, logger, querystate.Options{Timeout: opts.Timeout, Name: opts.Name})
	b.memo = memo.New(func(p *P) *V { return derive(p, opts.Now()) })
	b.ctl = rangectl.New(rangectl.Options{
		Debounce: opts.Debounce,
		Now:      opts.Now,
		OnChange: func(rng *daterange.DateRange) {
			if rng == nil && !opts.FetchUnbounded {
				b.loader.Reset()
				return
			}
			b.loader.Submit(rng)
		},
	})
	return b
}

// Name returns the board label.
func (b *Board[P, V]) Name() string { return b.name }

// Propose submits a user range. It reports the normalized range and
// whether it changed anything.
func (b *Board[P, V]) Propose(c *daterange.Candidate) (*daterange.DateRange, bool) {
	return b.ctl.Propose(c)
}

// Mounted reports whether a range has ever been proposed.
func (b *Board[P, V]) Mounted() bool { return b.ctl.Proposed() }

// Refresh refetches the current range.
func (b *Board[P, V]) Refresh() { b.ctl.Refresh() }

// View returns the current view without blocking.
func (b *Board[P, V]) View() View[V] {
	var v View[V]
	b.ctl.Locked(func(pending bool) {
		v = b.viewOf(b.loader.Snapshot(), pending)
	})
	return v
}

// Await blocks until no change is pending and nothing is loading, then
// returns the view. If ctx ends first it returns the view as it stands
// along with ctx.Err().
func (b *Board[P, V]) Await(ctx context.Context) (View[V], error) {
	for {
		var (
			changed <-chan struct{}
			state   querystate.State[P]
			pend    bool
		)
		b.ctl.Locked(func(pending bool) {
			changed = b.loader.Changed()
			state = b.loader.Snapshot()
			pend = pending
		})

		if b.loader.Closed() || (!pend && state.Status != querystate.StatusLoading) {
			return b.viewOf(state, pend), nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return b.View(), ctx.Err()
		}
	}
}

// Close stops the board. In-flight work is canceled.
func (b *Board[P, V]) Close() {
	b.ctl.Stop()
	b.loader.Close()
	b.memo.Clear()
}

func (b *Board[P, V]) viewOf(s querystate.State[P], pending bool) View[V] {
	v := View[V]{
		Status:  s.Status,
		Seq:     s.Seq,
		Range:   s.Range,
		Err:     s.Err,
		Pending: pending,
	}
	if s.Status == querystate.StatusSuccess {
		v.Model = b.memo.Get(s.Payload)
	}
	return v
}
