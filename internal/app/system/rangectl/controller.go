// Package rangectl owns the active dashboard DateRange. It is the only
// writer of that range and the only thing allowed to trigger a refetch.
package rangectl

import (
	"sync"
	"time"

	"github.com/dalemusser/leadpulse/internal/app/system/daterange"
)

// Options configures a Controller.
type Options struct {
	// Debounce delays OnChange until proposals have been quiet this long.
	// Zero fires OnChange synchronously from Propose.
	Debounce time.Duration

	// Now supplies "now" for ranges without an upper bound. Defaults to time.Now.
	Now func() time.Time

	// OnChange receives every normalized range change. It runs with the
	// controller locked and must not call back into the controller.
	OnChange func(*daterange.DateRange)
}

// Controller normalizes proposed ranges and fires OnChange when the active
// range actually changes.
type Controller struct {
	mu       sync.Mutex
	opts     Options
	current  *daterange.DateRange
	proposed bool
	pending  bool
	timer    *time.Timer
	gen      uint64
	stopped  bool
}

// New creates a Controller.
func New(opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.OnChange == nil {
		opts.OnChange = func(*daterange.DateRange) {}
	}
	return &Controller{opts: opts}
}

// Propose normalizes c and makes it the active range. It reports the
// normalized range and whether it differed from the previous one. A nil
// candidate clears the range.
func (c *Controller) Propose(cand *daterange.Candidate) (*daterange.DateRange, bool) {
	next := daterange.Normalize(cand, c.opts.Now())

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return c.current, false
	}
	if c.proposed && daterange.Equal(c.current, next) {
		return c.current, false
	}

	c.current = next
	c.proposed = true
	c.schedule()
	return next, true
}

// Refresh re-fires OnChange with the current range, e.g. after an error.
// It does nothing before the first Propose.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || !c.proposed {
		return
	}
	c.schedule()
}

// Current returns the active range (nil when none is selected).
func (c *Controller) Current() *daterange.DateRange {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Proposed reports whether anything has been proposed yet.
func (c *Controller) Proposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.proposed
}

// Pending reports whether a debounced change has not fired yet.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Locked runs fn while holding the controller lock. Waiters use it to read
// Pending and downstream state as one consistent view.
func (c *Controller) Locked(fn func(pending bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.pending)
}

// Stop cancels any pending debounce. Later proposals are ignored.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.pending = false
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// schedule must be called with c.mu held.
func (c *Controller) schedule() {
	if c.opts.Debounce <= 0 {
		c.opts.OnChange(c.current)
		return
	}

	c.gen++
	gen := c.gen
	c.pending = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.opts.Debounce, func() { c.fire(gen) })
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A newer proposal re-armed the timer; let that one fire.
	if c.stopped || gen != c.gen {
		return
	}
	c.pending = false
	c.timer = nil
	c.opts.OnChange(c.current)
}
