package rangectl

import (
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/leadpulse/internal/app/system/daterange"
)

type recorder struct {
	mu    sync.Mutex
	calls []*daterange.DateRange
}

func (r *recorder) record(rng *daterange.DateRange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, rng)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recorder) last() *daterange.DateRange {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func cand(from, to time.Time) *daterange.Candidate {
	return &daterange.Candidate{From: &from, To: &to}
}

func newImmediate(rec *recorder) *Controller {
	return New(Options{
		Now:      func() time.Time { return fixedNow },
		OnChange: rec.record,
	})
}

func TestPropose_FiresOnChange(t *testing.T) {
	rec := &recorder{}
	c := newImmediate(rec)

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	got, changed := c.Propose(cand(from, to))
	if !changed {
		t.Fatal("expected change")
	}
	if !got.From.Equal(to) || !got.To.Equal(from) {
		t.Errorf("expected swapped range, got %v", got)
	}
	if rec.count() != 1 {
		t.Fatalf("OnChange calls = %d, want 1", rec.count())
	}
	if !daterange.Equal(rec.last(), got) {
		t.Errorf("OnChange got %v, want %v", rec.last(), got)
	}
	if !daterange.Equal(c.Current(), got) {
		t.Errorf("Current() = %v, want %v", c.Current(), got)
	}
}

func TestPropose_SameRangeDoesNotRefire(t *testing.T) {
	rec := &recorder{}
	c := newImmediate(rec)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	c.Propose(cand(from, to))
	// Reversed input normalizes to the same range.
	if _, changed := c.Propose(cand(to, from)); changed {
		t.Error("expected no change for an equivalent range")
	}
	if rec.count() != 1 {
		t.Fatalf("OnChange calls = %d, want 1", rec.count())
	}
}

func TestPropose_NilFiresOnceThenClears(t *testing.T) {
	rec := &recorder{}
	c := newImmediate(rec)

	if _, changed := c.Propose(nil); !changed {
		t.Fatal("first nil proposal should count as a change")
	}
	if _, changed := c.Propose(nil); changed {
		t.Error("second nil proposal should not change anything")
	}
	if rec.count() != 1 || rec.last() != nil {
		t.Fatalf("calls = %d, last = %v", rec.count(), rec.last())
	}

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Propose(cand(from, from))
	c.Propose(nil)
	if rec.count() != 3 || rec.last() != nil {
		t.Fatalf("clearing the range should fire OnChange(nil); calls = %d", rec.count())
	}
}

func TestRefresh(t *testing.T) {
	rec := &recorder{}
	c := newImmediate(rec)

	c.Refresh()
	if rec.count() != 0 {
		t.Fatal("Refresh before Propose should do nothing")
	}

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Propose(cand(from, from))
	c.Refresh()
	if rec.count() != 2 {
		t.Fatalf("OnChange calls = %d, want 2", rec.count())
	}
}

func TestDebounce_CoalescesProposals(t *testing.T) {
	rec := &recorder{}
	c := New(Options{
		Debounce: 30 * time.Millisecond,
		Now:      func() time.Time { return fixedNow },
		OnChange: rec.record,
	})
	defer c.Stop()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		c.Propose(cand(base, base.AddDate(0, 0, i)))
	}
	if !c.Pending() {
		t.Fatal("expected a pending change")
	}
	if rec.count() != 0 {
		t.Fatal("OnChange fired before debounce elapsed")
	}

	deadline := time.Now().Add(2 * time.Second)
	for rec.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if rec.count() != 1 {
		t.Fatalf("OnChange calls = %d, want 1", rec.count())
	}
	want := base.AddDate(0, 0, 5)
	if !rec.last().To.Equal(want) {
		t.Errorf("fired with To = %v, want %v", rec.last().To, want)
	}
	if c.Pending() {
		t.Error("expected nothing pending after fire")
	}
}

func TestStop_CancelsPending(t *testing.T) {
	rec := &recorder{}
	c := New(Options{
		Debounce: 20 * time.Millisecond,
		OnChange: rec.record,
	})

	c.Propose(&daterange.Candidate{})
	c.Stop()
	time.Sleep(60 * time.Millisecond)

	if rec.count() != 0 {
		t.Fatalf("OnChange fired after Stop")
	}
	if _, changed := c.Propose(nil); changed {
		t.Error("Propose after Stop should be ignored")
	}
}

func TestPropose_OpenEndedSameDayIsUnchanged(t *testing.T) {
	rec := &recorder{}
	clock := fixedNow
	c := New(Options{
		Now:      func() time.Time { return clock },
		OnChange: rec.record,
	})
	defer c.Stop()

	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	if _, changed := c.Propose(&daterange.Candidate{From: &from}); !changed {
		t.Fatal("first proposal should change the range")
	}

	clock = fixedNow.Add(3 * time.Hour)
	if _, changed := c.Propose(&daterange.Candidate{From: &from}); changed {
		t.Error("same open-ended range later the same day should not change")
	}

	clock = fixedNow.Add(24 * time.Hour)
	if _, changed := c.Propose(&daterange.Candidate{From: &from}); !changed {
		t.Error("open-ended range should move to the next day")
	}
	if rec.count() != 2 {
		t.Errorf("OnChange calls = %d, want 2", rec.count())
	}
}
