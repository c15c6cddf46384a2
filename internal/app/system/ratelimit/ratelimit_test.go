package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(interval time.Duration, burst int) (*Limiter, *clock) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := New(interval, burst)
	l.now = c.now
	return l, c
}

func TestAllow_BurstThenRefill(t *testing.T) {
	l, c := newTestLimiter(time.Second, 2)

	if !l.Allow("v1") || !l.Allow("v1") {
		t.Fatal("burst of 2 should be allowed")
	}
	if l.Allow("v1") {
		t.Error("third request inside the window should be limited")
	}
	if !l.Allow("v2") {
		t.Error("keys must not share buckets")
	}

	c.advance(time.Second)
	if !l.Allow("v1") {
		t.Error("token should refill after one interval")
	}
}

func TestRemainingAndReset(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 3)
	if got := l.Remaining("v1"); got != 3 {
		t.Errorf("Remaining(unknown) = %d, want 3", got)
	}
	l.Allow("v1")
	if got := l.Remaining("v1"); got != 2 {
		t.Errorf("Remaining = %d, want 2", got)
	}
	l.Reset("v1")
	if got := l.Remaining("v1"); got != 3 {
		t.Errorf("Remaining after Reset = %d, want 3", got)
	}
}

func TestSweep(t *testing.T) {
	l, c := newTestLimiter(time.Second, 1)
	l.Allow("old")
	c.advance(10 * time.Minute)
	l.Allow("fresh")

	if n := l.Sweep(5 * time.Minute); n != 1 {
		t.Errorf("Sweep = %d, want 1", n)
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
}

func TestMiddleware(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 1)
	key := func(r *http.Request) (string, bool) {
		k := r.Header.Get("X-Key")
		return k, k != ""
	}
	limited := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTooManyRequests) }
	h := l.Middleware(key, limited)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for _, k := range []string{"a", "a", ""} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if k != "" {
			req.Header.Set("X-Key", k)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	want := []int{http.StatusNoContent, http.StatusTooManyRequests, http.StatusNoContent}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d: code %d, want %d", i, codes[i], want[i])
		}
	}
}
