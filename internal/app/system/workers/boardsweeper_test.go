package workers

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type countingSweeper struct {
	mu    sync.Mutex
	calls int
	idle  time.Duration
}

func (s *countingSweeper) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.idle = idle
	return 1
}

func (s *countingSweeper) Len() int { return 0 }

func (s *countingSweeper) snapshot() (int, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls, s.idle
}

func TestBoardSweeper_SweepsOnTick(t *testing.T) {
	s := &countingSweeper{}
	extra := &countingSweeper{}
	w := NewBoardSweeper(s, zap.NewNop(), 5*time.Millisecond, time.Minute).Also("limiter", extra)
	w.Start()

	deadline := time.Now().Add(time.Second)
	for {
		if n, _ := s.snapshot(); n >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("sweeper never ran")
		}
		time.Sleep(time.Millisecond)
	}
	w.Stop()
	w.Stop()

	if n, _ := extra.snapshot(); n == 0 {
		t.Error("extra target was never swept")
	}

	n, idle := s.snapshot()
	if idle != time.Minute {
		t.Errorf("idle = %v, want 1m", idle)
	}
	time.Sleep(20 * time.Millisecond)
	if after, _ := s.snapshot(); after != n {
		t.Errorf("sweeps after Stop: %d -> %d", n, after)
	}
}
