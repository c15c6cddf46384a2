package boards_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/leadpulse/internal/app/system/boards"
	"github.com/dalemusser/leadpulse/internal/app/system/daterange"
	"github.com/dalemusser/leadpulse/internal/app/system/querystate"
	"github.com/dalemusser/leadpulse/internal/domain/models"
	"github.com/dalemusser/leadpulse/internal/testutil"
	"go.uber.org/zap"
)

type fixtureFetcher struct{}

func (fixtureFetcher) Manager(context.Context, *daterange.DateRange) (*models.ManagerPayload, error) {
	return testutil.ManagerFixture(), nil
}

func (fixtureFetcher) Worker(context.Context, *daterange.DateRange) (*models.WorkerPayload, error) {
	return testutil.WorkerFixture(), nil
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestRegistry_GetCreatesOncePerVisitor(t *testing.T) {
	r := boards.NewRegistry(fixtureFetcher{}, zap.NewNop(), boards.SessionOptions{})
	defer r.Close()

	a, err := r.Get("v1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	again, _ := r.Get("v1")
	other, _ := r.Get("v2")

	if a != again {
		t.Error("same visitor got a different session")
	}
	if a == other {
		t.Error("different visitors share a session")
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
}

func TestRegistry_SessionBoards(t *testing.T) {
	r := boards.NewRegistry(fixtureFetcher{}, zap.NewNop(), boards.SessionOptions{})
	defer r.Close()
	s, _ := r.Get("v1")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s.Manager.Propose(nil)
	mv, _ := s.Manager.Await(ctx)
	if mv.Status != querystate.StatusIdle {
		t.Errorf("manager with no range = %s, want idle", mv.Status)
	}

	s.Worker.Propose(nil)
	wv, _ := s.Worker.Await(ctx)
	if wv.Status != querystate.StatusSuccess || wv.Model == nil {
		t.Fatalf("worker view = %+v", wv)
	}
	if wv.Model.KPIs.TotalAssignedLeads != 12 {
		t.Errorf("TotalAssignedLeads = %d, want 12", wv.Model.KPIs.TotalAssignedLeads)
	}
}

func TestRegistry_Sweep(t *testing.T) {
	clk := &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	r := boards.NewRegistry(fixtureFetcher{}, zap.NewNop(), boards.SessionOptions{Now: clk.Now})
	defer r.Close()

	_, _ = r.Get("old")
	clk.Advance(20 * time.Minute)
	_, _ = r.Get("fresh")
	clk.Advance(5 * time.Minute)

	if n := r.Sweep(15 * time.Minute); n != 1 {
		t.Errorf("Sweep removed %d, want 1", n)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegistry_Close(t *testing.T) {
	r := boards.NewRegistry(fixtureFetcher{}, zap.NewNop(), boards.SessionOptions{})
	_, _ = r.Get("v1")
	r.Close()
	r.Close()

	if _, err := r.Get("v1"); !errors.Is(err, boards.ErrClosed) {
		t.Errorf("Get after Close = %v, want ErrClosed", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}
