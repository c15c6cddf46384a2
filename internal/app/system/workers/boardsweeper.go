// internal/app/system/workers/boardsweeper.go
package workers

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper is the part of a board registry the worker needs.
type Sweeper interface {
	Sweep(idle time.Duration) int
	Len() int
}

type target struct {
	name string
	s    Sweeper
}

// BoardSweeper is a background worker that closes idle visitor boards
// and drops any other per-visitor state registered with Also.
type BoardSweeper struct {
	targets  []target
	log      *zap.Logger
	interval time.Duration
	idle     time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewBoardSweeper creates a new sweeper.
//
// Parameters:
//   - boards: the board registry
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 minute)
//   - idle: how long a visitor must be gone before its boards close (e.g., 30 minutes)
func NewBoardSweeper(boards Sweeper, logger *zap.Logger, interval, idle time.Duration) *BoardSweeper {
	return &BoardSweeper{
		targets:  []target{{name: "boards", s: boards}},
		log:      logger,
		interval: interval,
		idle:     idle,
		stopCh:   make(chan struct{}),
	}
}

// Also registers another per-visitor store to sweep with the same idle
// threshold. Call it before Start.
func (w *BoardSweeper) Also(name string, s Sweeper) *BoardSweeper {
	w.targets = append(w.targets, target{name: name, s: s})
	return w
}

// Start begins the background sweep loop.
func (w *BoardSweeper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("board sweeper started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle_threshold", w.idle))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *BoardSweeper) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.log.Info("board sweeper stopped")
}

func (w *BoardSweeper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *BoardSweeper) sweep() {
	for _, t := range w.targets {
		if n := t.s.Sweep(w.idle); n > 0 {
			w.log.Info("swept idle visitor state",
				zap.String("target", t.name),
				zap.Int("count", n),
				zap.Int("remaining", t.s.Len()))
		}
	}
}
