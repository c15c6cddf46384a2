// internal/app/system/metrics/metrics.go
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/leadpulse/internal/app/store/dashapi"
	"github.com/dalemusser/leadpulse/internal/app/system/boards"
	"github.com/dalemusser/leadpulse/internal/app/system/daterange"
	"github.com/dalemusser/leadpulse/internal/domain/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for backend fetches.
const (
	OutcomeSuccess   = "success"
	OutcomeCanceled  = "canceled"
	OutcomeTransport = "transport"
	OutcomePayload   = "payload"
	OutcomeOther     = "other"
)

// Metrics owns a private registry so tests and multiple app instances
// never collide on the global one.
type Metrics struct {
	reg      *prometheus.Registry
	fetches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New registers the fetch metrics plus gauges for any counters given in
// gauges (name -> current value).
func New(gauges map[string]func() int) *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadpulse",
			Name:      "backend_fetches_total",
			Help:      "Dashboard backend fetches by board and outcome.",
		}, []string{"board", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadpulse",
			Name:      "backend_fetch_seconds",
			Help:      "Dashboard backend fetch latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"board"}),
	}
	m.reg.MustRegister(
		m.fetches,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for name, fn := range gauges {
		m.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "leadpulse",
			Name:      name,
			Help:      "Current " + name + ".",
		}, func() float64 { return float64(fn()) }))
	}
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Observe records one fetch.
func (m *Metrics) Observe(board string, started time.Time, err error) {
	m.fetches.WithLabelValues(board, Outcome(err)).Inc()
	m.duration.WithLabelValues(board).Observe(time.Since(started).Seconds())
}

// Outcome classifies a fetch error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case errors.Is(err, dashapi.ErrTransport):
		return OutcomeTransport
	case errors.Is(err, dashapi.ErrPayload):
		return OutcomePayload
	default:
		return OutcomeOther
	}
}

// Instrument wraps a fetcher so every call is counted and timed.
func (m *Metrics) Instrument(f boards.Fetcher) boards.Fetcher {
	return instrumented{next: f, m: m}
}

type instrumented struct {
	next boards.Fetcher
	m    *Metrics
}

func (i instrumented) Manager(ctx context.Context, rng *daterange.DateRange) (*models.ManagerPayload, error) {
	start := time.Now()
	p, err := i.next.Manager(ctx, rng)
	i.m.Observe("manager", start, err)
	return p, err
}

func (i instrumented) Worker(ctx context.Context, rng *daterange.DateRange) (*models.WorkerPayload, error) {
	start := time.Now()
	p, err := i.next.Worker(ctx, rng)
	i.m.Observe("worker", start, err)
	return p, err
}
