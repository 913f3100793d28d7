package observability

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine collectors.
type Metrics struct {
	Flushes       prometheus.Counter
	FlushDuration prometheus.Histogram
	Requests      *prometheus.CounterVec
	Players       *prometheus.CounterVec
	Fallbacks     *prometheus.CounterVec
	Active        prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kinetic_flushes_total",
			Help: "Total number of non-empty flushes.",
		}),
		FlushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kinetic_flush_duration_seconds",
			Help:    "Time spent realizing queued requests.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kinetic_requests_total",
			Help: "Flushed requests by outcome.",
		}, []string{"outcome"}),
		Players: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kinetic_player_events_total",
			Help: "Player lifecycle events.",
		}, []string{"event", "trigger", "driver"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kinetic_resolve_fallbacks_total",
			Help: "Wildcard values that could not be measured.",
		}, []string{"token", "cached"}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kinetic_players_active",
			Help: "Players created and not yet destroyed.",
		}),
	}

	for _, c := range []prometheus.Collector{m.Flushes, m.FlushDuration, m.Requests, m.Players, m.Fallbacks, m.Active} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks binds the collectors to engine lifecycle events.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	player := func(event string) func(context.Context, *domain.PlayerEvent) {
		return func(_ context.Context, e *domain.PlayerEvent) {
			m.Players.WithLabelValues(event, e.Trigger, e.Driver).Inc()
		}
	}
	create, destroy := player("create"), player("destroy")

	return domain.LifecycleHooks{
		OnFlush: func(_ context.Context, e *domain.FlushEvent) {
			m.Flushes.Inc()
			m.FlushDuration.Observe(e.Elapsed.Seconds())
			m.Requests.WithLabelValues("animated").Add(float64(e.Players))
			m.Requests.WithLabelValues("skipped").Add(float64(e.Skipped))
		},
		OnPlayerCreate: func(ctx context.Context, e *domain.PlayerEvent) {
			create(ctx, e)
			m.Active.Inc()
		},
		OnPlayerDone: player("done"),
		OnPlayerDestroy: func(ctx context.Context, e *domain.PlayerEvent) {
			destroy(ctx, e)
			m.Active.Dec()
		},
		OnResolveFallback: func(_ context.Context, e *domain.FallbackEvent) {
			m.Fallbacks.WithLabelValues(e.Token, strconv.FormatBool(e.Cached)).Inc()
		},
	}
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
