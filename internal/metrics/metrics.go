// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the application collectors. Each instance owns its registry,
// so tests can create as many as they need.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RateLimitDecisions  *prometheus.CounterVec
	PostsCreated        prometheus.Counter
	ModerationActions   *prometheus.CounterVec
	Notifications       *prometheus.CounterVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guestbook_http_requests_total",
				Help: "Total HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "guestbook_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		RateLimitDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guestbook_rate_limit_decisions_total",
				Help: "Rate limiter verdicts by limiter and result",
			},
			[]string{"limiter", "result"},
		),
		PostsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "guestbook_posts_created_total",
				Help: "Guestbook entries created",
			},
		),
		ModerationActions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guestbook_moderation_actions_total",
				Help: "Moderation status changes by target status",
			},
			[]string{"status"},
		),
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guestbook_notifications_total",
				Help: "New entry notifications by result (sent, failed, dropped, skipped)",
			},
			[]string{"result"},
		),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RateLimitDecisions,
		m.PostsCreated,
		m.ModerationActions,
		m.Notifications,
	)

	return m
}

// RegisterGauge adds a gauge computed at scrape time, e.g. tracked limiter entries
func (m *Metrics) RegisterGauge(name, help string, fn func() float64) {
	m.Registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, fn))
}
