// Package metrics exposes Prometheus collectors for the fulfillment engine on
// a private registry.
package metrics

import (
	"context"
	"net/http"
	"strconv"

	"fulfillment/internal/notification"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fulfillment"

type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// New builds the collectors. Go runtime and process collectors are included.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and envelope code.",
		}, []string{"method", "route", "code"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification events published, by type.",
		}, []string{"type"}),
	}

	registry.MustRegister(
		m.requests,
		m.notifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, code int) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}

// RegisterPendingTimers exposes the number of outstanding lifecycle timers.
func (m *Metrics) RegisterPendingTimers(pending func() int) error {
	return m.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pending_timers",
		Help:      "Delayed transitions scheduled but not yet run.",
	}, func() float64 {
		return float64(pending())
	}))
}

// Name and Notify make Metrics a notification observer.
func (m *Metrics) Name() string {
	return "metrics"
}

func (m *Metrics) Notify(_ context.Context, event notification.Event) error {
	m.notifications.WithLabelValues(event.Type).Inc()
	return nil
}
