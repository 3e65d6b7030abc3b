// Package metrics provides Prometheus metrics for the firing pricing
// service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Business metrics
	reallocations  prometheus.Counter
	membersTotal   prometheus.Gauge
	firingsTotal   prometheus.Counter
	reportsCounter prometheus.Counter
}

// New registers the service collectors with the given registerer.
// Pass prometheus.DefaultRegisterer in production; tests can pass a fresh
// registry to keep collectors isolated.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firing_pricing",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path, and status.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "firing_pricing",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		reallocations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "firing_pricing",
			Name:      "reallocations_total",
			Help:      "Price reallocation passes across all sheets.",
		}),
		membersTotal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "firing_pricing",
			Name:      "roster_members",
			Help:      "Members currently on the roster.",
		}),
		firingsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "firing_pricing",
			Name:      "firings_archived_total",
			Help:      "Firings archived to storage.",
		}),
		reportsCounter: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "firing_pricing",
			Name:      "reports_rendered_total",
			Help:      "Text price reports rendered.",
		}),
	}
}

// ObserveRequest records one handled HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ReallocationDone counts one allocation pass.
func (m *Metrics) ReallocationDone() { m.reallocations.Inc() }

// SetRosterSize tracks the roster gauge.
func (m *Metrics) SetRosterSize(n int) { m.membersTotal.Set(float64(n)) }

// FiringArchived counts one archived firing.
func (m *Metrics) FiringArchived() { m.firingsTotal.Inc() }

// ReportRendered counts one rendered report.
func (m *Metrics) ReportRendered() { m.reportsCounter.Inc() }
