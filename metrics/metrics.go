// Package metrics exposes Prometheus counters for ledger operations and HTTP
// requests.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all collectors in a private registry, so building more than
// one (tests do) never panics with duplicate registrations.
type Metrics struct {
	Registry *prometheus.Registry

	operations      *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_ledger_operations_total",
				Help: "Ledger operations by operation and result.",
			},
			[]string{"operation", "result"},
		),
		persistFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_persist_failures_total",
				Help: "Failed document writes by document.",
			},
			[]string{"document"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bank_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_http_requests_total",
				Help: "HTTP requests by route and status code.",
			},
			[]string{"route", "code"},
		),
	}
}

// RecordOperation counts a ledger operation. A nil receiver is a no-op so
// services can run without metrics.
func (m *Metrics) RecordOperation(operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) IncrPersistFailure(document string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(document).Inc()
}

func (m *Metrics) RecordRequest(route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
