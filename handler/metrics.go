package handler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/spetersoncode/dreamfuse/retry"
)

// Metrics holds the prometheus collectors for handler activity.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	attempts *prometheus.CounterVec
	retries  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics registers the handler collectors with reg under namespace.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "handler_requests_total",
				Help:      "Total number of handler invocations",
			},
			[]string{"handler", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "handler_duration_seconds",
				Help:      "Handler duration in seconds",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
			},
			[]string{"handler"},
		),
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retry_attempts_total",
				Help:      "Total number of attempts made by retried operations",
			},
			[]string{"handler", "op"},
		),
		retries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retry_backoffs_total",
				Help:      "Total number of backoff waits between attempts",
			},
			[]string{"handler", "op"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retry_exhausted_total",
				Help:      "Total number of retried operations that failed every attempt",
			},
			[]string{"handler", "op"},
		),
	}
}

// ObserveRequest records one handler invocation.
func (m *Metrics) ObserveRequest(handler string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.requests.WithLabelValues(handler, status).Inc()
	m.duration.WithLabelValues(handler).Observe(d.Seconds())
}

// RetryObserver returns a retry.Config OnEvent callback for one operation.
func (m *Metrics) RetryObserver(handler, op string) func(retry.Event) {
	return func(ev retry.Event) {
		switch ev.Type {
		case retry.EventAttemptStart:
			m.attempts.WithLabelValues(handler, op).Inc()
		case retry.EventRetrying:
			m.retries.WithLabelValues(handler, op).Inc()
		case retry.EventExhausted:
			m.failures.WithLabelValues(handler, op).Inc()
		}
	}
}
