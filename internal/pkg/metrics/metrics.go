package metrics

import (
	"time"

	"slot-booking/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "slot_booking"

// Booking operation outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeConflict  = "conflict"
	OutcomeForbidden = "forbidden"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

// Outcome classifies an operation result by error kind.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errs.Is(err, errs.ErrConflict), errs.Is(err, errs.ErrInvalidState):
		return OutcomeConflict
	case errs.Is(err, errs.ErrForbidden):
		return OutcomeForbidden
	case errs.Is(err, errs.ErrValidation):
		return OutcomeInvalid
	case errs.Is(err, errs.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

type Metrics struct {
	registry          *prometheus.Registry
	bookingOperations *prometheus.CounterVec
	bookingDuration   *prometheus.HistogramVec
	httpRequests      *prometheus.CounterVec
}

// New registers collectors on a private registry so several instances can
// live in one process (tests start more than one app).
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		bookingOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_operations_total",
				Help:      "Booking operations by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		bookingDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "booking_operation_duration_seconds",
				Help:      "Time spent in booking operations including retries.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status code.",
			},
			[]string{"route", "status"},
		),
	}
	m.registry.MustRegister(
		m.bookingOperations,
		m.bookingDuration,
		m.httpRequests,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveBooking(operation, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.bookingOperations.WithLabelValues(operation, outcome).Inc()
	m.bookingDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) IncHTTP(route, status string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, status).Inc()
}

// BookingOperations exposes the counter for assertions.
func (m *Metrics) BookingOperations() *prometheus.CounterVec {
	return m.bookingOperations
}
