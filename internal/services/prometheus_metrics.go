package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	authEventsTotal      *prometheus.CounterVec
	authDuration         prometheus.Histogram
	accountsDeletedTotal prometheus.Counter
	categoryEventsTotal  *prometheus.CounterVec
	expenseEventsTotal   *prometheus.CounterVec
	expenseDuration      *prometheus.HistogramVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		authEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event", "outcome"},
		),
		authDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "auth_duration_milliseconds",
				Help:    "Authentication operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		accountsDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "accounts_deleted_total",
				Help: "Total number of user accounts deleted",
			},
		),
		categoryEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "category_events_total",
				Help: "Total number of category create/delete events",
			},
			[]string{"event", "reason"},
		),
		expenseEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expense_events_total",
				Help: "Total number of expense create/update/delete events",
			},
			[]string{"event", "type"},
		),
		expenseDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "expense_operation_duration_milliseconds",
				Help:    "Expense operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"operation"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "auth_register_success":
		m.authEventsTotal.WithLabelValues("register", "success").Inc()
	case "auth_register_conflict":
		m.authEventsTotal.WithLabelValues("register", "conflict").Inc()
	case "auth_login_success":
		m.authEventsTotal.WithLabelValues("login", "success").Inc()
	case "auth_login_failure":
		m.authEventsTotal.WithLabelValues("login", "failure").Inc()
	case "auth_account_deleted":
		m.accountsDeletedTotal.Inc()
	case "category_created":
		m.categoryEventsTotal.WithLabelValues("created", "").Inc()
	case "category_create_conflict":
		m.categoryEventsTotal.WithLabelValues("create_conflict", tags["reason"]).Inc()
	case "category_deleted":
		m.categoryEventsTotal.WithLabelValues("deleted", "").Inc()
	case "expense_created":
		m.expenseEventsTotal.WithLabelValues("created", tags["type"]).Inc()
	case "expense_updated":
		m.expenseEventsTotal.WithLabelValues("updated", "").Inc()
	case "expense_deleted":
		m.expenseEventsTotal.WithLabelValues("deleted", "").Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "auth_register", "auth_login":
		m.authDuration.Observe(float64(duration.Milliseconds()))
	case "expense_create", "expense_list":
		m.expenseDuration.WithLabelValues(name).Observe(float64(duration.Milliseconds()))
	}
}

// NoopMetrics discards all recordings. Used in tests, where promauto's
// global registry would reject duplicate registration across test packages.
type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorderInterface {
	return &NoopMetrics{}
}

func (m *NoopMetrics) IncrementCounter(name string, tags map[string]string) {}

func (m *NoopMetrics) RecordProcessingTime(name string, duration time.Duration) {}
