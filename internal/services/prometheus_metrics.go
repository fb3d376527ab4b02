package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	expenseMutationsTotal     *prometheus.CounterVec
	expenseQueryDuration      prometheus.Histogram
	exportRequestsTotal       prometheus.Counter
	exportDuration            prometheus.Histogram
	categoryCreatedTotal      prometheus.Counter
	categoryDeletedTotal      prometheus.Counter
	dashboardRequestsTotal    prometheus.Counter
	dashboardDuration         prometheus.Histogram
	authenticationEventsTotal *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		expenseMutationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expense_mutations_total",
				Help: "Total number of expense mutations by action",
			},
			[]string{"action"},
		),
		expenseQueryDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "expense_query_duration_milliseconds",
				Help:    "Filtered expense query duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		exportRequestsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "expense_export_requests_total",
				Help: "Total number of CSV export requests",
			},
		),
		exportDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "expense_export_duration_milliseconds",
				Help:    "CSV export rendering duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		categoryCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "category_created_total",
				Help: "Total number of categories created",
			},
		),
		categoryDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "category_deleted_total",
				Help: "Total number of categories deleted",
			},
		),
		dashboardRequestsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dashboard_requests_total",
				Help: "Total number of dashboard requests",
			},
		),
		dashboardDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dashboard_duration_milliseconds",
				Help:    "Dashboard assembly duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		authenticationEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "expense_mutation":
		if action := tags["action"]; action != "" {
			m.expenseMutationsTotal.WithLabelValues(action).Inc()
		}
	case "expense_export":
		m.exportRequestsTotal.Inc()
	case "category_created":
		m.categoryCreatedTotal.Inc()
	case "category_deleted":
		m.categoryDeletedTotal.Inc()
	case "dashboard_request":
		m.dashboardRequestsTotal.Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "expense_query":
		m.expenseQueryDuration.Observe(float64(duration.Milliseconds()))
	case "expense_export":
		m.exportDuration.Observe(float64(duration.Milliseconds()))
	case "dashboard":
		m.dashboardDuration.Observe(float64(duration.Milliseconds()))
	}
}
