package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Analytics computation metrics
	AnalyticsRunsTotal    *prometheus.CounterVec
	AnalyticsRunDuration  *prometheus.HistogramVec
	AnalyticsInProgress   prometheus.Gauge
	ReservationsProcessed *prometheus.CounterVec

	// Provider API metrics
	ProviderCalls    *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec
	ProviderFailures *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		AnalyticsRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_runs_total",
				Help: "Total number of analytics computation runs",
			},
			[]string{"period", "status"},
		),

		AnalyticsRunDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analytics_run_duration_seconds",
				Help:    "Analytics computation duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"period"},
		),

		AnalyticsInProgress: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "analytics_runs_in_progress",
				Help: "Number of analytics computations currently in progress",
			},
		),

		ReservationsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservations_processed_total",
				Help: "Total number of reservations folded into analytics runs",
			},
			[]string{"window"},
		),

		ProviderCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_calls_total",
				Help: "Total number of data provider calls",
			},
			[]string{"provider", "status"},
		),

		ProviderDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "provider_call_duration_seconds",
				Help:    "Data provider call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),

		ProviderFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_failures_total",
				Help: "Total number of data provider failures",
			},
			[]string{"provider", "error_type"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Analytics run metrics
func (m *Metrics) RecordAnalyticsRun(period, status string, duration time.Duration) {
	m.AnalyticsRunsTotal.WithLabelValues(period, status).Inc()
	m.AnalyticsRunDuration.WithLabelValues(period).Observe(duration.Seconds())
}

// Reservation processing metrics
func (m *Metrics) RecordReservationsProcessed(window string, count int) {
	m.ReservationsProcessed.WithLabelValues(window).Add(float64(count))
}

// Provider call metrics
func (m *Metrics) RecordProviderCall(provider, status string, duration time.Duration) {
	m.ProviderCalls.WithLabelValues(provider, status).Inc()
	m.ProviderDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// Provider failure metrics
func (m *Metrics) RecordProviderFailure(provider, errorType string) {
	m.ProviderFailures.WithLabelValues(provider, errorType).Inc()
}

// Analytics in progress counter
func (m *Metrics) IncAnalyticsInProgress() {
	m.AnalyticsInProgress.Inc()
}

// Analytics in progress counter
func (m *Metrics) DecAnalyticsInProgress() {
	m.AnalyticsInProgress.Dec()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
