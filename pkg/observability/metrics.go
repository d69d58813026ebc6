package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Validation metrics
	ValidationsTotal   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
	ViolationsTotal    *prometheus.CounterVec

	// Result cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Device registry metrics
	ProfilesLoaded prometheus.Gauge

	// History metrics
	HistoryWritesTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulsecheck_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pulsecheck_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ValidationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulsecheck_validations_total",
				Help: "Total number of task validations by device profile and outcome",
			},
			[]string{"device", "outcome"},
		),
		ValidationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pulsecheck_validation_duration_seconds",
				Help:    "Task validation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-5, 10, 8),
			},
			[]string{"device"},
		),
		ViolationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulsecheck_violations_total",
				Help: "Total number of reported violations by category",
			},
			[]string{"category"},
		),
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulsecheck_cache_hits_total",
				Help: "Total number of result cache hits",
			},
			[]string{"backend"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulsecheck_cache_misses_total",
				Help: "Total number of result cache misses",
			},
			[]string{"backend"},
		),
		ProfilesLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pulsecheck_device_profiles_loaded",
				Help: "Number of device capability profiles currently served",
			},
		),
		HistoryWritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulsecheck_history_writes_total",
				Help: "Total number of validation history writes by status",
			},
			[]string{"status"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ValidationsTotal,
		m.ValidationDuration,
		m.ViolationsTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.ProfilesLoaded,
		m.HistoryWritesTotal,
	)

	return m
}

// Handler returns the Prometheus scrape handler for the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordValidation records the outcome, per-category violation counts and
// duration of one validation call.
func (m *Metrics) RecordValidation(device string, valid bool, counts map[string]int, duration time.Duration) {
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	m.ValidationsTotal.WithLabelValues(device, outcome).Inc()
	m.ValidationDuration.WithLabelValues(device).Observe(duration.Seconds())
	for category, n := range counts {
		if n > 0 {
			m.ViolationsTotal.WithLabelValues(category).Add(float64(n))
		}
	}
}

// InstrumentHandler wraps an HTTP handler with request counting and timing.
// The path label uses the route template, not the raw URL, to keep
// cardinality bounded.
func (m *Metrics) InstrumentHandler(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration.Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
