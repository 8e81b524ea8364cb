package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the server's prometheus collectors, kept on their own registry.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	assessments       *prometheus.CounterVec
	heatLoss          prometheus.Histogram
}

// NewMetrics registers the request and assessment collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heatcalc_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "heatcalc_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heatcalc_assessments_total",
			Help: "Completed assessments by property type.",
		}, []string{"property_type"}),
		heatLoss: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "heatcalc_heat_loss_kilowatts",
			Help:    "Design heat loss of assessed buildings.",
			Buckets: []float64{2, 4, 6, 8, 10, 12, 15, 20, 30},
		}),
	}
	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.assessments,
		m.heatLoss,
		collectors.NewGoCollector(),
	)
	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Middleware records request counts and durations by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Assessment records a completed assessment.
func (m *Metrics) Assessment(propertyType string, heatLossKW float64) {
	if m == nil {
		return
	}
	m.assessments.WithLabelValues(propertyType).Inc()
	m.heatLoss.Observe(heatLossKW)
}
