package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Request metrics
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	requestErrors   *prometheus.CounterVec

	// Store metrics
	storeItems     prometheus.Gauge
	recordsCreated prometheus.Counter
	recordsCleared prometheus.Counter

	exporter http.Handler
}

// NewMetrics creates a new metrics instance registered against reg.
// Tests pass a private registry to keep instances isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_request_errors_total",
				Help: "Total number of HTTP request errors",
			},
			[]string{"method", "path", "status"},
		),
		storeItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "store_items_total",
				Help: "Current number of records in the store",
			},
		),
		recordsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "store_records_created_total",
				Help: "Total number of records created",
			},
		),
		recordsCleared: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "store_records_cleared_total",
				Help: "Total number of records removed by clear operations",
			},
		),
	}

	if gatherer, ok := reg.(prometheus.Gatherer); ok {
		m.exporter = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	} else {
		m.exporter = promhttp.Handler()
	}

	return m
}

// Middleware records Prometheus metrics for each request
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(wrw.statusCode)

		m.requestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(duration)
		m.requestTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()

		if wrw.statusCode >= 400 {
			m.requestErrors.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		}
	})
}

// ExportHandler returns the Prometheus exposition handler
func (m *Metrics) ExportHandler() http.Handler {
	return m.exporter
}

// RecordCreated records a successful create and the new store size
func (m *Metrics) RecordCreated(total int) {
	m.recordsCreated.Inc()
	m.storeItems.Set(float64(total))
}

// RecordsCleared records a clear-all of count records
func (m *Metrics) RecordsCleared(count int) {
	m.recordsCleared.Add(float64(count))
	m.storeItems.Set(0)
}
