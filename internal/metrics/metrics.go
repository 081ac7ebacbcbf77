// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the product search.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search results recorded by ObserveSearch.
const (
	ResultOK           = "ok"
	ResultInvalid      = "invalid"
	ResultInconsistent = "inconsistent"
	ResultUnavailable  = "unavailable"
)

// Metrics holds the service's collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        *prometheus.GaugeVec

	searchDuration prometheus.Histogram
	searchTotal    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		gatherer: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests processed",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		httpInflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "In-flight HTTP requests by method and route",
		}, []string{"method", "path"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_search_duration_seconds",
			Help:    "Product search latency across both round trips",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		searchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_search_total",
			Help: "Product searches by result",
		}, []string{"result"}),
	}

	collectors := []prometheus.Collector{
		m.httpRequestsTotal, m.httpRequestDuration, m.httpInflight,
		m.searchDuration, m.searchTotal,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveSearch records one search outcome and its latency.
func (m *Metrics) ObserveSearch(result string, d time.Duration) {
	m.searchTotal.WithLabelValues(result).Inc()
	m.searchDuration.Observe(d.Seconds())
}

// Middleware instruments requests with counters, latency and in-flight
// gauges. The path label is the matched chi route pattern, so ids in the
// URL do not blow up label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := strings.ToUpper(r.Method)
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		path := routePattern(r)
		m.httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	})
}

// Inflight tracks requests in progress. It must run inside the router so the
// route pattern is known before the handler runs.
func (m *Metrics) Inflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := strings.ToUpper(r.Method)
		path := routePattern(r)
		m.httpInflight.WithLabelValues(method, path).Inc()
		defer m.httpInflight.WithLabelValues(method, path).Dec()

		next.ServeHTTP(w, r)
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}
