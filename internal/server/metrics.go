package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for ask metrics.
const (
	outcomeOK    = "ok"
	outcomeError = "error"
	outcomeEmpty = "empty_query"
)

type serverMetrics struct {
	askRequestsTotal   *prometheus.CounterVec
	askDurationSeconds *prometheus.HistogramVec
	askInFlight        prometheus.Gauge

	httpRequestsTotal   *prometheus.CounterVec
	httpDurationSeconds *prometheus.HistogramVec
}

// newServerMetrics registers the server's metrics on reg. Accepting the
// registerer keeps tests hermetic; production passes the default registry.
func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	factory := promauto.With(reg)

	return &serverMetrics{
		askRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tutor",
			Name:      "ask_requests_total",
			Help:      "Total number of /ask requests by outcome.",
		}, []string{"outcome"}),
		askDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tutor",
			Name:      "ask_duration_seconds",
			Help:      "End-to-end agent latency for /ask requests.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 120},
		}, []string{"outcome"}),
		askInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tutor",
			Name:      "ask_in_flight",
			Help:      "Number of /ask requests currently being answered.",
		}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tutor",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path and status code.",
		}, []string{"method", "path", "code"}),
		httpDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tutor",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// routeLabel maps a request path to the logical endpoint name used as a
// metric label. Label values must be a fixed set: labelling with the raw
// URL path would let scanners mint a new series per probed path.
func routeLabel(path string) string {
	switch path {
	case "/", "/ask", "/api/ready", "/metrics":
		return path
	default:
		return "other"
	}
}

// httpMetrics records request counts and latency for every route.
func (s *Server) httpMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		path := routeLabel(r.URL.Path)
		s.metrics.httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.status)).Inc()
		s.metrics.httpDurationSeconds.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
