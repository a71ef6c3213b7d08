// Package metrics holds the Prometheus collectors for scans, file
// operations and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scan metrics
var (
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ddas_scans_total",
			Help: "Number of directory scans by result",
		},
		[]string{"result"},
	)

	FilesScanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ddas_files_scanned_total",
			Help: "Files fingerprinted across all scans",
		},
	)

	DuplicateFiles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ddas_duplicate_files_total",
			Help: "Duplicate files found across all scans",
		},
	)

	SpaceWasted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ddas_space_wasted_bytes_total",
			Help: "Bytes held by duplicate copies across all scans",
		},
	)

	ReadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ddas_read_errors_total",
			Help: "Files skipped because they could not be read",
		},
	)

	ScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ddas_scan_duration_seconds",
			Help:    "Duration of directory scans",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		},
	)
)

// FileOperations counts retrieve and remove calls by result
var FileOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ddas_file_operations_total",
		Help: "File retrieve and remove operations",
	},
	[]string{"operation", "result"},
)

// HTTP metrics
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ddas_http_requests_total",
			Help: "HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ddas_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Middleware records request count and duration per route pattern
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := routePattern(r)
		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// routePattern keeps label cardinality bounded by using the matched chi
// pattern instead of the raw URL
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
