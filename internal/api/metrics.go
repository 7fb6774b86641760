package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the API server and the
// in-memory dataset it serves.
type Metrics struct {
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	datasetRows    prometheus.Gauge
	datasetValid   prometheus.Gauge
	datasetInvalid prometheus.Gauge
	datasetLoads   prometheus.Counter
}

// NewMetrics registers all collectors on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hyrox",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hyrox",
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),

		datasetRows: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "hyrox",
			Subsystem: "dataset",
			Name:      "rows",
			Help:      "Rows in the currently served dataset.",
		}),
		datasetValid: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "hyrox",
			Subsystem: "dataset",
			Name:      "valid_rows",
			Help:      "Rows passing completion validation.",
		}),
		datasetInvalid: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "hyrox",
			Subsystem: "dataset",
			Name:      "invalid_rows",
			Help:      "DNF rows failing completion validation.",
		}),
		datasetLoads: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "hyrox",
			Subsystem: "dataset",
			Name:      "loads_total",
			Help:      "Dataset load and refresh operations.",
		}),
	}
}

// ObserveLoad records the gauges after a dataset (re)load.
func (m *Metrics) ObserveLoad(rows, valid, invalid int) {
	m.datasetRows.Set(float64(rows))
	m.datasetValid.Set(float64(valid))
	m.datasetInvalid.Set(float64(invalid))
	m.datasetLoads.Inc()
}

// Middleware instruments every request with a counter and latency histogram.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		m.httpRequests.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
