package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	OptimizationAttempts *prometheus.CounterVec
	OptimizationsRunning prometheus.Gauge
	GeocodeRequests      *prometheus.CounterVec
	GeocodeCache         *prometheus.CounterVec
	APIErrors            *prometheus.CounterVec
	RequestSeconds       *prometheus.HistogramVec
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	BackfillProcessed    *prometheus.CounterVec
	ActiveWorkers        prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		OptimizationAttempts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "route_optimization_attempts_total",
			Help: "Total number of route optimization attempts by outcome and the stage they ended in.",
		}, []string{"outcome", "stage"}),
		OptimizationsRunning: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "route_optimizations_in_flight",
			Help: "Current number of optimization attempts being processed.",
		}),
		GeocodeRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_requests_total",
			Help: "Total number of address lookups by result.",
		}, []string{"status"}),
		GeocodeCache: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_cache_lookups_total",
			Help: "Geocode cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		APIErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "external_api_errors_total",
			Help: "Total number of errors received from external mapping APIs.",
		}, []string{"service"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "external_api_request_duration_seconds",
			Help:    "Duration of requests to external mapping APIs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service"}),
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		BackfillProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "stop_backfill_processed_total",
			Help: "Total number of stops processed by the coordinate backfill worker.",
		}, []string{"status"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "stop_backfill_active_workers",
			Help: "Current number of active workers processing stops.",
		}),
	}
}
