package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP метрики
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gpscheck_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gpscheck_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Метрики разбора журнала
	LinesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gpscheck_lines_total",
			Help: "Total number of GPS log lines processed",
		},
		[]string{"result"}, // parsed, dropped
	)

	// Метрики проверки трека
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gpscheck_runs_total",
			Help: "Total number of track checks",
		},
		[]string{"outcome"}, // ok, no_valid_data, error
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gpscheck_run_duration_seconds",
			Help:    "Duration of a full track check in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	FixesPerRun = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gpscheck_fixes_per_run",
			Help:    "Number of parsed fixes per track check",
			Buckets: []float64{1, 10, 100, 500, 1000, 5000, 10000, 50000},
		},
	)

	AnomaliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gpscheck_anomalies_total",
			Help: "Total number of triggered anomaly rules",
		},
		[]string{"rule"},
	)

	DuplicateGroupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gpscheck_duplicate_groups_total",
			Help: "Total number of duplicate coordinate groups found",
		},
	)

	// Общие метрики приложения
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gpscheck_app_info",
			Help: "Application information",
		},
		[]string{"version"},
	)
)

// SetAppInfo устанавливает информацию о версии приложения
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version).Set(1)
}
