// Package metrics provides Prometheus metrics for the medalboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every metric exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Chart pipeline
	chartRenders  *prometheus.CounterVec
	chartWarnings *prometheus.CounterVec
	chartErrors   *prometheus.CounterVec
	buildLatency  *prometheus.HistogramVec
	imageLatency  *prometheus.HistogramVec

	// Datasets
	datasetRows  *prometheus.GaugeVec
	loadDuration prometheus.Histogram
	loadErrors   *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // avoids default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a Manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "medalboard",
		subsystem:        "charts",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.chartRenders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "renders_total",
		Help:      "Chart descriptors produced, by category and kind",
	}, []string{"category", "kind"})

	m.chartWarnings = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warnings_total",
		Help:      "Selections answered with a warning instead of a chart",
	}, []string{"category", "kind"})

	m.chartErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Selections that failed, by kind and error type",
	}, []string{"kind", "error_type"})

	m.buildLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_latency_milliseconds",
		Help:      "Time to aggregate and build a chart descriptor",
		Buckets:   m.histogramBuckets,
	}, []string{"kind"})

	m.imageLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "image_latency_milliseconds",
		Help:      "Time to encode a descriptor as an image or workbook",
		Buckets:   m.histogramBuckets,
	}, []string{"format"})

	m.datasetRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "datasets",
		Name:      "rows",
		Help:      "Rows loaded per dataset",
	}, []string{"dataset"})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "datasets",
		Name:      "load_duration_milliseconds",
		Help:      "Wall time of the startup dataset load",
		Buckets:   m.histogramBuckets,
	})

	m.loadErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "datasets",
		Name:      "load_errors_total",
		Help:      "Dataset files that failed to load",
	}, []string{"dataset"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "errors_by_endpoint_total",
		Help:      "HTTP errors by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "errors_by_type_total",
		Help:      "HTTP errors by type and severity",
	}, []string{"error_type", "severity"})
}

// Chart pipeline.

// RecordChartRender counts a produced descriptor.
func RecordChartRender(category, kind string) {
	globalManager.chartRenders.WithLabelValues(category, kind).Inc()
}

// RecordChartWarning counts a selection answered with a warning.
func RecordChartWarning(category, kind string) {
	globalManager.chartWarnings.WithLabelValues(category, kind).Inc()
}

// RecordChartError counts a failed selection.
func RecordChartError(kind, errorType string) {
	globalManager.chartErrors.WithLabelValues(kind, errorType).Inc()
}

// RecordBuildLatency observes descriptor build time.
func RecordBuildLatency(kind string, latencyMs float64) {
	globalManager.buildLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordImageLatency observes image/workbook encoding time.
func RecordImageLatency(format string, latencyMs float64) {
	globalManager.imageLatency.WithLabelValues(format).Observe(latencyMs)
}

// Datasets.

// UpdateDatasetRows sets the row count of a loaded dataset.
func UpdateDatasetRows(dataset string, rows int) {
	globalManager.datasetRows.WithLabelValues(dataset).Set(float64(rows))
}

// RecordLoadDuration observes the startup load time.
func RecordLoadDuration(latencyMs float64) {
	globalManager.loadDuration.Observe(latencyMs)
}

// RecordLoadError counts a dataset that failed to load.
func RecordLoadError(dataset string) {
	globalManager.loadErrors.WithLabelValues(dataset).Inc()
}

// HTTP.

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint counts an HTTP error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType counts an HTTP error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// GetRegistry returns the registry all service metrics live on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
