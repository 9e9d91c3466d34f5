package prometheus

import (
	"fmt"
	"time"
)

// AppMetrics holds all application metrics.
type AppMetrics struct {
	// HTTP Layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPRequestSize     HistogramVec
	HTTPResponseSize    HistogramVec
	HTTPActiveRequests  GaugeVec

	// Parsing Layer
	ParseTotal    CounterVec
	ParseDuration HistogramVec
	ParsedAtoms   HistogramVec

	// Comparison Layer
	ComparisonsTotal     CounterVec
	ComparisonDuration   HistogramVec
	SearchNodesExpanded  HistogramVec
	SearchExhaustedTotal CounterVec
	CommonSubgraphSize   HistogramVec
	SimilarityScore      HistogramVec
	BatchRequestsTotal   CounterVec
	BatchSize            HistogramVec
	BatchActiveWorkers   GaugeVec
	RenderRequestsTotal  CounterVec
	RenderDuration       HistogramVec

	// Infrastructure Layer
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec
	CacheEvictions   CounterVec
	RedisOpDuration  HistogramVec

	// System Health
	ServiceUptime     GaugeVec
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

// Default Buckets
var (
	DefaultHTTPDurationBuckets   = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultSearchDurationBuckets = []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2, 5, 10, 30}
	DefaultSizeBuckets           = []float64{100, 1000, 10000, 100000, 1000000, 10000000}
	DefaultAtomCountBuckets      = []float64{1, 5, 10, 25, 50, 100, 250, 500}
	DefaultNodeCountBuckets      = []float64{100, 1000, 10000, 100000, 1e6, 5e6, 1e7}
	DefaultScoreBuckets          = []float64{0, .1, .2, .3, .4, .5, .6, .7, .8, .9, 1}
	DefaultBatchSizeBuckets      = []float64{1, 5, 10, 25, 50, 100, 500, 1000}
)

// NewAppMetrics registers all metrics and returns AppMetrics struct.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// HTTP
	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPRequestSize = collector.RegisterHistogram("http_request_size_bytes", "HTTP request size", DefaultSizeBuckets, "method", "path")
	m.HTTPResponseSize = collector.RegisterHistogram("http_response_size_bytes", "HTTP response size", DefaultSizeBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method", "path")

	// Parsing
	m.ParseTotal = collector.RegisterCounter("parse_total", "Molecule parse count", "format", "status")
	m.ParseDuration = collector.RegisterHistogram("parse_duration_seconds", "Molecule parse duration", DefaultHTTPDurationBuckets, "format")
	m.ParsedAtoms = collector.RegisterHistogram("parsed_atoms", "Atom count of parsed molecules", DefaultAtomCountBuckets, "format")

	// Comparison
	m.ComparisonsTotal = collector.RegisterCounter("comparisons_total", "Comparison operations", "operation", "status")
	m.ComparisonDuration = collector.RegisterHistogram("comparison_duration_seconds", "Comparison operation duration", DefaultSearchDurationBuckets, "operation")
	m.SearchNodesExpanded = collector.RegisterHistogram("search_nodes_expanded", "Search tree nodes expanded per comparison", DefaultNodeCountBuckets, "operation")
	m.SearchExhaustedTotal = collector.RegisterCounter("search_exhausted_total", "Searches by completion outcome", "operation", "exhaustive")
	m.CommonSubgraphSize = collector.RegisterHistogram("common_subgraph_size", "Maximum common subgraph size found", DefaultAtomCountBuckets, "kind")
	m.SimilarityScore = collector.RegisterHistogram("similarity_score", "Similarity score distribution", DefaultScoreBuckets, "metric")
	m.BatchRequestsTotal = collector.RegisterCounter("batch_requests_total", "Batch comparison requests", "status")
	m.BatchSize = collector.RegisterHistogram("batch_size", "Number of candidates per batch request", DefaultBatchSizeBuckets)
	m.BatchActiveWorkers = collector.RegisterGauge("batch_active_workers", "Active batch comparison workers")
	m.RenderRequestsTotal = collector.RegisterCounter("render_requests_total", "Molecule render requests", "format", "status")
	m.RenderDuration = collector.RegisterHistogram("render_duration_seconds", "Molecule render duration", DefaultHTTPDurationBuckets, "format")

	// Infrastructure
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.CacheEvictions = collector.RegisterCounter("cache_evictions_total", "Cache evictions", "cache")
	m.RedisOpDuration = collector.RegisterHistogram("redis_op_duration_seconds", "Redis operation duration", DefaultHTTPDurationBuckets, "operation")

	// System Health
	m.ServiceUptime = collector.RegisterGauge("service_uptime_seconds", "Service uptime", "service")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "error_type", "severity")

	return m
}

// RegisterAppMetrics is an alias for NewAppMetrics.
func RegisterAppMetrics(collector MetricsCollector) *AppMetrics {
	return NewAppMetrics(collector)
}

// Helpers

func RecordHTTPRequest(metrics *AppMetrics, method, path string, statusCode int, duration time.Duration, reqSize, respSize int64) {
	status := fmt.Sprintf("%d", statusCode)
	metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	metrics.HTTPRequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	metrics.HTTPResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

func RecordParse(metrics *AppMetrics, format string, atoms int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.ParseTotal.WithLabelValues(format, status).Inc()
	metrics.ParseDuration.WithLabelValues(format).Observe(duration.Seconds())
	if err == nil {
		metrics.ParsedAtoms.WithLabelValues(format).Observe(float64(atoms))
	}
}

func RecordComparison(metrics *AppMetrics, operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.ComparisonsTotal.WithLabelValues(operation, status).Inc()
	metrics.ComparisonDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordSearch(metrics *AppMetrics, operation string, nodes int64, exhaustive bool) {
	metrics.SearchNodesExpanded.WithLabelValues(operation).Observe(float64(nodes))
	metrics.SearchExhaustedTotal.WithLabelValues(operation, fmt.Sprintf("%t", exhaustive)).Inc()
}

func RecordCacheAccess(metrics *AppMetrics, cache string, hit bool) {
	if hit {
		metrics.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		metrics.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func RecordError(metrics *AppMetrics, component, errorType, severity string) {
	metrics.ErrorsTotal.WithLabelValues(component, errorType, severity).Inc()
}
