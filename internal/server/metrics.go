package server

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/scenetree/pkg/observability"
)

const namespace = "scenetree"

// Metrics records pipeline, cache and HTTP events as Prometheus metrics. It
// implements [observability.PipelineHooks], [observability.CacheHooks] and
// [observability.HTTPHooks].
type Metrics struct {
	imports        *prometheus.CounterVec
	importDuration prometheus.Histogram
	importedNodes  prometheus.Gauge
	flattenRows    *prometheus.GaugeVec
	flattenDepth   *prometheus.GaugeVec
	renders        *prometheus.CounterVec
	renderBytes    *prometheus.HistogramVec
	cacheOps       *prometheus.CounterVec
	httpInFlight   prometheus.Gauge
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		imports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "import",
				Name:      "total",
				Help:      "Document imports by result.",
			},
			[]string{"result"},
		),
		importDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "import",
				Name:      "duration_seconds",
				Help:      "Document import duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		importedNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "import",
				Name:      "nodes",
				Help:      "Node count of the last imported document.",
			},
		),
		flattenRows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "flatten",
				Name:      "rows",
				Help:      "Rows produced by the last flatten of each source.",
			},
			[]string{"source"},
		),
		flattenDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "flatten",
				Name:      "max_depth",
				Help:      "Maximum row depth of the last flatten of each source.",
			},
			[]string{"source"},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "total",
				Help:      "Rendered artifacts by format and result.",
			},
			[]string{"format", "result"},
		),
		renderBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "bytes",
				Help:      "Size of rendered artifacts in bytes.",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"format"},
		),
		cacheOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "operations_total",
				Help:      "Cache lookups and writes by key type and outcome.",
			},
			[]string{"type", "op"},
		),
		httpInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "HTTP requests currently being served.",
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	reg.MustRegister(
		m.imports, m.importDuration, m.importedNodes,
		m.flattenRows, m.flattenDepth,
		m.renders, m.renderBytes,
		m.cacheOps,
		m.httpInFlight, m.httpRequests, m.httpDuration,
	)
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnImportStart(context.Context, string) {}

func (m *Metrics) OnImportComplete(_ context.Context, _ string, nodeCount int, duration time.Duration, err error) {
	m.imports.WithLabelValues(result(err)).Inc()
	m.importDuration.Observe(duration.Seconds())
	if err == nil {
		m.importedNodes.Set(float64(nodeCount))
	}
}

func (m *Metrics) OnFlatten(_ context.Context, source string, rows, maxDepth int, _ time.Duration) {
	m.flattenRows.WithLabelValues(source).Set(float64(rows))
	m.flattenDepth.WithLabelValues(source).Set(float64(maxDepth))
}

func (m *Metrics) OnRender(_ context.Context, format string, size int, _ time.Duration, err error) {
	m.renders.WithLabelValues(format, result(err)).Inc()
	if err == nil {
		m.renderBytes.WithLabelValues(format).Observe(float64(size))
	}
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.httpInFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, duration time.Duration) {
	m.httpInFlight.Dec()
	statusLabel := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, route, statusLabel).Inc()
	m.httpDuration.WithLabelValues(method, route, statusLabel).Observe(duration.Seconds())
}
