package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	MetricsNamespace        = "chat_sessions"
	MetricsSubsystemApp     = "app"
	MetricsSubsystemHTTP    = "http"
	MetricsSubsystemAPI     = "api"
	MetricsSubsystemGraph   = "graph"
	MetricsSubsystemExports = "exports"
)

// Metrics used to instrumentate metrics in prometheus.
type Metrics struct {
	registry *prometheus.Registry

	apiTime *prometheus.HistogramVec

	httpRequestsTotal prometheus.Counter
	httpErrorsTotal   prometheus.Counter

	graphCallTotal *prometheus.CounterVec

	transcriptExportTotal *prometheus.CounterVec
	transcriptLinesTotal  prometheus.Counter

	activeSessionsTotal prometheus.Gauge
}

// NewMetrics Factory method to create a new metrics collector.
func NewMetrics() *Metrics {
	m := &Metrics{}

	m.registry = prometheus.NewRegistry()
	options := collectors.ProcessCollectorOpts{
		Namespace: MetricsNamespace,
	}
	m.registry.MustRegister(collectors.NewProcessCollector(options))
	m.registry.MustRegister(collectors.NewGoCollector())

	m.apiTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystemAPI,
			Name:      "time",
			Help:      "Time to execute the api handler",
		},
		[]string{"handler", "method", "status_code"},
	)
	m.registry.MustRegister(m.apiTime)

	m.httpRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemHTTP,
		Name:      "requests_total",
		Help:      "The total number of http API requests.",
	})
	m.registry.MustRegister(m.httpRequestsTotal)

	m.httpErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemHTTP,
		Name:      "errors_total",
		Help:      "The total number of http API errors.",
	})
	m.registry.MustRegister(m.httpErrorsTotal)

	m.graphCallTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemGraph,
		Name:      "call_total",
		Help:      "The total number of Microsoft Graph calls.",
	}, []string{"method", "success"})
	m.registry.MustRegister(m.graphCallTotal)

	m.transcriptExportTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemExports,
		Name:      "transcript_total",
		Help:      "The total number of transcript exports.",
	}, []string{"format"})
	m.registry.MustRegister(m.transcriptExportTotal)

	m.transcriptLinesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemExports,
		Name:      "transcript_lines_total",
		Help:      "The total number of transcript lines exported.",
	})
	m.registry.MustRegister(m.transcriptLinesTotal)

	m.activeSessionsTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemApp,
		Name:      "active_sessions_total",
		Help:      "The total number of chat sessions held in memory.",
	})
	m.registry.MustRegister(m.activeSessionsTotal)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAPIEndpointDuration(handler, method, statusCode string, elapsed float64) {
	if m != nil {
		m.apiTime.With(prometheus.Labels{"handler": handler, "method": method, "status_code": statusCode}).Observe(elapsed)
	}
}

func (m *Metrics) ObserveGraphCall(method string, success bool) {
	if m != nil {
		m.graphCallTotal.With(prometheus.Labels{"method": method, "success": strconv.FormatBool(success)}).Inc()
	}
}

func (m *Metrics) ObserveTranscriptExport(format string, lines int64) {
	if m != nil {
		m.transcriptExportTotal.With(prometheus.Labels{"format": format}).Inc()
		m.transcriptLinesTotal.Add(float64(lines))
	}
}

func (m *Metrics) ObserveActiveSessionsTotal(count int64) {
	if m != nil {
		m.activeSessionsTotal.Set(float64(count))
	}
}

func (m *Metrics) IncrementHTTPRequests() {
	if m != nil {
		m.httpRequestsTotal.Inc()
	}
}

func (m *Metrics) IncrementHTTPErrors() {
	if m != nil {
		m.httpErrorsTotal.Inc()
	}
}
