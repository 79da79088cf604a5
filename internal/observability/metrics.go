// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "anubis"

// Metrics holds all Prometheus metrics for a scan.
type Metrics struct {
	// Scan metrics
	PagesFetched     *prometheus.CounterVec
	SignaturesRead   *prometheus.CounterVec
	LaunchesFound    *prometheus.CounterVec
	PageRetries      *prometheus.CounterVec
	TxFetchErrors    *prometheus.CounterVec
	EventsDiscarded  prometheus.Counter
	WalletsProfiled  prometheus.Counter
	EnrichmentLookup *prometheus.CounterVec

	// Latency metrics
	RPCCallLatency *prometheus.HistogramVec

	// Pipeline metrics
	PhaseDuration *prometheus.HistogramVec
	ScanRuns      *prometheus.CounterVec

	// Database metrics
	DBWriteErrors *prometheus.CounterVec

	// Health metrics
	LastSuccessfulScan prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates a Metrics instance registered on its own registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		PagesFetched: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "pages_total",
			Help:      "Signature pages fetched per platform",
		}, []string{"platform"}),
		SignaturesRead: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "signatures_total",
			Help:      "Signature summaries read per platform",
		}, []string{"platform"}),
		LaunchesFound: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "launches_total",
			Help:      "Launch transactions extracted per platform",
		}, []string{"platform"}),
		PageRetries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "page_retries_total",
			Help:      "Signature page retries per platform",
		}, []string{"platform"}),
		TxFetchErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "tx_fetch_errors_total",
			Help:      "getTransaction failures skipped per platform",
		}, []string{"platform"}),
		EventsDiscarded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregation",
			Name:      "events_discarded_total",
			Help:      "Launch events dropped for missing identity or repeated signature",
		}),
		WalletsProfiled: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "wallets_profiled_total",
			Help:      "Wallets analyzed and scored",
		}),
		EnrichmentLookup: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "enrichment",
			Name:      "lookups_total",
			Help:      "Market cap lookups by outcome",
		}, []string{"outcome"}),

		RPCCallLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solana",
			Name:      "rpc_call_latency_seconds",
			Help:      "Solana RPC call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),

		PhaseDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "phase_duration_seconds",
			Help:      "Pipeline phase duration in seconds",
			Buckets:   []float64{0.1, 1, 5, 10, 30, 60, 300, 900, 3600},
		}, []string{"phase"}),
		ScanRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Pipeline runs by final status",
		}, []string{"status"}),

		DBWriteErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "write_errors_total",
			Help:      "Row-level write failures by table",
		}, []string{"table"}),

		LastSuccessfulScan: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_scan_timestamp",
			Help:      "Unix timestamp of last completed scan",
		}),
	}
}

// Registry exposes the registry the metrics live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRPC matches solana.CallObserver.
func (m *Metrics) ObserveRPC(method string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.RPCCallLatency.WithLabelValues(method, status).Observe(elapsed.Seconds())
}

// ObserveEnrichment matches enrichment.Options.Observe.
func (m *Metrics) ObserveEnrichment(outcome string) {
	m.EnrichmentLookup.WithLabelValues(outcome).Inc()
}

// ObservePhase records how long a pipeline phase took.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	m.PhaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// RecordWriteError counts one failed row write.
func (m *Metrics) RecordWriteError(table string) {
	m.DBWriteErrors.WithLabelValues(table).Inc()
}

// RecordRun counts a finished run; completed runs also bump the health gauge.
func (m *Metrics) RecordRun(status string, finishedAt time.Time) {
	m.ScanRuns.WithLabelValues(status).Inc()
	if status == "COMPLETED" {
		m.LastSuccessfulScan.Set(float64(finishedAt.Unix()))
	}
}

// Handler serves /metrics from the registry and a plain /health probe.
func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
