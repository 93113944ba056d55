package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus metrics of one scanner process. A nil
// *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         *prometheus.Registry

	// Evaluation metrics
	savesEvaluated    prometheus.Counter
	savesEligible     prometheus.Counter
	savesRejected     *prometheus.CounterVec
	evaluationLatency prometheus.Histogram

	// Scan metrics
	scansTotal         prometheus.Counter
	scanFailures       prometheus.Counter
	lastScanSaves      prometheus.Gauge
	lastScanEligible   prometheus.Gauge
	lastScanAnyMatch   prometheus.Gauge
	lastScanTimestamp  prometheus.Gauge
	lastScanDurationMs prometheus.Gauge
}

// NewManager creates a new metrics manager with its own registry unless one
// is supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ngplus",
		subsystem:        "saves",
		histogramBuckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		customLabels:     make(map[string]string),
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.savesEvaluated = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "evaluated_total",
		Help:        "Total number of save folders evaluated",
		ConstLabels: labels,
	})

	m.savesEligible = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "eligible_total",
		Help:        "Total number of saves that qualify for New Game Plus",
		ConstLabels: labels,
	})

	m.savesRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "rejected_total",
			Help:        "Total number of rejected saves by the check that rejected them",
			ConstLabels: labels,
		},
		[]string{"reason"},
	)

	m.evaluationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "evaluation_latency_milliseconds",
		Help:        "Time spent loading and evaluating one save in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.scansTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "scan",
		Name:        "runs_total",
		Help:        "Total number of directory scans started",
		ConstLabels: labels,
	})

	m.scanFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "scan",
		Name:        "failures_total",
		Help:        "Total number of scans aborted because the save directory was unavailable",
		ConstLabels: labels,
	})

	m.lastScanSaves = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "scan",
		Name:        "last_saves",
		Help:        "Number of save folders evaluated by the last scan",
		ConstLabels: labels,
	})

	m.lastScanEligible = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "scan",
		Name:        "last_eligible",
		Help:        "Number of eligible saves found by the last scan",
		ConstLabels: labels,
	})

	m.lastScanAnyMatch = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "scan",
		Name:        "last_any_eligible",
		Help:        "1 when the last scan found at least one eligible save",
		ConstLabels: labels,
	})

	m.lastScanTimestamp = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "scan",
		Name:        "last_timestamp_seconds",
		Help:        "Unix time the last scan finished",
		ConstLabels: labels,
	})

	m.lastScanDurationMs = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "scan",
		Name:        "last_duration_milliseconds",
		Help:        "Duration of the last scan in milliseconds",
		ConstLabels: labels,
	})
}

// RecordEvaluation records the outcome of one save evaluation.
func (m *Manager) RecordEvaluation(eligible bool, reason string, latency time.Duration) {
	if m == nil {
		return
	}
	m.savesEvaluated.Inc()
	m.evaluationLatency.Observe(float64(latency) / float64(time.Millisecond))
	if eligible {
		m.savesEligible.Inc()
		return
	}
	m.savesRejected.WithLabelValues(reason).Inc()
}

// RecordScanStarted increments the scan counter.
func (m *Manager) RecordScanStarted() {
	if m == nil {
		return
	}
	m.scansTotal.Inc()
}

// RecordScanFailure counts a scan that could not resolve or read its directory.
func (m *Manager) RecordScanFailure() {
	if m == nil {
		return
	}
	m.scanFailures.Inc()
}

// RecordScanFinished sets the last-scan gauges.
func (m *Manager) RecordScanFinished(scanned, eligible int, anyEligible bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.lastScanSaves.Set(float64(scanned))
	m.lastScanEligible.Set(float64(eligible))
	if anyEligible {
		m.lastScanAnyMatch.Set(1)
	} else {
		m.lastScanAnyMatch.Set(0)
	}
	m.lastScanTimestamp.SetToCurrentTime()
	m.lastScanDurationMs.Set(float64(duration) / float64(time.Millisecond))
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric in the text exposition format to path,
// suitable for the node_exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
