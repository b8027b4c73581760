package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a pipeline run.
type Metrics struct {
	RecordsRead    prometheus.Counter
	RecordsWritten prometheus.Counter
	RecordsDropped *prometheus.CounterVec // labels: stage, reason
	StageDuration  *prometheus.HistogramVec
	RunDuration    prometheus.Gauge
	LastSuccess    prometheus.Gauge
	OutputColumns  prometheus.Gauge

	// Classifier memoization.
	ClassifierCache *prometheus.CounterVec // labels: classifier={road,weather}, result={hit,miss}

	registry *prometheus.Registry
}

// NewMetrics creates all pipeline metrics on a dedicated registry, which is
// what Push sends to the Pushgateway.
func NewMetrics() *Metrics {
	m := newMetrics()
	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(
		m.RecordsRead,
		m.RecordsWritten,
		m.RecordsDropped,
		m.StageDuration,
		m.RunDuration,
		m.LastSuccess,
		m.OutputColumns,
		m.ClassifierCache,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics for unit tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accident_etl",
			Name:      "records_read_total",
			Help:      "Raw records read from the input file.",
		}),
		RecordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accident_etl",
			Name:      "records_written_total",
			Help:      "Feature rows exported.",
		}),
		RecordsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accident_etl",
			Name:      "records_dropped_total",
			Help:      "Records removed by a stage, by reason.",
		}, []string{"stage", "reason"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "accident_etl",
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}, []string{"stage"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "accident_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of the last pipeline run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "accident_etl",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
		OutputColumns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "accident_etl",
			Name:      "output_columns",
			Help:      "Number of columns in the last export.",
		}),
		ClassifierCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accident_etl",
			Name:      "classifier_cache_total",
			Help:      "Classifier cache lookups by classifier and result.",
		}, []string{"classifier", "result"}),
	}
}

// Push sends the run metrics to a Prometheus Pushgateway under job.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if m.registry == nil {
		return fmt.Errorf("push metrics: metrics are not registered")
	}
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
