package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LineupMetrics records service-level counters for lineup operations.
type LineupMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordRowsIngested(ctx context.Context, source, role string, n int)
}

type prometheusLineupMetrics struct {
	attempts *prometheus.CounterVec
	success  *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rows     *prometheus.CounterVec
}

// NewLineupMetrics registers the lineup collectors on reg.
func NewLineupMetrics(reg prometheus.Registerer, namespace string) (LineupMetrics, error) {
	m := &prometheusLineupMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_attempts_total",
			Help:      "Lineup operations started.",
		}, []string{"operation"}),
		success: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_success_total",
			Help:      "Lineup operations that produced a selection or artifact.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Lineup operations rejected or failed.",
		}, []string{"operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Lineup operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_ingested_total",
			Help:      "Rows accepted by ingestion, by input source and role.",
		}, []string{"source", "role"}),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.success, m.failures, m.duration, m.rows} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusLineupMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.attempts.WithLabelValues(operation).Inc()
}

func (m *prometheusLineupMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.success.WithLabelValues(operation).Inc()
}

func (m *prometheusLineupMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.failures.WithLabelValues(operation).Inc()
}

func (m *prometheusLineupMetrics) RecordOperationDuration(_ context.Context, operation string, d time.Duration) {
	m.duration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *prometheusLineupMetrics) RecordRowsIngested(_ context.Context, source, role string, n int) {
	m.rows.WithLabelValues(source, role).Add(float64(n))
}

// NoOpLineupMetrics discards everything.
type NoOpLineupMetrics struct{}

func (NoOpLineupMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpLineupMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpLineupMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpLineupMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpLineupMetrics) RecordRowsIngested(context.Context, string, string, int)        {}
