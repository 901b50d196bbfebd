package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/gobudget/internal/domain"
)

// Metrics holds all Prometheus metrics. It implements
// usecase.MetricsRecorder.
type Metrics struct {
	// Ledger metrics
	LedgerOperations *prometheus.CounterVec
	LedgerDuration   *prometheus.HistogramVec

	// Reconciliation metrics
	ReconciledSources    prometheus.Counter
	BalanceDiscrepancies prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Middleware metrics
	RateLimitHits      prometheus.Counter
	IdempotencyReplays prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LedgerOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobudget_ledger_operations_total",
				Help: "Total ledger operations by outcome",
			},
			[]string{"operation", "status"},
		),
		LedgerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gobudget_ledger_operation_duration_seconds",
				Help:    "Duration of ledger operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		ReconciledSources: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobudget_reconciled_sources_total",
			Help: "Total number of sources checked by reconciliation",
		}),
		BalanceDiscrepancies: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gobudget_balance_discrepancies",
			Help: "Sources whose stored balance differed from the recalculated one in the last report",
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobudget_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gobudget_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gobudget_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobudget_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
		IdempotencyReplays: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobudget_idempotency_replays_total",
			Help: "Total responses replayed from the idempotency store",
		}),
	}
}

// RecordOperation records the outcome and latency of a ledger operation.
// Failures are labelled with their error kind.
func (m *Metrics) RecordOperation(operation string, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = string(domain.KindOf(err))
	}

	m.LedgerOperations.WithLabelValues(operation, status).Inc()
	m.LedgerDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// RecordReconciliation records a reconciliation report.
func (m *Metrics) RecordReconciliation(checked, discrepancies int) {
	m.ReconciledSources.Add(float64(checked))
	m.BalanceDiscrepancies.Set(float64(discrepancies))
}
