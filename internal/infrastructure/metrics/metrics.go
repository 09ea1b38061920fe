package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the statement lifecycle metrics. It satisfies
// usecase.MetricsRecorder.
type Metrics struct {
	// Statement metrics
	StatementsCreated  prometheus.Counter
	StatementsUpdated  prometheus.Counter
	StatementsDeleted  prometheus.Counter
	DuplicatesRejected prometheus.Counter
	SaveFailures       *prometheus.CounterVec

	// Export metrics
	Exports *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates all metrics and registers them on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		StatementsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankrec_statements_created_total",
			Help: "Total number of reconciliation statements created",
		}),
		StatementsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankrec_statements_updated_total",
			Help: "Total number of reconciliation statements updated",
		}),
		StatementsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankrec_statements_deleted_total",
			Help: "Total number of reconciliation statements deleted",
		}),
		DuplicatesRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankrec_duplicate_statements_rejected_total",
			Help: "Total number of creates blocked by an existing statement for the same bank and month",
		}),
		SaveFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankrec_save_failures_total",
				Help: "Total number of store failures by operation",
			},
			[]string{"operation"},
		),

		Exports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankrec_exports_total",
				Help: "Total number of exports by format",
			},
			[]string{"format"},
		),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankrec_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		}),
	}
}

// StatementCreated counts a created statement.
func (m *Metrics) StatementCreated() { m.StatementsCreated.Inc() }

// StatementUpdated counts an updated statement.
func (m *Metrics) StatementUpdated() { m.StatementsUpdated.Inc() }

// StatementDeleted counts a deleted statement.
func (m *Metrics) StatementDeleted() { m.StatementsDeleted.Inc() }

// DuplicateRejected counts a create blocked as a duplicate.
func (m *Metrics) DuplicateRejected() { m.DuplicatesRejected.Inc() }

// SaveFailed counts a store failure during op.
func (m *Metrics) SaveFailed(op string) { m.SaveFailures.WithLabelValues(op).Inc() }

// Exported counts an export in format.
func (m *Metrics) Exported(format string) { m.Exports.WithLabelValues(format).Inc() }

// RateLimited counts a throttled request.
func (m *Metrics) RateLimited() { m.RateLimitHits.Inc() }
