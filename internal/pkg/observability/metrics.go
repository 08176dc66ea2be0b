package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "redemption"

type Metrics struct {
	breakerState       *prometheus.GaugeVec
	breakerTransitions *prometheus.CounterVec
	gatewayCalls       *prometheus.CounterVec
	gatewayLatency     *prometheus.HistogramVec
	receipts           *prometheus.CounterVec
	matchOutcomes      *prometheus.CounterVec
	ledgerCredits      *prometheus.CounterVec
	ledgerMinorUnits   *prometheus.CounterVec
	jobs               *prometheus.CounterVec
	jobLatency         *prometheus.HistogramVec
	throttles          *prometheus.CounterVec
}

var (
	metricsOnce sync.Once
	registry    *Metrics
)

// Default returns the lazily registered process-wide metrics.
func Default() *Metrics {
	metricsOnce.Do(func() {
		registry = &Metrics{
			breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "breaker",
				Name:      "state",
				Help:      "Circuit breaker state per dependency (0 closed, 1 open, 2 half-open).",
			}, []string{"dependency"}),
			breakerTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "breaker",
				Name:      "transitions_total",
				Help:      "Circuit breaker state transitions.",
			}, []string{"dependency", "from", "to"}),
			gatewayCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "calls_total",
				Help:      "Calls to external collaborators by outcome.",
			}, []string{"dependency", "outcome"}),
			gatewayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "call_duration_seconds",
				Help:      "Latency of calls to external collaborators.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"dependency"}),
			receipts: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "receipts",
				Name:      "total",
				Help:      "Receipts by resulting status.",
			}, []string{"status"}),
			matchOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "matches",
				Name:      "outcomes_total",
				Help:      "Redemption attempts by match outcome.",
			}, []string{"outcome"}),
			ledgerCredits: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "transactions_total",
				Help:      "Ledger transactions appended by kind.",
			}, []string{"kind"}),
			ledgerMinorUnits: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "minor_units_total",
				Help:      "Absolute minor units moved by ledger kind.",
			}, []string{"kind"}),
			jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "jobs",
				Name:      "handled_total",
				Help:      "Background jobs handled by kind and result.",
			}, []string{"kind", "result"}),
			jobLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "jobs",
				Name:      "duration_seconds",
				Help:      "Background job handler latency.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"kind"}),
			throttles: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "throttles_total",
				Help:      "Requests rejected by rate limiting.",
			}, []string{"route"}),
		}
		prometheus.MustRegister(
			registry.breakerState,
			registry.breakerTransitions,
			registry.gatewayCalls,
			registry.gatewayLatency,
			registry.receipts,
			registry.matchOutcomes,
			registry.ledgerCredits,
			registry.ledgerMinorUnits,
			registry.jobs,
			registry.jobLatency,
			registry.throttles,
		)
	})
	return registry
}

func (m *Metrics) BreakerTransition(dependency, from, to string, state int) {
	if m == nil {
		return
	}
	m.breakerTransitions.WithLabelValues(dependency, from, to).Inc()
	m.breakerState.WithLabelValues(dependency).Set(float64(state))
}

func (m *Metrics) ObserveGateway(dependency, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.gatewayCalls.WithLabelValues(dependency, outcome).Inc()
	m.gatewayLatency.WithLabelValues(dependency).Observe(d.Seconds())
}

func (m *Metrics) Receipt(status string) {
	if m == nil {
		return
	}
	m.receipts.WithLabelValues(status).Inc()
}

func (m *Metrics) MatchOutcome(outcome string) {
	if m == nil {
		return
	}
	m.matchOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) LedgerAppend(kind string, amount int64) {
	if m == nil {
		return
	}
	if amount < 0 {
		amount = -amount
	}
	m.ledgerCredits.WithLabelValues(kind).Inc()
	m.ledgerMinorUnits.WithLabelValues(kind).Add(float64(amount))
}

func (m *Metrics) ObserveJob(kind string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.jobs.WithLabelValues(kind, result).Inc()
	m.jobLatency.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) Throttle(route string) {
	if m == nil {
		return
	}
	m.throttles.WithLabelValues(route).Inc()
}
