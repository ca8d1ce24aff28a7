package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for relationship handling. A nil *Metrics is a no-op.
type Metrics struct {
	Decisions        *prometheus.CounterVec
	RankSyncs        *prometheus.CounterVec
	HandlingFailures prometheus.Counter
	HandleDuration   prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rankbridge_friendship_decisions_total",
			Help: "Relationship decisions by reason",
		}, []string{"reason"}),
		RankSyncs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rankbridge_friendship_rank_syncs_total",
			Help: "Rank synchronizations triggered by accepted connections, by outcome",
		}, []string{"outcome"}),
		HandlingFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "rankbridge_friendship_handling_failures_total",
			Help: "Relationship events that could not be applied",
		}),
		HandleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rankbridge_friendship_handle_duration_seconds",
			Help:    "Time to apply a relationship decision, excluding rank sync",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncDecision(reason string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncRankSync(outcome string) {
	if m == nil {
		return
	}
	m.RankSyncs.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncFailure() {
	if m == nil {
		return
	}
	m.HandlingFailures.Inc()
}

func (m *Metrics) ObserveHandle(d time.Duration) {
	if m == nil {
		return
	}
	m.HandleDuration.Observe(d.Seconds())
}
