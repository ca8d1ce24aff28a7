package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for rank lookups. A nil *Metrics is a no-op.
type Metrics struct {
	UpstreamRequests   prometheus.Counter
	UpstreamFailures   prometheus.Counter
	CoalescedLookups   prometheus.Counter
	Timeouts           prometheus.Counter
	UnsolicitedReplies prometheus.Counter
	PendingRequests    prometheus.Gauge
	ResolutionSeconds  prometheus.Histogram
}

// New creates the rank metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UpstreamRequests: f.NewCounter(prometheus.CounterOpts{
			Name: "rankbridge_rank_upstream_requests_total",
			Help: "Total number of player profile requests sent upstream",
		}),
		UpstreamFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "rankbridge_rank_upstream_failures_total",
			Help: "Total number of player profile requests that could not be sent",
		}),
		CoalescedLookups: f.NewCounter(prometheus.CounterOpts{
			Name: "rankbridge_rank_coalesced_lookups_total",
			Help: "Total number of rank lookups that joined an in-flight request",
		}),
		Timeouts: f.NewCounter(prometheus.CounterOpts{
			Name: "rankbridge_rank_lookup_timeouts_total",
			Help: "Total number of in-flight requests that expired without a response",
		}),
		UnsolicitedReplies: f.NewCounter(prometheus.CounterOpts{
			Name: "rankbridge_rank_unsolicited_profiles_total",
			Help: "Total number of profile records with no matching in-flight request",
		}),
		PendingRequests: f.NewGauge(prometheus.GaugeOpts{
			Name: "rankbridge_rank_pending_requests",
			Help: "Current number of in-flight player profile requests",
		}),
		ResolutionSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rankbridge_rank_resolution_seconds",
			Help:    "Time from the first lookup to the upstream profile response",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

func (m *Metrics) IncUpstreamRequests() {
	if m == nil {
		return
	}
	m.UpstreamRequests.Inc()
}

func (m *Metrics) IncUpstreamFailures() {
	if m == nil {
		return
	}
	m.UpstreamFailures.Inc()
}

func (m *Metrics) IncCoalesced() {
	if m == nil {
		return
	}
	m.CoalescedLookups.Inc()
}

func (m *Metrics) IncTimeouts() {
	if m == nil {
		return
	}
	m.Timeouts.Inc()
}

func (m *Metrics) IncUnsolicited() {
	if m == nil {
		return
	}
	m.UnsolicitedReplies.Inc()
}

func (m *Metrics) SetPending(n int) {
	if m == nil {
		return
	}
	m.PendingRequests.Set(float64(n))
}

func (m *Metrics) ObserveResolution(d time.Duration) {
	if m == nil {
		return
	}
	m.ResolutionSeconds.Observe(d.Seconds())
}
