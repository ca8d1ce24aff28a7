package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the exchange relay. A nil *Metrics is a no-op.
type Metrics struct {
	Commands        *prometheus.CounterVec
	PublishFailures prometheus.Counter
	HandleDuration  *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Commands: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rankbridge_exchange_commands_total",
			Help: "Exchange messages received, by verb and outcome",
		}, []string{"verb", "outcome"}),
		PublishFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "rankbridge_exchange_publish_failures_total",
			Help: "Exchange messages that could not be published",
		}),
		HandleDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rankbridge_exchange_handle_duration_seconds",
			Help:    "Time to answer an exchange request, including the rank lookup",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"verb"}),
	}
}

func (m *Metrics) IncCommand(verb, outcome string) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(verb, outcome).Inc()
}

func (m *Metrics) IncPublishFailure() {
	if m == nil {
		return
	}
	m.PublishFailures.Inc()
}

func (m *Metrics) ObserveHandle(verb string, d time.Duration) {
	if m == nil {
		return
	}
	m.HandleDuration.WithLabelValues(verb).Observe(d.Seconds())
}
