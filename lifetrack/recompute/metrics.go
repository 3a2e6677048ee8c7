package recompute

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics of a scheduler. A nil *Metrics records nothing.
type Metrics struct {
	runs      *prometheus.CounterVec
	coalesced prometheus.Counter
	duration  *prometheus.HistogramVec
	timelines *prometheus.GaugeVec
}

// NewMetrics creates scheduler metrics registered with reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifetrack_recompute_runs_total",
			Help: "Total number of recompute runs by kind and outcome",
		}, []string{"kind", "outcome"}),
		coalesced: factory.NewCounter(prometheus.CounterOpts{
			Name: "lifetrack_recompute_coalesced_total",
			Help: "Total number of requests folded into a pending rerun",
		}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lifetrack_recompute_duration_seconds",
			Help:    "Duration of recompute runs",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"kind"}),
		timelines: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lifetrack_published_timelines",
			Help: "Number of timelines in the last published snapshot",
		}, []string{"set"}),
	}
}

func (m *Metrics) observeRun(kind, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(kind, outcome).Inc()
	m.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *Metrics) coalesce() {
	if m == nil {
		return
	}
	m.coalesced.Inc()
}

func (m *Metrics) published(total, visible int) {
	if m == nil {
		return
	}
	m.timelines.WithLabelValues("total").Set(float64(total))
	m.timelines.WithLabelValues("visible").Set(float64(visible))
}
