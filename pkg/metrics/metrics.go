package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds sweep worker metrics
type Metrics struct {
	SweepRuns          prometheus.Counter
	SweepFailures      prometheus.Counter
	SweepDuration      prometheus.Histogram
	MembershipsExpired prometheus.Counter
	WarningsSent       *prometheus.CounterVec
}

// New creates and registers sweep worker metrics under the given namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		SweepRuns: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_runs_total",
			Help:      "Total number of membership sweep invocations",
		}),
		SweepFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_failures_total",
			Help:      "Total number of failed membership sweep invocations",
		}),
		SweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Time spent running the membership sweep",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		MembershipsExpired: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memberships_expired_total",
			Help:      "Total number of memberships deactivated by the sweep",
		}),
		WarningsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expiry_warnings_sent_total",
			Help:      "Total number of expiry warnings sent, by threshold",
		}, []string{"threshold"}),
	}
}
