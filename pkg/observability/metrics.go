package observability

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values of arbor_searches_total.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
)

// Metrics holds the search collectors.
type Metrics struct {
	Searches    *prometheus.CounterVec
	Expansions  prometheus.Counter
	Relaxations prometheus.Counter
	PathLength  prometheus.Histogram
	Duration    prometheus.Histogram
}

// NewMetrics creates the search collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_searches_total",
				Help: "Total number of completed searches",
			},
			[]string{"outcome"},
		),
		Expansions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_expansions_total",
			Help: "Total number of states popped from the frontier",
		}),
		Relaxations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_relaxations_total",
			Help: "Total number of g-score updates, first discoveries included",
		}),
		PathLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbor_search_path_length",
			Help:    "Number of states on returned paths",
			Buckets: prometheus.LinearBuckets(1, 4, 10),
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbor_search_duration_seconds",
			Help:    "Wall time of completed searches",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Searches, m.Expansions, m.Relaxations, m.PathLength, m.Duration)
	}
	return m
}

// Hooks returns search hooks that feed the collectors.
func (m *Metrics) Hooks() domain.SearchHooks {
	return domain.SearchHooks{
		OnExpand: func(*domain.ExpandEvent) {
			m.Expansions.Inc()
		},
		OnRelax: func(*domain.RelaxEvent) {
			m.Relaxations.Inc()
		},
		OnFinish: func(e *domain.FinishEvent) {
			m.Duration.Observe(e.Duration.Seconds())
			if !e.Found {
				m.Searches.WithLabelValues(OutcomeNotFound).Inc()
				return
			}
			m.Searches.WithLabelValues(OutcomeFound).Inc()
			m.PathLength.Observe(float64(e.PathLength))
		},
	}
}
