package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the query API.
type Metrics struct {
	queriesTotal *prometheus.CounterVec
	reloadsTotal prometheus.Counter
}

// NewMetrics registers the kbengine metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		queriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kbengine_queries_total",
			Help: "Queries served, labeled by endpoint and outcome (hit or miss).",
		}, []string{"endpoint", "outcome"}),
		reloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "kbengine_knowledge_reloads_total",
			Help: "Knowledge snapshot reloads triggered over the API.",
		}),
	}
}

func (m *Metrics) observeQuery(endpoint string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.queriesTotal.WithLabelValues(endpoint, outcome).Inc()
}
