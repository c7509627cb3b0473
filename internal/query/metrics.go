package query

import "github.com/prometheus/client_golang/prometheus"

// Request outcomes recorded by Metrics.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Metrics counts requests by kind and outcome.
type Metrics struct {
	requests *prometheus.CounterVec
}

// NewMetrics creates the request counter and registers it on reg.
// A nil reg leaves the counter unregistered (useful in tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "applink",
			Subsystem: "query",
			Name:      "requests_total",
			Help:      "Recipe query requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests)
	}
	return m
}

// Requests returns the counter for a kind/outcome pair.
func (m *Metrics) Requests(kind Kind, outcome string) prometheus.Counter {
	return m.requests.WithLabelValues(kind.String(), outcome)
}

func (m *Metrics) observe(kind Kind, outcome string) {
	if m == nil {
		return
	}
	m.Requests(kind, outcome).Inc()
}
