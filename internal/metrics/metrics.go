package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Success = "success"
	Invalid = "invalid"
	Failure = "failure"
)

var Observer = &Metrics{
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(Observer.prometheus.Runs, Observer.prometheus.Iterations)
}

type Metrics struct {
	prometheus Prometheus
}

// Run counts a run of the given method.
func (m *Metrics) Run(method, outcome string) {
	m.prometheus.Runs.WithLabelValues(method, outcome).Inc()
}

// Iterations records the length of the trace of a run.
func (m *Metrics) Iterations(method string, n int) {
	m.prometheus.Iterations.WithLabelValues(method).Observe(float64(n))
}

// Handler exposes the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
