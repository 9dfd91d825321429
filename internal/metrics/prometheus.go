package metrics

import "github.com/prometheus/client_golang/prometheus"

type Prometheus struct {
	Runs       *prometheus.CounterVec
	Iterations *prometheus.HistogramVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cluster",
				Name:      "runs_total",
				Help:      "k-means runs by init method and outcome.",
			}, []string{"method", "outcome"}),
		Iterations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cluster",
				Name:      "iterations",
				Help:      "Number of snapshots of successful k-means runs.",
				Buckets:   prometheus.LinearBuckets(1, 1, 10),
			}, []string{"method"}),
	}
}
