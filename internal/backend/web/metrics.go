package web

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts provider round trips.
type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg when reg
// is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mbdata_provider_requests_total",
				Help: "Total number of requests sent to the web provider",
			},
			[]string{"path", "code"},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mbdata_provider_request_duration_seconds",
				Help:    "Latency of requests sent to the web provider",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Latency)
	}
	return m
}
