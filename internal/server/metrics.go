package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "splitrand"

type metrics struct {
	connections prometheus.Gauge
	requests    *prometheus.CounterVec
	values      *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Open websocket stream connections.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Stream requests by kind and outcome.",
		}, []string{"kind", "status"}),
		values: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "values_total",
			Help:      "Values streamed to clients by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.connections, m.requests, m.values)
	return m
}
