package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	actions        *prometheus.CounterVec
	exports        *prometheus.CounterVec
	exportDuration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_session_actions_total",
			Help: "Session actions handled, by action and result.",
		}, []string{"action", "result"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_exports_total",
			Help: "Document exports, by result.",
		}, []string{"result"}),
		exportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "invoice_export_duration_seconds",
			Help:    "Time spent rendering and storing a document.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.actions, m.exports, m.exportDuration)
	return m
}

func (m *metrics) observe(action string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.actions.WithLabelValues(action, result).Inc()
}
