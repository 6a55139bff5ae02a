// Package metrics содержит Prometheus-метрики сервиса.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics хранит метрики проверок национальных кодов.
type Metrics struct {
	Checks        *prometheus.CounterVec
	CheckDuration prometheus.Histogram
}

// New создаёт метрики и регистрирует их в указанном реестре.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Checks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nationalcode_checks_total",
			Help: "Total national code checks by result",
		}, []string{"result"}),

		CheckDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nationalcode_check_duration_seconds",
			Help:    "Duration of a single national code check",
			Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01},
		}),
	}
}

// ObserveCheck учитывает одну проверку с её результатом и длительностью.
func (m *Metrics) ObserveCheck(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.Checks.WithLabelValues(result).Inc()
	m.CheckDuration.Observe(d.Seconds())
}
