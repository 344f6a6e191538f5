// Package metrics defines the application's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "presenz"

// Metrics is safe to use as a nil pointer; every recorder becomes a no-op.
type Metrics struct {
	punches   *prometheus.CounterVec
	decisions *prometheus.CounterVec
	exports   *prometheus.CounterVec
	logins    *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		punches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "punches_total",
			Help:      "Punch attempts by direction and outcome.",
		}, []string{"direction", "result"}),
		decisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_decisions_total",
			Help:      "Admin decisions on employee requests.",
		}, []string{"kind", "decision"}),
		exports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Generated exports by format.",
		}, []string{"kind", "format"}),
		logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by method and outcome.",
		}, []string{"method", "result"}),
	}
}

// RegisterSubscriberGauge exposes the number of open live subscriptions.
func RegisterSubscriberGauge(reg prometheus.Registerer, count func() int) {
	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_subscribers",
		Help:      "Open live update streams.",
	}, func() float64 { return float64(count()) })
}

func (m *Metrics) Punch(direction string, err error) {
	if m == nil {
		return
	}
	m.punches.WithLabelValues(direction, result(err)).Inc()
}

func (m *Metrics) Decision(kind, decision string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(kind, decision).Inc()
}

func (m *Metrics) Export(kind, format string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(kind, format).Inc()
}

func (m *Metrics) Login(method string, err error) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(method, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
