package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Punch("in", nil)
	m.Punch("in", errors.New("outside"))
	m.Punch("in", nil)
	m.Decision("leave", "approved")
	m.Export("payroll", "xlsx")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.punches.WithLabelValues("in", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.punches.WithLabelValues("in", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues("leave", "approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues("payroll", "xlsx")))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Punch("out", nil)
		m.Decision("miss_punch", "rejected")
		m.Export("report", "csv")
		m.Login("password", nil)
	})
}

func TestSubscriberGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	n := 3
	RegisterSubscriberGauge(reg, func() int { return n })

	count, err := testutil.GatherAndCount(reg, "presenz_live_subscribers")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
