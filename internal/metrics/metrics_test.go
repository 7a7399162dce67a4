package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveWorkbook(3, nil)
	m.ObserveWorkbook(0, errors.New("corrupt"))
	m.ObserveRender(20*time.Millisecond, nil)
	m.ObserveRender(5*time.Millisecond, errors.New("template missing"))
	m.ObserveRender(5*time.Millisecond, errors.New("template missing"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WorkbooksTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WorkbooksTotal.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RendersTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RendersTotal.WithLabelValues(OutcomeFailure)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveWorkbook(1, nil)
		m.ObserveRender(time.Second, nil)
	})
}
