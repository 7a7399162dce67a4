package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "officenote"

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics groups the collectors of the office note pipeline.
type Metrics struct {
	WorkbooksTotal *prometheus.CounterVec
	RendersTotal   *prometheus.CounterVec
	RenderDuration prometheus.Histogram
	Deficiencies   prometheus.Histogram
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		WorkbooksTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workbooks_total",
				Help:      "Uploaded workbooks by read outcome",
			},
			[]string{"outcome"},
		),
		RendersTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "renders_total",
				Help:      "Office note generations by outcome",
			},
			[]string{"outcome"},
		),
		RenderDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_duration_seconds",
				Help:      "Time spent extracting, deriving and rendering one office note",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		Deficiencies: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "deficiencies",
				Help:      "Deficiencies listed per workbook",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
			},
		),
	}
}

// ObserveWorkbook records a workbook read and, on success, its deficiency count.
func (m *Metrics) ObserveWorkbook(deficiencies int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.WorkbooksTotal.WithLabelValues(OutcomeFailure).Inc()
		return
	}
	m.WorkbooksTotal.WithLabelValues(OutcomeSuccess).Inc()
	m.Deficiencies.Observe(float64(deficiencies))
}

// ObserveRender records one generation attempt.
func (m *Metrics) ObserveRender(elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.RendersTotal.WithLabelValues(outcome).Inc()
	m.RenderDuration.Observe(elapsed.Seconds())
}
