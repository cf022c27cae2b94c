package sweep

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Prometheus metrics for weight sweeps
// =============================================================================

// Result label values of ductnet_sweep_evaluations_total.
const (
	ResultViable    = "viable"
	ResultNonViable = "non_viable"
)

// PrometheusObserver records sweep progress as Prometheus metrics.
type PrometheusObserver struct {
	// evaluations counts finished evaluations.
	// Labels: result (viable, non_viable)
	evaluations *prometheus.CounterVec

	// bestCost tracks the lowest network cost seen so far, in ft².
	bestCost prometheus.Gauge

	// evaluationSeconds measures the wall time of one route + build.
	evaluationSeconds prometheus.Histogram

	best float64
}

// NewPrometheusObserver registers the sweep metrics with reg.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	f := promauto.With(reg)

	return &PrometheusObserver{
		evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ductnet",
			Subsystem: "sweep",
			Name:      "evaluations_total",
			Help:      "Total weight combinations evaluated",
		}, []string{"result"}),
		bestCost: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "ductnet",
			Subsystem: "sweep",
			Name:      "best_cost",
			Help:      "Lowest network surface area found so far in square feet",
		}),
		evaluationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ductnet",
			Subsystem: "sweep",
			Name:      "evaluation_seconds",
			Help:      "Time to route and size one weight combination",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		best: math.Inf(1),
	}
}

// OnEvaluated implements Observer.
func (p *PrometheusObserver) OnEvaluated(ev Evaluation, _, _ int) {
	p.evaluationSeconds.Observe(ev.Duration.Seconds())
	if !ev.Viable {
		p.evaluations.WithLabelValues(ResultNonViable).Inc()
		return
	}
	p.evaluations.WithLabelValues(ResultViable).Inc()
	if ev.Cost < p.best {
		p.best = ev.Cost
		p.bestCost.Set(ev.Cost)
	}
}
