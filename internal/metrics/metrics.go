package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Resultados posibles de un envio de reporte.
const (
	OutcomeDelivered      = "delivered"
	OutcomeDeliveryFailed = "delivery_failed"
	OutcomeRateLimited    = "rate_limited"
	OutcomeInvalid        = "invalid"
)

// Recorder expone las metricas del servicio. Un *Recorder nil no registra nada.
type Recorder struct {
	submissions *prometheus.CounterVec
	scores      prometheus.Histogram
	tiers       *prometheus.CounterVec
	evaluations prometheus.Counter
}

// NewRecorder crea y registra las metricas en reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assessment",
			Name:      "submissions_total",
			Help:      "Report submissions by outcome.",
		}, []string{"outcome"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "assessment",
			Name:      "total_score",
			Help:      "Distribution of computed total scores.",
			Buckets:   []float64{20, 40, 60, 80, 100},
		}),
		tiers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assessment",
			Name:      "tier_total",
			Help:      "Computed tiers.",
		}, []string{"tier"}),
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "assessment",
			Name:      "evaluations_total",
			Help:      "Score computations served.",
		}),
	}
	if reg != nil {
		reg.MustRegister(r.submissions, r.scores, r.tiers, r.evaluations)
	}
	return r
}

func (r *Recorder) Submission(outcome string) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(outcome).Inc()
}

// Evaluation registra un puntaje total y su tier.
func (r *Recorder) Evaluation(total float64, tier string) {
	if r == nil {
		return
	}
	r.evaluations.Inc()
	r.scores.Observe(total)
	r.tiers.WithLabelValues(tier).Inc()
}
