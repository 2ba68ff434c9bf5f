package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration pipeline and the review flow.
type Metrics struct {
	Submissions        *prometheus.CounterVec
	RegisterDuration   prometheus.Histogram
	VerificationsTotal *prometheus.CounterVec
	DeletionsTotal     prometheus.Counter
	RedactedTotal      prometheus.Counter
}

// Outcome labels for Submissions
const (
	OutcomeAccepted  = "accepted"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
)

// New registers the application metrics on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "megheza_submissions_total",
			Help: "Registration submissions by outcome",
		}, []string{"outcome"}),
		RegisterDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "megheza_register_duration_seconds",
			Help:    "Duration of the validate, sanitize and persist pipeline",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		VerificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "megheza_verification_changes_total",
			Help: "Verification flag updates by new value",
		}, []string{"verified"}),
		DeletionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "megheza_applications_deleted_total",
			Help: "Applications deleted by an admin",
		}),
		RedactedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "megheza_press_cards_redacted_total",
			Help: "Press cards removed by the retention job",
		}),
	}
}

func (m *Metrics) IncrementSubmission(outcome string) {
	m.Submissions.WithLabelValues(outcome).Inc()
}

// ObserveRegister records the pipeline duration. Call with time.Now() at the start.
func (m *Metrics) ObserveRegister(start time.Time) {
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementVerification(verified bool) {
	label := "false"
	if verified {
		label = "true"
	}
	m.VerificationsTotal.WithLabelValues(label).Inc()
}

func (m *Metrics) IncrementDeletion() {
	m.DeletionsTotal.Inc()
}

func (m *Metrics) AddRedacted(n int) {
	m.RedactedTotal.Add(float64(n))
}
