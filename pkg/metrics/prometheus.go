package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerOutcomes *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	totalScore       prometheus.Histogram
	errorsTotal      *prometheus.CounterVec
}

// NewWithRegisterer creates a recorder registered on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		providerOutcomes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "travelpulse_provider_outcomes_total",
				Help: "Signal provider results by outcome (found, absent, failed)",
			},
			[]string{"signal", "outcome"},
		),
		providerLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "travelpulse_provider_duration_seconds",
				Help:    "Duration of signal provider calls in seconds",
				Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"signal"},
		),
		totalScore: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "travelpulse_total_score",
				Help:    "Distribution of computed travel feasibility scores",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "travelpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordProviderOutcome counts one provider result.
func (r *Recorder) RecordProviderOutcome(signal, outcome string) {
	r.providerOutcomes.WithLabelValues(signal, outcome).Inc()
}

// RecordProviderLatency records provider call latency in seconds.
func (r *Recorder) RecordProviderLatency(signal string, seconds float64) {
	r.providerLatency.WithLabelValues(signal).Observe(seconds)
}

// RecordScore records a computed total score.
func (r *Recorder) RecordScore(score int) {
	r.totalScore.Observe(float64(score))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// Noop discards everything.
type Noop struct{}

func (Noop) RecordProviderOutcome(string, string) {}
func (Noop) RecordProviderLatency(string, float64) {}
func (Noop) RecordScore(int) {}
func (Noop) RecordError(string) {}
