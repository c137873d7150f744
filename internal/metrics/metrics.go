package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/agbru/reducecalc/internal/calculator"
)

// Token outcome label values.
const (
	OutcomeParsed  = "parsed"
	OutcomeCoerced = "coerced"
	OutcomeDropped = "dropped"
)

// Metrics collects calculator statistics on a private Prometheus registry.
// It implements calculator.Recorder and is safe for concurrent use.
type Metrics struct {
	registry *prometheus.Registry

	evaluations *prometheus.CounterVec
	tokens      *prometheus.CounterVec
	emptyInputs prometheus.Counter
	values      prometheus.Histogram
}

var _ calculator.Recorder = (*Metrics)(nil)

// NewMetrics creates a Metrics instance with its own registry, so several
// instances (one per test, for example) never collide on registration.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reducecalc_evaluations_total",
			Help: "Number of inputs evaluated, by reduction strategy.",
		}, []string{"strategy"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reducecalc_tokens_total",
			Help: "Number of tokens seen, by outcome.",
		}, []string{"outcome"}),
		emptyInputs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reducecalc_empty_inputs_total",
			Help: "Number of empty inputs answered without consulting a strategy.",
		}),
		values: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reducecalc_values_per_input",
			Help:    "Number of numeric values folded per input.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	reg.MustRegister(
		m.evaluations,
		m.tokens,
		m.emptyInputs,
		m.values,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveEvaluation records one calculator evaluation.
func (m *Metrics) ObserveEvaluation(ev calculator.Evaluation) {
	m.evaluations.WithLabelValues(ev.Strategy).Inc()
	if ev.ShortCircuit {
		m.emptyInputs.Inc()
		return
	}
	m.tokens.WithLabelValues(OutcomeParsed).Add(float64(ev.Parsed()))
	m.tokens.WithLabelValues(OutcomeCoerced).Add(float64(len(ev.Coerced)))
	m.tokens.WithLabelValues(OutcomeDropped).Add(float64(ev.Dropped))
	m.values.Observe(float64(len(ev.Values)))
}

// WriteTextfile writes the current metrics to path, in the format read by
// the node_exporter textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
