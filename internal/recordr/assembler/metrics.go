package assembler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Payload outcomes reported by ParseRecord.
const (
	OutcomeParsed  = "parsed"
	OutcomeInvalid = "invalid"
	OutcomeNull    = "null"
	OutcomeError   = "error"
)

// Metrics holds the Prometheus collectors for record assembly. A nil *Metrics
// is valid and records nothing. One Metrics may be shared by many assemblers.
type Metrics struct {
	payloadsTotal    *prometheus.CounterVec // by outcome
	intParseFailures *prometheus.CounterVec // by field
	assemblyDuration prometheus.Histogram
}

// NewMetrics creates the assembler collectors and registers them with reg.
// A nil registerer disables metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil // Metrics disabled
	}

	m := &Metrics{
		payloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recordr",
			Subsystem: "assembler",
			Name:      "payloads_total",
			Help:      "Payloads handed to the record assembler, by outcome",
		}, []string{"outcome"}), // outcome: parsed, invalid, null, error

		intParseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recordr",
			Subsystem: "assembler",
			Name:      "int_parse_failures_total",
			Help:      "Integer fields that resolved to a non-numeric value and fell back to their default",
		}, []string{"field"}),

		assemblyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "recordr",
			Subsystem: "assembler",
			Name:      "assembly_duration_seconds",
			Help:      "Time spent turning one payload into a record",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
	}

	for _, c := range []prometheus.Collector{m.payloadsTotal, m.intParseFailures, m.assemblyDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordOutcome(outcome string, started time.Time) {
	if m == nil {
		return
	}

	m.payloadsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeParsed {
		m.assemblyDuration.Observe(time.Since(started).Seconds())
	}
}

func (m *Metrics) recordIntParseFailure(field string) {
	if m == nil {
		return
	}

	m.intParseFailures.WithLabelValues(field).Inc()
}
