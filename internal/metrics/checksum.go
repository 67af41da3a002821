package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChecksumMetrics counts checksum attempts
type ChecksumMetrics struct {
	Attempts prometheus.Counter
	Retries  prometheus.Counter
}

// NewChecksumMetrics creates and registers checksum metrics on the given registry.
func NewChecksumMetrics(reg prometheus.Registerer) *ChecksumMetrics {
	m := &ChecksumMetrics{
		Attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checksum",
			Name:      "attempts_total",
			Help:      "Total number of checksum attempts, first attempts included.",
		}),
		Retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checksum",
			Name:      "retries_total",
			Help:      "Total number of checksum attempts after a failure.",
		}),
	}

	reg.MustRegister(m.Attempts, m.Retries)
	return m
}

// OnAttempt is a retry.AttemptFunc
func (m *ChecksumMetrics) OnAttempt(attempt, _ int) {
	m.Attempts.Inc()
	if attempt > 1 {
		m.Retries.Inc()
	}
}
