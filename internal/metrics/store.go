package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ytget/app-inspector/internal/store"
)

// StoreMetrics instruments the screen stores, labelled by screen
type StoreMetrics struct {
	Applied   *prometheus.CounterVec
	Conflicts *prometheus.CounterVec
	Dropped   *prometheus.CounterVec
}

// NewStoreMetrics creates and registers store metrics on the given registry.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		Applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "events_applied_total",
			Help:      "Total number of events applied, by screen and event.",
		}, []string{"screen", "event"}),
		Conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "cas_conflicts_total",
			Help:      "Total number of compare-and-swap retries, by screen.",
		}, []string{"screen"}),
		Dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "notifications_dropped_total",
			Help:      "Total number of notifications dropped from full listener buffers, by screen.",
		}, []string{"screen"}),
	}

	reg.MustRegister(m.Applied, m.Conflicts, m.Dropped)
	return m
}

// ForScreen returns a store observer that labels everything with screen
func (m *StoreMetrics) ForScreen(screen string) store.Observer {
	return &screenObserver{
		metrics:   m,
		screen:    screen,
		conflicts: m.Conflicts.WithLabelValues(screen),
		dropped:   m.Dropped.WithLabelValues(screen),
	}
}

type screenObserver struct {
	metrics   *StoreMetrics
	screen    string
	conflicts prometheus.Counter
	dropped   prometheus.Counter
}

func (o *screenObserver) Applied(event string) {
	o.metrics.Applied.WithLabelValues(o.screen, event).Inc()
}

func (o *screenObserver) Conflict() { o.conflicts.Inc() }
func (o *screenObserver) Dropped()  { o.dropped.Inc() }
