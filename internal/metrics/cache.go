package metrics

import "github.com/prometheus/client_golang/prometheus"

// CacheMetrics instruments the icon cache. It satisfies iconcache.Observer.
type CacheMetrics struct {
	Hits            prometheus.Counter
	Misses          prometheus.Counter
	LoadFailures    prometheus.Counter
	Evictions       prometheus.Counter
	EvictedBytes    prometheus.Counter
	ResidentBytes   prometheus.Gauge
	ResidentEntries prometheus.Gauge
}

// NewCacheMetrics creates and registers cache metrics on the given registry.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "icon_cache",
			Name:      "hits_total",
			Help:      "Total number of icon cache hits.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "icon_cache",
			Name:      "misses_total",
			Help:      "Total number of icon cache misses.",
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "icon_cache",
			Name:      "load_failures_total",
			Help:      "Total number of icon loads that produced no value.",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "icon_cache",
			Name:      "evictions_total",
			Help:      "Total number of entries evicted to stay within budget.",
		}),
		EvictedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "icon_cache",
			Name:      "evicted_bytes_total",
			Help:      "Total cost of evicted entries.",
		}),
		ResidentBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "icon_cache",
			Name:      "resident_bytes",
			Help:      "Cumulative cost of resident entries.",
		}),
		ResidentEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "icon_cache",
			Name:      "resident_entries",
			Help:      "Number of resident entries.",
		}),
	}

	reg.MustRegister(m.Hits, m.Misses, m.LoadFailures, m.Evictions, m.EvictedBytes, m.ResidentBytes, m.ResidentEntries)
	return m
}

func (m *CacheMetrics) Hit()        { m.Hits.Inc() }
func (m *CacheMetrics) Miss()       { m.Misses.Inc() }
func (m *CacheMetrics) LoadFailed() { m.LoadFailures.Inc() }

func (m *CacheMetrics) Evicted(cost int64) {
	m.Evictions.Inc()
	m.EvictedBytes.Add(float64(cost))
}

func (m *CacheMetrics) Resident(cost int64, entries int) {
	m.ResidentBytes.Set(float64(cost))
	m.ResidentEntries.Set(float64(entries))
}
