package swap

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "zram_manager"

// Metrics are the prometheus collectors updated by the controller
type Metrics struct {
	ticks           *prometheus.CounterVec
	devices         prometheus.Gauge
	availableMemory prometheus.Gauge
	backendFailures *prometheus.CounterVec
	cacheDrops      *prometheus.CounterVec
	retirements     *prometheus.CounterVec
}

// NewMetrics creates the controller collectors and registers them with reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ticks_total",
			Help:      "Control loop ticks by action taken.",
		}, []string{"action"}),
		devices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "devices",
			Help:      "Active swap devices seen on the last tick.",
		}),
		availableMemory: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "available_memory_bytes",
			Help:      "Available RAM plus free swap seen on the last tick.",
		}),
		backendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "backend_failures_total",
			Help:      "Failed device backend operations.",
		}, []string{"op"}),
		cacheDrops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_drops_total",
			Help:      "Page cache drop attempts by result.",
		}, []string{"result"}),
		retirements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "retirements_total",
			Help:      "Swap device retirements started, by mode.",
		}, []string{"mode"}),
	}

	if reg != nil {
		reg.MustRegister(m.ticks, m.devices, m.availableMemory, m.backendFailures, m.cacheDrops, m.retirements)
	}

	return m
}

func (m *Metrics) observeTick(report TickReport) {
	m.ticks.WithLabelValues(string(report.Action)).Inc()
	if report.Snapshot != nil {
		m.availableMemory.Set(float64(report.AvailableMemory))
	}
}

func (m *Metrics) observeDevices(n int) {
	m.devices.Set(float64(n))
}

func (m *Metrics) observeBackendFailure(op string) {
	m.backendFailures.WithLabelValues(op).Inc()
}

func (m *Metrics) observeCacheDrop(ok bool) {
	result := "failed"
	if ok {
		result = "ok"
	}
	m.cacheDrops.WithLabelValues(result).Inc()
}

func (m *Metrics) observeRetirement(async bool) {
	mode := "sync"
	if async {
		mode = "async"
	}
	m.retirements.WithLabelValues(mode).Inc()
}
