package govern

import "github.com/prometheus/client_golang/prometheus"

// supervisorMetrics exposes worker count, restart count, and running
// state as Prometheus collectors. Every supervisor owns its own collector
// instances (no package globals). The workers and running gauges follow
// Len and Running. The restarts counter is not RestartCount: it counts
// every respawned execution (several per OneForAll/RestForOne restart)
// and is never reset, while RestartCount reports the ledger's current
// window and drops to zero on Stop.
type supervisorMetrics struct {
	workers  prometheus.Gauge
	restarts prometheus.Counter
	running  prometheus.Gauge
}

func newSupervisorMetrics(reg prometheus.Registerer, name string) *supervisorMetrics {
	if reg == nil {
		return nil
	}

	labels := prometheus.Labels{"supervisor": name}
	m := &supervisorMetrics{
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "govern",
			Subsystem:   "supervisor",
			Name:        "workers",
			Help:        "Number of children currently registered.",
			ConstLabels: labels,
		}),
		restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "govern",
			Subsystem:   "supervisor",
			Name:        "restarts_total",
			Help:        "Number of child restarts performed.",
			ConstLabels: labels,
		}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "govern",
			Subsystem:   "supervisor",
			Name:        "running",
			Help:        "1 if the supervisor is running, 0 if stopped.",
			ConstLabels: labels,
		}),
	}

	// Register best-effort: a duplicate registration (e.g. two
	// supervisors sharing a name against the same registerer) must not
	// prevent the supervisor itself from starting.
	for _, c := range []prometheus.Collector{m.workers, m.restarts, m.running} {
		_ = reg.Register(c)
	}
	return m
}

func (m *supervisorMetrics) setWorkers(n int) {
	if m == nil {
		return
	}
	m.workers.Set(float64(n))
}

func (m *supervisorMetrics) setRunning(running bool) {
	if m == nil {
		return
	}
	if running {
		m.running.Set(1)
	} else {
		m.running.Set(0)
	}
}

func (m *supervisorMetrics) incRestarts() {
	if m == nil {
		return
	}
	m.restarts.Inc()
}
