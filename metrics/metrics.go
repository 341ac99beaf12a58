// Package metrics wraps a Prometheus registry with namespacing helpers
// and provides collectors for the lifecycle package.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/RedWinterDawn/myco-commons-sub001/lifecycle"
)

// Registry is a namespacing wrapper around a Prometheus registerer.
// Every metric created through it carries the configured namespace.
type Registry struct {
	reg       prometheus.Registerer
	namespace string
}

// New creates a Registry wrapping the provided registerer. If reg is
// nil, the Prometheus default registerer is used.
func New(reg prometheus.Registerer, namespace string) *Registry {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Registry{reg: reg, namespace: namespace}
}

// Counter creates and registers a namespaced counter.
func (r *Registry) Counter(name, help string) prometheus.Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      name,
		Help:      help,
	})
	r.reg.MustRegister(c)
	return c
}

// Gauge creates and registers a namespaced gauge.
func (r *Registry) Gauge(name, help string) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      name,
		Help:      help,
	})
	r.reg.MustRegister(g)
	return g
}

// Histogram creates and registers a namespaced histogram. If buckets is
// nil, the Prometheus defaults are used.
func (r *Registry) Histogram(name, help string,
	buckets []float64) prometheus.Histogram {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	})
	r.reg.MustRegister(h)
	return h
}

// StageCollector counts lifecycle stage transitions by resource name and
// target stage. It implements lifecycle.StageListener; register it on
// any watchable resource.
type StageCollector struct {
	transitions *prometheus.CounterVec
}

// NewStageCollector creates a StageCollector registered on r.
func NewStageCollector(r *Registry) *StageCollector {
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "lifecycle_transitions_total",
		Help:      "Total number of lifecycle stage transitions.",
	}, []string{"name", "stage"})
	r.reg.MustRegister(transitions)
	return &StageCollector{transitions: transitions}
}

// StageChanged implements lifecycle.StageListener.
func (c *StageCollector) StageChanged(t lifecycle.Transition) {
	c.transitions.WithLabelValues(t.Name, t.To.String()).Inc()
}
