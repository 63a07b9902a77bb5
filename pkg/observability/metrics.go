package observability

import (
	"context"

	"github.com/aretw0/ntm/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records trace and run outcomes.
type Metrics struct {
	registry *prometheus.Registry

	traces         *prometheus.CounterVec
	transitions    prometheus.Counter
	configurations prometheus.Counter
	depth          prometheus.Histogram
	degree         prometheus.Gauge
	duration       prometheus.Histogram

	runs  *prometheus.CounterVec
	steps prometheus.Counter
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		traces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ntm_runs_total",
				Help: "Total number of breadth-first traces by verdict",
			},
			[]string{"verdict"},
		),
		transitions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ntm_transitions_total",
			Help: "Total number of transitions simulated by traces",
		}),
		configurations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ntm_configurations_total",
			Help: "Total number of configurations examined by traces",
		}),
		depth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ntm_trace_depth",
			Help:    "Depth at which traces concluded",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		degree: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ntm_nondeterminism_degree",
			Help: "Nondeterminism degree of the most recent trace",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ntm_trace_duration_seconds",
			Help:    "Wall time of traces",
			Buckets: prometheus.DefBuckets,
		}),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ntm_dtm_runs_total",
				Help: "Total number of deterministic runs by verdict",
			},
			[]string{"verdict"},
		),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ntm_dtm_steps_total",
			Help: "Total number of deterministic steps executed",
		}),
	}
	m.registry.MustRegister(
		m.traces, m.transitions, m.configurations, m.depth, m.degree, m.duration,
		m.runs, m.steps,
	)
	return m
}

// Registry exposes the private registry, e.g. for promhttp or testutil.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records a finished trace.
func (m *Metrics) Observe(res *domain.TraceResult) {
	if res == nil {
		return
	}
	m.traces.WithLabelValues(string(res.Verdict)).Inc()
	m.transitions.Add(float64(res.Transitions))
	m.configurations.Add(float64(res.Examined))
	m.depth.Observe(float64(res.Depth))
	m.degree.Set(res.Degree)
}

// ObserveRun records a finished deterministic run.
func (m *Metrics) ObserveRun(res *domain.RunResult) {
	if res == nil {
		return
	}
	m.runs.WithLabelValues(string(res.Verdict)).Inc()
	m.steps.Add(float64(res.Steps))
}

// Hooks returns lifecycle hooks that feed the metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTraceFinished: func(_ context.Context, e *domain.TraceEvent) {
			m.Observe(e.Result)
			m.duration.Observe(e.Elapsed.Seconds())
		},
		OnRunFinished: func(_ context.Context, e *domain.RunEvent) {
			m.ObserveRun(e.Result)
		},
	}
}

// WriteTextfile writes the current values in the Prometheus text format to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
