// Package metrics exposes Prometheus collectors for the analysis pipeline:
// terminal job counts, per-stage durations, and LLM request outcomes. Each
// Metrics value owns its registry so tests and embedded uses never collide
// with the global default.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/semreview/llm"
	"github.com/c360studio/semreview/workflow"
)

const namespace = "semreview"

// Metrics bundles the pipeline's Prometheus collectors.
type Metrics struct {
	registry      *prometheus.Registry
	jobsTotal     *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	llmRequests   *prometheus.CounterVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		jobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Analysis jobs by terminal status.",
		}, []string{"status"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall-clock time spent in each pipeline stage.",
			// Stages block on model completions, so the range runs from
			// sub-second cache hits up to multi-minute synthesis calls.
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 12),
		}, []string{"stage"}),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Completion endpoint attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
	}
	m.registry.MustRegister(m.jobsTotal, m.stageDuration, m.llmRequests)
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RequestObserver adapts the collectors to the LLM client's per-attempt
// hook.
func (m *Metrics) RequestObserver() llm.RequestObserver {
	return func(provider string, err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		m.llmRequests.WithLabelValues(provider, outcome).Inc()
	}
}

// StageCollector returns an observer that translates pipeline transitions
// into job counts and stage durations. One collector serves any number of
// concurrent pipelines.
func (m *Metrics) StageCollector() *StageCollector {
	return &StageCollector{
		metrics: m,
		entered: make(map[string]time.Time),
	}
}

// StageCollector implements the pipeline's transition observer. A stage's
// duration is the wall-clock span between entering it and the transition
// that leaves it.
type StageCollector struct {
	metrics *Metrics

	mu      sync.Mutex
	entered map[string]time.Time
}

// OnTransition records the transition.
func (c *StageCollector) OnTransition(t workflow.Transition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if started, ok := c.entered[t.JobID]; ok {
		if stage := t.From.Stage(); stage != "" {
			c.metrics.stageDuration.WithLabelValues(stage).Observe(t.At.Sub(started).Seconds())
		}
	}

	switch t.To {
	case workflow.StateCompleted:
		c.metrics.jobsTotal.WithLabelValues("completed").Inc()
		delete(c.entered, t.JobID)
	case workflow.StateFailed:
		c.metrics.jobsTotal.WithLabelValues("failed").Inc()
		delete(c.entered, t.JobID)
	default:
		c.entered[t.JobID] = t.At
	}
}
