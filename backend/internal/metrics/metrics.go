package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Tool call outcomes
const (
	OutcomeOK          = "ok"
	OutcomeErrorResult = "error_result"
	OutcomeNotFound    = "not_found"
)

// Plan outcomes
const (
	PlanSucceeded = "succeeded"
	PlanFailed    = "failed"
)

// Collector groups the planner's Prometheus instruments. A nil *Collector is valid and records nothing.
type Collector struct {
	stageDuration *prometheus.HistogramVec
	toolCalls     *prometheus.CounterVec
	plans         *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "party_planner",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each planning pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 4, 8),
		}, []string{"stage"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "party_planner",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by provider, tool and outcome.",
		}, []string{"provider", "tool", "outcome"}),
		plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "party_planner",
			Name:      "plans_total",
			Help:      "Planning runs by outcome.",
		}, []string{"outcome"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "party_planner",
			Name:      "fallbacks_total",
			Help:      "Stages that degraded to static content.",
		}, []string{"stage"}),
	}
	reg.MustRegister(c.stageDuration, c.toolCalls, c.plans, c.fallbacks)
	return c
}

// ObserveStage records how long a stage took
func (c *Collector) ObserveStage(stage string, d time.Duration) {
	if c == nil {
		return
	}
	c.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ToolCall counts one tool invocation
func (c *Collector) ToolCall(provider, tool, outcome string) {
	if c == nil {
		return
	}
	c.toolCalls.WithLabelValues(provider, tool, outcome).Inc()
}

// Plan counts one finished planning run
func (c *Collector) Plan(outcome string) {
	if c == nil {
		return
	}
	c.plans.WithLabelValues(outcome).Inc()
}

// Fallback counts a stage that substituted default content
func (c *Collector) Fallback(stage string) {
	if c == nil {
		return
	}
	c.fallbacks.WithLabelValues(stage).Inc()
}

// ToolCalls exposes the tool call counter for tests and dashboards
func (c *Collector) ToolCalls() *prometheus.CounterVec { return c.toolCalls }

// Plans exposes the plan counter
func (c *Collector) Plans() *prometheus.CounterVec { return c.plans }

// Fallbacks exposes the fallback counter
func (c *Collector) Fallbacks() *prometheus.CounterVec { return c.fallbacks }
