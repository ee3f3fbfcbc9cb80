package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_Counts(t *testing.T) {
	c := New(prometheus.NewRegistry())

	c.ToolCall("event_planning", "search_venues", OutcomeOK)
	c.ToolCall("event_planning", "search_venues", OutcomeOK)
	c.Plan(PlanFailed)
	c.Fallback("create_tasks")
	c.ObserveStage("estimate_costs", 3*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ToolCalls().WithLabelValues("event_planning", "search_venues", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Plans().WithLabelValues(PlanFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Fallbacks().WithLabelValues("create_tasks")))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ToolCall("p", "t", OutcomeOK)
		c.Plan(PlanSucceeded)
		c.Fallback("search_knowledge")
		c.ObserveStage("finalize_plan", time.Second)
	})
}
