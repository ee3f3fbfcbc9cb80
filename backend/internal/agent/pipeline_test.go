package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"party-planner/backend/internal/adapter"
	"party-planner/backend/internal/metrics"
	"party-planner/backend/internal/state"
	"party-planner/backend/internal/tools"
	apperrors "party-planner/backend/pkg/errors"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// fakeModel answers by system prompt so each stage gets a recognizable reply
type fakeModel struct {
	mu       sync.Mutex
	tasks    string
	failOn   string
	prompts  []string
	received [][]state.Message
}

func (m *fakeModel) Complete(_ context.Context, messages []state.Message) (*adapter.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received = append(m.received, messages)
	system := messages[0].Content
	m.prompts = append(m.prompts, system)

	if m.failOn != "" && system == m.failOn {
		return nil, apperrors.NewAgentLLMFailed("fake", errors.New("model offline"))
	}
	switch system {
	case requirementsSystemPrompt:
		return &adapter.Response{Content: "Analysis: relaxed birthday dinner"}, nil
	case planSystemPrompt:
		return &adapter.Response{Content: "Plan: rooftop dinner with a cake"}, nil
	case tasksSystemPrompt:
		return &adapter.Response{Content: m.tasks}, nil
	}
	return nil, fmt.Errorf("unexpected prompt %q", system)
}

// fakeTools records calls and returns a canned outcome
type fakeTools struct {
	mu     sync.Mutex
	err    error
	result tools.Result
	calls  map[string]map[string]interface{}
}

func (f *fakeTools) CallTool(_ context.Context, _, tool string, args map[string]interface{}) (tools.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]map[string]interface{})
	}
	f.calls[tool] = args
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return tools.Result{"ok": true}, nil
}

type fakeKnowledge struct {
	snippets []state.KnowledgeSnippet
	err      error
	query    string
}

func (f *fakeKnowledge) Search(_ context.Context, query string, _ int) ([]state.KnowledgeSnippet, error) {
	f.query = query
	return f.snippets, f.err
}

type fakeArchive struct {
	saved []state.PlanningRecord
	err   error
}

func (f *fakeArchive) SavePlan(_ context.Context, rec state.PlanningRecord) error {
	f.saved = append(f.saved, rec)
	return f.err
}

func newTestPipeline(t *testing.T, model Model, opts ...Option) *Pipeline {
	t.Helper()
	registry, err := tools.NewDefaultRegistry(tools.WithLogger(zap.NewNop()))
	require.NoError(t, err)
	base := []Option{
		WithLogger(zap.NewNop()),
		WithClock(func() time.Time { return testNow }),
	}
	return NewPipeline(model, registry, append(base, opts...)...)
}

func birthdayRequest(daysOut int) state.PlanRequest {
	budget := decimal.NewFromInt(800000)
	return state.PlanRequest{
		EventType:           "birthday",
		Budget:              &budget,
		GuestCount:          12,
		Date:                testNow.Add(time.Duration(daysOut) * 24 * time.Hour),
		Location:            "Gangnam",
		DietaryRestrictions: []string{"vegetarian", "nut-free"},
	}
}

func TestCreatePartyPlan_EndToEnd(t *testing.T) {
	model := &fakeModel{tasks: "```json\n" + twoTasks + "\n```"}
	archive := &fakeArchive{}
	collector := metrics.New(prometheus.NewRegistry())
	p := newTestPipeline(t, model, WithArchive(archive), WithMetrics(collector))

	first, err := p.CreatePartyPlan(context.Background(), birthdayRequest(20))
	require.NoError(t, err)
	second, err := p.CreatePartyPlan(context.Background(), birthdayRequest(20))
	require.NoError(t, err)

	assert.NotEmpty(t, first.PlanID)
	assert.NotEqual(t, first.PlanID, second.PlanID)
	assert.Equal(t, "Plan: rooftop dinner with a cake", first.OverallPlan)
	assert.Equal(t, wantTwoTasks, first.Tasks)

	// 12 guests at the birthday rate plus the 30-guest venue tier
	require.NotNil(t, first.EstimatedCost)
	assert.Equal(t, 600000.0, *first.EstimatedCost)

	var labels []string
	for _, entry := range first.Timeline {
		labels = append(labels, entry.DayDescription)
	}
	assert.Equal(t, []string{"D-14", "D-7", "D-3", "D-1", "D-Day"}, labels)

	require.Len(t, first.Recommendations, 4)
	assert.Contains(t, first.Recommendations[3].Suggestion, "vegetarian, nut-free")

	require.Len(t, archive.saved, 2)
	assert.Equal(t, first.PlanID, archive.saved[0].PlanID)
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.Plans().WithLabelValues(metrics.PlanSucceeded)))
}

func TestRun_TraceAndStepProgression(t *testing.T) {
	model := &fakeModel{tasks: twoTasks}
	p := newTestPipeline(t, model)

	final, err := p.Run(context.Background(), state.NewPlanningRecord(birthdayRequest(10)))
	require.NoError(t, err)

	assert.Equal(t, state.StepPlanFinalized, final.CurrentStep)
	assert.Equal(t, 1, final.IterationCount)
	assert.Len(t, final.Messages, 9)
	assert.Equal(t, []string{requirementsSystemPrompt, planSystemPrompt, tasksSystemPrompt}, model.prompts)

	// the plan prompt carries the analysis and the tool results
	planHuman := model.received[1][1].Content
	assert.Contains(t, planHuman, "Analysis: relaxed birthday dinner")
	assert.Contains(t, planHuman, "Recommended venues")
	assert.Contains(t, planHuman, "Budget bands")
}

func TestRun_ModelFailureFailsThePlan(t *testing.T) {
	archive := &fakeArchive{}
	collector := metrics.New(prometheus.NewRegistry())
	p := newTestPipeline(t, &fakeModel{failOn: planSystemPrompt}, WithArchive(archive), WithMetrics(collector))

	result, err := p.CreatePartyPlan(context.Background(), birthdayRequest(10))

	assert.Nil(t, result)
	var planErr *apperrors.ErrPlanningFailed
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, "generate_plan", planErr.Stage)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeAgent))
	assert.Empty(t, archive.saved)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Plans().WithLabelValues(metrics.PlanFailed)))
}

func TestRun_CancelledBetweenStages(t *testing.T) {
	model := &fakeModel{tasks: twoTasks}
	p := newTestPipeline(t, model)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec, err := p.Run(ctx, state.NewPlanningRecord(birthdayRequest(10)))

	var planErr *apperrors.ErrPlanningFailed
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, "analyze_requirements", planErr.Stage)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeContext))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, state.StepStart, rec.CurrentStep)
	assert.Empty(t, model.prompts)
}

func TestCreatePartyPlan_InvalidRequest(t *testing.T) {
	p := newTestPipeline(t, &fakeModel{})
	req := birthdayRequest(10)
	req.GuestCount = 0

	_, err := p.CreatePartyPlan(context.Background(), req)

	var invalid state.ErrInvalidRequest
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "guest_count", invalid.Field)
}

func TestCreatePartyPlan_ArchiveFailureIsNotFatal(t *testing.T) {
	p := newTestPipeline(t, &fakeModel{tasks: twoTasks}, WithArchive(&fakeArchive{err: errors.New("graph down")}))

	result, err := p.CreatePartyPlan(context.Background(), birthdayRequest(10))

	require.NoError(t, err)
	assert.NotEmpty(t, result.PlanID)
}

func TestCreateTasks_UnparsableOutputUsesDefaults(t *testing.T) {
	collector := metrics.New(prometheus.NewRegistry())
	p := newTestPipeline(t, &fakeModel{tasks: "Tasks: [{task: book venue, priority: high"}, WithMetrics(collector))
	rec := state.NewPlanningRecord(birthdayRequest(10))
	rec.OverallPlan = "Plan"

	out, err := p.createTasks(context.Background(), rec)

	require.NoError(t, err)
	assert.Equal(t, DefaultTasks(), out.Tasks)
	assert.Equal(t, state.StepTasksCreated, out.CurrentStep)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Fallbacks().WithLabelValues("create_tasks")))
}

func TestSearchKnowledge_ToolFailureFallsBackToGuide(t *testing.T) {
	tests := []struct {
		name  string
		tools *fakeTools
	}{
		{"call error", &fakeTools{err: apperrors.NewProviderNotFound("event_planning")}},
		{"error result", &fakeTools{result: tools.Result{"error": "catalog offline"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := metrics.New(prometheus.NewRegistry())
			p := NewPipeline(&fakeModel{}, tt.tools, WithLogger(zap.NewNop()), WithMetrics(collector))

			out, err := p.searchKnowledge(context.Background(), state.NewPlanningRecord(birthdayRequest(10)))

			require.NoError(t, err)
			assert.Equal(t, planningGuide, out.KnowledgeContext)
			assert.Equal(t, state.StepKnowledgeSearched, out.CurrentStep)
			assert.Equal(t, 1.0, testutil.ToFloat64(collector.Fallbacks().WithLabelValues("search_knowledge")))
		})
	}
}

func TestSearchKnowledge_ToolArguments(t *testing.T) {
	ft := &fakeTools{}
	p := NewPipeline(&fakeModel{}, ft, WithLogger(zap.NewNop()))

	_, err := p.searchKnowledge(context.Background(), state.NewPlanningRecord(birthdayRequest(10)))
	require.NoError(t, err)

	venue := ft.calls[tools.ToolSearchVenues]
	assert.Equal(t, "Gangnam", venue["location"])
	assert.Equal(t, 12, venue["capacity"])
	assert.Equal(t, 800000.0, venue["budget_max"])

	catering := ft.calls[tools.ToolGetCateringOptions]
	assert.Equal(t, 66666.67, catering["budget_per_person"])
	assert.Equal(t, []string{"vegetarian", "nut-free"}, catering["dietary_restrictions"])

	budget := ft.calls[tools.ToolCalculateBudget]
	assert.Equal(t, "birthday", budget["party_type"])

	// no budget or location: optional arguments are omitted
	req := birthdayRequest(10)
	req.Budget = nil
	req.Location = ""
	req.DietaryRestrictions = nil
	_, err = p.searchKnowledge(context.Background(), state.NewPlanningRecord(req))
	require.NoError(t, err)

	assert.Equal(t, "Seoul", ft.calls[tools.ToolSearchVenues]["location"])
	assert.NotContains(t, ft.calls[tools.ToolSearchVenues], "budget_max")
	assert.NotContains(t, ft.calls[tools.ToolGetCateringOptions], "budget_per_person")
	assert.NotContains(t, ft.calls[tools.ToolGetCateringOptions], "dietary_restrictions")
}

func TestSearchKnowledge_MergesSnippets(t *testing.T) {
	ks := &fakeKnowledge{snippets: []state.KnowledgeSnippet{
		{Title: "Rooftop venues", Content: "Book rooftops early in spring.", Score: 2},
	}}
	p := newTestPipeline(t, &fakeModel{}, WithKnowledgeSource(ks))

	out, err := p.searchKnowledge(context.Background(), state.NewPlanningRecord(birthdayRequest(10)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.KnowledgeContext, "== Live tool results =="))
	assert.Contains(t, out.KnowledgeContext, "[Rooftop venues] Book rooftops early in spring.")
	assert.Equal(t, "birthday Gangnam", ks.query)

	ks.err = errors.New("graph down")
	out, err = p.searchKnowledge(context.Background(), state.NewPlanningRecord(birthdayRequest(10)))
	require.NoError(t, err)
	assert.NotContains(t, out.KnowledgeContext, "Reference notes")
}

func TestEstimateCosts(t *testing.T) {
	budget := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}

	tests := []struct {
		name      string
		eventType string
		guests    int
		budget    *decimal.Decimal
		want      int64
	}{
		{"unknown type uses default rate", "picnic", 15, nil, 30000*15 + 300000},
		{"budget below estimate caps the total", "picnic", 15, budget(500000), 500000},
		{"budget above estimate leaves it", "picnic", 15, budget(2000000), 750000},
		{"zero budget is ignored", "picnic", 15, budget(0), 750000},
		{"small birthday", "birthday", 10, nil, 25000*10 + 100000},
		{"korean alias", "결혼기념일", 40, nil, 60000*40 + 500000},
		{"large corporate", "Corporate", 80, nil, 45000*80 + 1000000},
		{"graduation at tier edge", "graduation", 30, nil, 20000*30 + 300000},
	}
	p := NewPipeline(&fakeModel{}, &fakeTools{}, WithLogger(zap.NewNop()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := state.NewPlanningRecord(state.PlanRequest{EventType: tt.eventType, GuestCount: tt.guests, Budget: tt.budget, Date: testNow})

			out, err := p.estimateCosts(context.Background(), rec)

			require.NoError(t, err)
			require.NotNil(t, out.EstimatedCost)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(*out.EstimatedCost), "got %s", out.EstimatedCost)
			assert.Equal(t, state.StepCostsEstimated, out.CurrentStep)
		})
	}
}

func TestCreateTimeline_LeadTimes(t *testing.T) {
	tests := []struct {
		name   string
		offset time.Duration
		want   []string
	}{
		{"20 days out", 20 * 24 * time.Hour, []string{"D-14", "D-7", "D-3", "D-1", "D-Day"}},
		{"exactly 14 days", 14 * 24 * time.Hour, []string{"D-14", "D-7", "D-3", "D-1", "D-Day"}},
		{"13 days and 23 hours", 14*24*time.Hour - time.Hour, []string{"D-7", "D-3", "D-1", "D-Day"}},
		{"5 days out", 5 * 24 * time.Hour, []string{"D-3", "D-1", "D-Day"}},
		{"today", 0, []string{"D-Day"}},
		{"later today", 6 * time.Hour, []string{"D-Day"}},
		{"already past", -3 * 24 * time.Hour, []string{"D-Day"}},
	}
	p := NewPipeline(&fakeModel{}, &fakeTools{}, WithLogger(zap.NewNop()), WithClock(func() time.Time { return testNow }))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := state.NewPlanningRecord(state.PlanRequest{EventType: "birthday", GuestCount: 5, Date: testNow.Add(tt.offset)})

			out, err := p.createTimeline(context.Background(), rec)

			require.NoError(t, err)
			var labels []string
			for _, entry := range out.Timeline {
				labels = append(labels, entry.DayDescription)
				assert.Len(t, entry.Tasks, 3)
			}
			assert.Equal(t, tt.want, labels)
		})
	}
}

func TestCreateTimeline_DatesAndPriorities(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	eventDate, err := state.ParseDate("2026-03-22", seoul)
	require.NoError(t, err)

	p := NewPipeline(&fakeModel{}, &fakeTools{}, WithLogger(zap.NewNop()), WithClock(func() time.Time { return testNow }))
	rec := state.NewPlanningRecord(state.PlanRequest{
		EventType:  "birthday",
		GuestCount: 5,
		Date:       eventDate,
	})

	out, err := p.createTimeline(context.Background(), rec)
	require.NoError(t, err)
	require.Len(t, out.Timeline, 5)

	// Midnight in Seoul is the previous day in UTC; dates stay on the calendar day requested
	assert.Equal(t, "2026-03-08", out.Timeline[0].Date)
	assert.Equal(t, "2026-03-22", out.Timeline[4].Date)

	var priorities []state.Priority
	for _, entry := range out.Timeline {
		priorities = append(priorities, entry.Priority)
	}
	assert.Equal(t, []state.Priority{
		state.PriorityHigh, state.PriorityHigh, state.PriorityMedium, state.PriorityHigh, state.PriorityCritical,
	}, priorities)
}

func TestPrompts_UseRequestedCalendarDate(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	eventDate, err := state.ParseDate("2026-11-07", seoul)
	require.NoError(t, err)

	rec := state.NewPlanningRecord(state.PlanRequest{EventType: "birthday", GuestCount: 5, Date: eventDate})

	assert.Contains(t, requirementsBrief(rec), "Date: November 7, 2026")
	assert.Contains(t, tasksPrompt(rec), "Event date: November 7, 2026")
}

func TestFinalizePlan(t *testing.T) {
	ids := []string{"plan-1", "plan-2"}
	p := NewPipeline(&fakeModel{}, &fakeTools{}, WithLogger(zap.NewNop()), WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	plain := state.NewPlanningRecord(state.PlanRequest{EventType: "birthday", GuestCount: 5, Date: testNow})
	out, err := p.finalizePlan(context.Background(), plain)
	require.NoError(t, err)
	assert.Len(t, out.Recommendations, 3)
	assert.Equal(t, "plan-1", out.PlanID)
	assert.True(t, out.CurrentStep.Terminal())
	assert.Empty(t, plain.PlanID)

	diet := plain
	diet.DietaryRestrictions = []string{"halal"}
	out, err = p.finalizePlan(context.Background(), diet)
	require.NoError(t, err)
	require.Len(t, out.Recommendations, 4)
	assert.Equal(t, state.PriorityHigh, out.Recommendations[3].Priority)
	assert.Contains(t, out.Recommendations[3].Suggestion, "halal")
	assert.Equal(t, "plan-2", out.PlanID)
}
