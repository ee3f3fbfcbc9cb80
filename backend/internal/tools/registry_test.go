package tools

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"party-planner/backend/internal/constants"
	"party-planner/backend/internal/metrics"
	apperrors "party-planner/backend/pkg/errors"
)

// stubProvider is a minimal provider used to exercise registry dispatch
type stubProvider struct {
	domain string
	tools  []ToolDescriptor
	call   func(name string, args map[string]interface{}) (Result, error)
}

func (s *stubProvider) Domain() string                      { return s.domain }
func (s *stubProvider) ListTools() []ToolDescriptor         { return s.tools }
func (s *stubProvider) ListResources() []ResourceDescriptor { return nil }
func (s *stubProvider) ReadResource(context.Context, string) (string, error) {
	return "", apperrors.NewResourceNotFound("stub")
}
func (s *stubProvider) CallTool(_ context.Context, name string, args map[string]interface{}) (Result, error) {
	return s.call(name, args)
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewDefaultRegistry(WithLogger(zap.NewNop()))
	require.NoError(t, err)
	return r
}

func TestRegistry_ListToolsReflectsLateRegistration(t *testing.T) {
	r := newTestRegistry(t)
	assert.Len(t, r.ListTools()[constants.EventProviderName], 5)
	assert.NotContains(t, r.ListTools(), "stub")

	r.Register("stub", &stubProvider{domain: "misc", tools: []ToolDescriptor{{Name: "noop"}}})

	all := r.ListTools()
	require.Contains(t, all, "stub")
	assert.Equal(t, "noop", all["stub"][0].Name)
	assert.Equal(t, []string{constants.EventProviderName, "stub"}, r.Providers())
}

func TestRegistry_RegisterLastWriteWins(t *testing.T) {
	r := NewRegistry(WithLogger(zap.NewNop()))
	r.Register("p", &stubProvider{domain: "a", tools: []ToolDescriptor{{Name: "first"}}})
	r.Register("p", &stubProvider{domain: "b", tools: []ToolDescriptor{{Name: "second"}}})

	assert.Equal(t, []string{"p"}, r.Providers())
	assert.Equal(t, "second", r.ListTools()["p"][0].Name)
}

func TestRegistry_CallTool_UnknownProvider(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.CallTool(context.Background(), "nope", ToolSearchVenues, nil)

	var notFound *apperrors.ErrProviderNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope", notFound.Provider)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRegistry_CallTool_UnknownTool(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.CallTool(context.Background(), constants.EventProviderName, "book_flight", nil)

	var notFound *apperrors.ErrToolNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "book_flight", notFound.ToolName)
}

func TestRegistry_CallTool_PanicBecomesErrorResult(t *testing.T) {
	r := NewRegistry(WithLogger(zap.NewNop()))
	r.Register("boom", &stubProvider{domain: "misc", call: func(string, map[string]interface{}) (Result, error) {
		panic("kaboom")
	}})

	res, err := r.CallTool(context.Background(), "boom", "anything", nil)

	require.NoError(t, err)
	msg, failed := res.ErrorMessage()
	assert.True(t, failed)
	assert.Contains(t, msg, "kaboom")
}

func TestRegistry_CallTool_RecordsOutcomes(t *testing.T) {
	c := metrics.New(prometheus.NewRegistry())
	r, err := NewDefaultRegistry(WithLogger(zap.NewNop()), WithMetrics(c))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = r.CallTool(ctx, constants.EventProviderName, ToolCalculateBudget, map[string]interface{}{"guest_count": 10})
	require.NoError(t, err)
	_, err = r.CallTool(ctx, constants.EventProviderName, ToolCalculateBudget, map[string]interface{}{})
	require.NoError(t, err)
	_, _ = r.CallTool(ctx, "nope", ToolCalculateBudget, nil)

	calls := c.ToolCalls()
	assert.Equal(t, 1.0, testutil.ToFloat64(calls.WithLabelValues(constants.EventProviderName, ToolCalculateBudget, metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(calls.WithLabelValues(constants.EventProviderName, ToolCalculateBudget, metrics.OutcomeErrorResult)))
	assert.Equal(t, 1.0, testutil.ToFloat64(calls.WithLabelValues("nope", ToolCalculateBudget, metrics.OutcomeNotFound)))
}

func TestRegistry_ReadResource(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	doc, err := r.ReadResource(ctx, constants.EventProviderName, ResourceVenueDatabase)
	require.NoError(t, err)
	assert.Contains(t, doc, "Grand Hotel Ballroom")

	_, err = r.ReadResource(ctx, "nope", ResourceVenueDatabase)
	assert.True(t, apperrors.IsNotFound(err))

	resources := r.ListResources()[constants.EventProviderName]
	assert.Len(t, resources, 3)
}

func TestRegistry_RecommendTools(t *testing.T) {
	r := newTestRegistry(t)
	r.Register("plain", &stubProvider{domain: constants.EventDomain, tools: []ToolDescriptor{
		{Name: "noop", Description: "does nothing useful"},
	}})

	recs := r.RecommendTools(map[string]interface{}{"domain": constants.EventDomain, "guest_count": 20})
	require.Len(t, recs, 6)

	score := func(tool string) float64 {
		for _, rec := range recs {
			if rec.Tool.Name == tool {
				return rec.RelevanceScore
			}
		}
		t.Fatalf("tool %s not recommended", tool)
		return 0
	}

	// catering mentions guests, noop has no keyword overlap
	assert.Equal(t, 1.0, score(ToolGetCateringOptions))
	assert.Equal(t, 0.5, score("noop"))
	assert.Greater(t, score(ToolGetCateringOptions), score("noop"))
	assert.Equal(t, "noop", recs[len(recs)-1].Tool.Name)

	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].RelevanceScore, recs[i].RelevanceScore)
	}
}

func TestRegistry_RecommendTools_BudgetAndTies(t *testing.T) {
	r := newTestRegistry(t)

	recs := r.RecommendTools(map[string]interface{}{"domain": constants.EventDomain, "budget": 500000})
	require.Len(t, recs, 5)
	assert.Equal(t, ToolCalculateBudget, recs[0].Tool.Name)
	assert.Equal(t, 1.0, recs[0].RelevanceScore)

	// remaining tools tie at 0.8 and keep advertised order
	var rest []string
	for _, rec := range recs[1:] {
		assert.InDelta(t, 0.8, rec.RelevanceScore, 1e-9)
		rest = append(rest, rec.Tool.Name)
	}
	assert.Equal(t, []string{ToolSearchVenues, ToolGetCateringOptions, ToolCheckWeather, ToolGenerateTimeline}, rest)
}

func TestRegistry_RecommendTools_DomainMismatch(t *testing.T) {
	r := newTestRegistry(t)

	assert.Empty(t, r.RecommendTools(map[string]interface{}{"domain": "travel"}))
	assert.Empty(t, r.RecommendTools(map[string]interface{}{}))
}
