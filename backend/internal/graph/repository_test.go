package graph

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"party-planner/backend/internal/state"
	apperrors "party-planner/backend/pkg/errors"
)

func TestSearchTerms(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"birthday Gangnam", []string{"birthday", "gangnam"}},
		{"  Birthday, birthday!! at a cafe ", []string{"birthday", "cafe"}},
		{"생일파티 강남", []string{"생일파티", "강남"}},
		{"a an of", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, searchTerms(tt.query))
		})
	}
}

func TestDefaultGuides_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, g := range DefaultGuides() {
		assert.False(t, seen[g.ID], "duplicate guide id %s", g.ID)
		seen[g.ID] = true
		assert.NotEmpty(t, g.Content)
	}
}

// The tests below require a running Neo4j instance.
// Set NEO4J_URI, NEO4J_USER and NEO4J_PASSWORD to run them.

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		t.Skip("NEO4J_URI not set")
	}
	user := os.Getenv("NEO4J_USER")
	if user == "" {
		user = "neo4j"
	}

	repo, err := Connect(context.Background(), uri, user, os.Getenv("NEO4J_PASSWORD"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.EnsureConstraints(context.Background()))
	return repo
}

func cleanup(t *testing.T, repo *Repository, cypher string, params map[string]interface{}) {
	t.Cleanup(func() {
		ctx := context.Background()
		session := repo.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
		defer session.Close(ctx)
		_, _ = session.Run(ctx, cypher, params)
	})
}

func TestRepository_SaveAndGetPlan(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	planID := "test-plan-" + time.Now().Format("20060102150405")
	cleanup(t, repo, "MATCH (p:Plan {id: $id}) DETACH DELETE p", map[string]interface{}{"id": planID})

	cost := decimal.NewFromInt(450000)
	rec := state.NewPlanningRecord(state.PlanRequest{
		EventType:  "birthday",
		GuestCount: 8,
		Date:       time.Date(2026, 5, 5, 12, 0, 0, 0, time.UTC),
		Location:   "Hongdae",
	})
	rec.PlanID = planID
	rec.OverallPlan = "Picnic with cake"
	rec.EstimatedCost = &cost
	rec.Tasks = []state.Task{{Title: "Book the venue", Priority: state.PriorityHigh, Deadline: "D-14"}}

	require.NoError(t, repo.SavePlan(ctx, rec))

	plan, err := repo.GetPlan(ctx, planID)
	require.NoError(t, err)
	assert.Equal(t, "birthday", plan.EventType)
	assert.Equal(t, 8, plan.GuestCount)
	assert.Equal(t, planID, plan.Result.PlanID)
	assert.Equal(t, "Picnic with cake", plan.Result.OverallPlan)
	require.NotNil(t, plan.Result.EstimatedCost)
	assert.Equal(t, 450000.0, *plan.Result.EstimatedCost)
	assert.True(t, plan.EventDate.Equal(rec.Date))
}

func TestRepository_GetPlan_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetPlan(context.Background(), "no-such-plan")

	var notFound *apperrors.ErrPlanNotFound
	require.ErrorAs(t, err, &notFound)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRepository_SeedAndSearch(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	guides := []Guide{
		{ID: "test-guide-rooftop", Title: "Rooftop birthday", Content: "Rooftop venues in Gangnam book out early", Category: "venue", Tags: []string{"rooftop"}},
		{ID: "test-guide-buffet", Title: "Buffet basics", Content: "Buffets suit large birthday groups", Category: "catering"},
	}
	cleanup(t, repo, "MATCH (g:Guide) WHERE g.id STARTS WITH 'test-guide-' DETACH DELETE g", nil)

	written, err := repo.SeedGuides(ctx, guides)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	snippets, err := repo.Search(ctx, "birthday rooftop Gangnam", 10)
	require.NoError(t, err)
	require.NotEmpty(t, snippets)
	assert.Equal(t, "Rooftop birthday", snippets[0].Title)
	assert.InDelta(t, 1.0, snippets[0].Score, 1e-9)

	all, err := repo.ListGuides(ctx)
	require.NoError(t, err)
	var rooftop *Guide
	for i := range all {
		if all[i].ID == "test-guide-rooftop" {
			rooftop = &all[i]
		}
	}
	require.NotNil(t, rooftop)
	assert.Equal(t, []string{"rooftop"}, rooftop.Tags)
}
