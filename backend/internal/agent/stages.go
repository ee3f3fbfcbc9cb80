package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"party-planner/backend/internal/constants"
	"party-planner/backend/internal/state"
	"party-planner/backend/internal/tools"
)

// ask sends one system+human exchange and appends it, with the reply, to the trace
func (p *Pipeline) ask(ctx context.Context, rec *state.PlanningRecord, system, human string) (string, error) {
	exchange := []state.Message{
		{Role: state.RoleSystem, Content: system},
		{Role: state.RoleHuman, Content: human},
	}
	resp, err := p.model.Complete(ctx, exchange)
	if err != nil {
		return "", err
	}
	rec.Messages = append(rec.Messages, exchange...)
	rec.Messages = append(rec.Messages, state.Message{Role: state.RoleAssistant, Content: resp.Content})
	return resp.Content, nil
}

func (p *Pipeline) analyzeRequirements(ctx context.Context, rec state.PlanningRecord) (state.PlanningRecord, error) {
	if _, err := p.ask(ctx, &rec, requirementsSystemPrompt, requirementsBrief(rec)); err != nil {
		return rec, err
	}
	rec.CurrentStep = state.StepRequirementsAnalyzed
	rec.IterationCount++
	return rec, nil
}

// searchKnowledge grounds the plan in tool results. Tool failures degrade to the
// static guide; they never fail the stage.
func (p *Pipeline) searchKnowledge(ctx context.Context, rec state.PlanningRecord) (state.PlanningRecord, error) {
	sections, err := p.gatherToolResults(ctx, rec)
	if err != nil {
		p.logger.Warn("Tool lookup failed, using the static planning guide", zap.Error(err))
		p.metrics.Fallback("search_knowledge")
		sections = nil
	}

	rec.KnowledgeContext = knowledgeContext(sections, p.searchSnippets(ctx, rec))
	rec.CurrentStep = state.StepKnowledgeSearched
	return rec, nil
}

type toolQuery struct {
	title string
	tool  string
	args  map[string]interface{}
}

func (p *Pipeline) toolQueries(rec state.PlanningRecord) []toolQuery {
	location := rec.Location
	if location == "" {
		location = constants.DefaultLocation
	}

	venueArgs := map[string]interface{}{
		"location": location,
		"capacity": rec.GuestCount,
	}
	cateringArgs := map[string]interface{}{
		"guest_count": rec.GuestCount,
	}
	if rec.Budget != nil && rec.Budget.IsPositive() {
		venueArgs["budget_max"] = rec.Budget.InexactFloat64()
		perPerson := rec.Budget.Div(decimal.NewFromInt(int64(rec.GuestCount)))
		cateringArgs["budget_per_person"] = perPerson.Round(2).InexactFloat64()
	}
	if len(rec.DietaryRestrictions) > 0 {
		cateringArgs["dietary_restrictions"] = rec.DietaryRestrictions
	}

	return []toolQuery{
		{title: "Recommended venues", tool: tools.ToolSearchVenues, args: venueArgs},
		{title: "Catering options", tool: tools.ToolGetCateringOptions, args: cateringArgs},
		{title: "Budget estimate", tool: tools.ToolCalculateBudget, args: map[string]interface{}{
			"party_type":  rec.EventType,
			"guest_count": rec.GuestCount,
		}},
	}
}

// gatherToolResults runs the three lookups concurrently. Any error, including an
// error result, fails the whole lookup.
func (p *Pipeline) gatherToolResults(ctx context.Context, rec state.PlanningRecord) ([]toolSection, error) {
	queries := p.toolQueries(rec)
	sections := make([]toolSection, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			res, err := p.tools.CallTool(gctx, p.provider, q.tool, q.args)
			if err != nil {
				return fmt.Errorf("%s: %w", q.tool, err)
			}
			if msg, failed := res.ErrorMessage(); failed {
				return fmt.Errorf("%s: %s", q.tool, msg)
			}
			body, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("%s: %w", q.tool, err)
			}
			sections[i] = toolSection{title: q.title, result: string(body)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sections, nil
}

// searchSnippets queries the optional knowledge source. Its absence or failure
// leaves the context without reference notes.
func (p *Pipeline) searchSnippets(ctx context.Context, rec state.PlanningRecord) []state.KnowledgeSnippet {
	if p.knowledge == nil || p.knowledgeLimit == 0 {
		return nil
	}
	query := strings.TrimSpace(strings.Join([]string{rec.EventType, rec.Location, rec.SpecialRequirements}, " "))
	snippets, err := p.knowledge.Search(ctx, query, p.knowledgeLimit)
	if err != nil {
		p.logger.Warn("Knowledge search failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	return snippets
}

func (p *Pipeline) generatePlan(ctx context.Context, rec state.PlanningRecord) (state.PlanningRecord, error) {
	plan, err := p.ask(ctx, &rec, planSystemPrompt, planPrompt(rec))
	if err != nil {
		return rec, err
	}
	rec.OverallPlan = plan
	rec.CurrentStep = state.StepPlanGenerated
	return rec, nil
}

func (p *Pipeline) createTasks(ctx context.Context, rec state.PlanningRecord) (state.PlanningRecord, error) {
	content, err := p.ask(ctx, &rec, tasksSystemPrompt, tasksPrompt(rec))
	if err != nil {
		return rec, err
	}

	tasks, err := ParseTasks(content)
	if err != nil {
		p.logger.Warn("Task list did not parse, using default tasks", zap.Error(err))
		p.metrics.Fallback("create_tasks")
		tasks = DefaultTasks()
	}
	rec.Tasks = tasks
	rec.CurrentStep = state.StepTasksCreated
	return rec, nil
}
