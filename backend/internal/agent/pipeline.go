package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"party-planner/backend/internal/adapter"
	"party-planner/backend/internal/constants"
	"party-planner/backend/internal/metrics"
	"party-planner/backend/internal/state"
	"party-planner/backend/internal/tools"
	apperrors "party-planner/backend/pkg/errors"
	"party-planner/backend/pkg/logger"
)

// Model completes a conversation
type Model interface {
	Complete(ctx context.Context, messages []state.Message) (*adapter.Response, error)
}

// ToolCaller dispatches tool calls by provider and tool name
type ToolCaller interface {
	CallTool(ctx context.Context, provider, tool string, args map[string]interface{}) (tools.Result, error)
}

// KnowledgeSource returns reference snippets ranked by relevance to query
type KnowledgeSource interface {
	Search(ctx context.Context, query string, limit int) ([]state.KnowledgeSnippet, error)
}

// PlanArchive stores finalized plans
type PlanArchive interface {
	SavePlan(ctx context.Context, rec state.PlanningRecord) error
}

// Pipeline drives a PlanningRecord through the seven planning stages.
// It holds no per-request state; concurrent runs share only the collaborators.
type Pipeline struct {
	model          Model
	tools          ToolCaller
	knowledge      KnowledgeSource
	archive        PlanArchive
	provider       string
	knowledgeLimit int
	timeout        time.Duration
	now            func() time.Time
	newID          func() string
	logger         *zap.Logger
	metrics        *metrics.Collector
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithKnowledgeSource merges snippets from ks into the knowledge context
func WithKnowledgeSource(ks KnowledgeSource) Option {
	return func(p *Pipeline) { p.knowledge = ks }
}

// WithArchive persists every finalized plan to a. Archive failures are logged only.
func WithArchive(a PlanArchive) Option {
	return func(p *Pipeline) { p.archive = a }
}

// WithClock replaces time.Now for lead-time calculations
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithIDGenerator replaces the plan id generator
func WithIDGenerator(gen func() string) Option {
	return func(p *Pipeline) { p.newID = gen }
}

// WithLogger sets the pipeline logger
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithMetrics records stage durations, fallbacks and plan outcomes on c
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Pipeline) { p.metrics = c }
}

// WithProviderName sets the registry name the event tools are called under
func WithProviderName(name string) Option {
	return func(p *Pipeline) { p.provider = name }
}

// WithKnowledgeLimit caps the snippets requested from the knowledge source
func WithKnowledgeLimit(n int) Option {
	return func(p *Pipeline) { p.knowledgeLimit = n }
}

// WithTimeout bounds a whole CreatePartyPlan call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

// NewPipeline creates a pipeline over a model and a tool registry
func NewPipeline(model Model, toolCaller ToolCaller, opts ...Option) *Pipeline {
	p := &Pipeline{
		model:          model,
		tools:          toolCaller,
		provider:       constants.EventProviderName,
		knowledgeLimit: constants.DefaultKnowledgeLimit,
		now:            time.Now,
		newID:          newPlanID,
		logger:         logger.Named("planner"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type stageFunc func(ctx context.Context, rec state.PlanningRecord) (state.PlanningRecord, error)

type stage struct {
	name string
	exit state.Step
	run  stageFunc
}

func (p *Pipeline) stages() []stage {
	return []stage{
		{name: "analyze_requirements", exit: state.StepRequirementsAnalyzed, run: p.analyzeRequirements},
		{name: "search_knowledge", exit: state.StepKnowledgeSearched, run: p.searchKnowledge},
		{name: "generate_plan", exit: state.StepPlanGenerated, run: p.generatePlan},
		{name: "create_tasks", exit: state.StepTasksCreated, run: p.createTasks},
		{name: "estimate_costs", exit: state.StepCostsEstimated, run: p.estimateCosts},
		{name: "create_timeline", exit: state.StepTimelineCreated, run: p.createTimeline},
		{name: "finalize_plan", exit: state.StepPlanFinalized, run: p.finalizePlan},
	}
}

// Run executes every stage in order. Each stage receives its own copy of the record;
// the context is checked between stages, and a stage already running is left to finish.
func (p *Pipeline) Run(ctx context.Context, rec state.PlanningRecord) (state.PlanningRecord, error) {
	for _, s := range p.stages() {
		if err := ctx.Err(); err != nil {
			return rec, apperrors.NewPlanningFailed(s.name, apperrors.NewContextCancelled(s.name, err))
		}

		start := time.Now()
		next, err := s.run(ctx, rec.Clone())
		p.metrics.ObserveStage(s.name, time.Since(start))
		if err != nil {
			if ctx.Err() != nil {
				err = apperrors.NewContextCancelled(s.name, err)
			}
			return rec, apperrors.NewPlanningFailed(s.name, err)
		}
		if next.CurrentStep != s.exit || next.CurrentStep.Index() <= rec.CurrentStep.Index() {
			return rec, apperrors.NewPlanningFailed(s.name,
				fmt.Errorf("stage left step %q after %q, want %q", next.CurrentStep, rec.CurrentStep, s.exit))
		}

		p.logger.Info("Stage completed",
			zap.String("plan_stage", s.name),
			zap.String("step", string(next.CurrentStep)),
			zap.Duration("elapsed", time.Since(start)),
		)
		rec = next
	}
	return rec, nil
}

// CreatePartyPlan validates the request, runs the pipeline and returns the projected plan.
// Invalid requests return state.ErrInvalidRequest; every other failure is an ErrPlanningFailed.
func (p *Pipeline) CreatePartyPlan(ctx context.Context, req state.PlanRequest) (*state.PlanResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.logger.Info("Planning started",
		zap.String("event_type", req.EventType),
		zap.Int("guest_count", req.GuestCount),
		zap.Time("date", req.Date),
	)

	final, err := p.Run(ctx, state.NewPlanningRecord(req))
	if err != nil {
		p.metrics.Plan(metrics.PlanFailed)
		var stageErr *apperrors.ErrPlanningFailed
		stageName := ""
		if errors.As(err, &stageErr) {
			stageName = stageErr.Stage
		}
		p.logger.Error("Planning failed", zap.String("stage", stageName), zap.Error(err))
		return nil, err
	}
	p.metrics.Plan(metrics.PlanSucceeded)

	if p.archive != nil {
		if err := p.archive.SavePlan(ctx, final); err != nil {
			p.logger.Warn("Failed to archive plan", zap.String("plan_id", final.PlanID), zap.Error(err))
		}
	}

	result := final.Result()
	p.logger.Info("Planning finished",
		zap.String("plan_id", result.PlanID),
		zap.Int("tasks", len(result.Tasks)),
		zap.Int("timeline_entries", len(result.Timeline)),
	)
	return &result, nil
}
