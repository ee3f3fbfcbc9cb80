package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"party-planner/backend/internal/adapter"
	"party-planner/backend/internal/agent"
	"party-planner/backend/internal/graph"
	"party-planner/backend/internal/metrics"
	"party-planner/backend/internal/tools"
	"party-planner/backend/pkg/config"
)

// ServiceManager owns the long-lived collaborators shared by the server, bot and CLI
type ServiceManager struct {
	Config   *config.Config
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	Registry *tools.Registry
	LLM      *adapter.LLMAdapter
	Pipeline *agent.Pipeline
	// Graph is nil when no Neo4j URI is configured
	Graph *graph.Repository

	logger    *zap.Logger
	closeOnce sync.Once
}

// NewServiceManager wires every component from cfg. A configured but unreachable
// Neo4j is an error; an unconfigured one disables knowledge search and archiving.
func NewServiceManager(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceManager, error) {
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.New(promRegistry)

	registry, err := tools.NewDefaultRegistry(
		tools.WithLogger(logger.Named("tools")),
		tools.WithMetrics(collector),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}

	llm := adapter.NewLLMAdapter(cfg.LiteLLMURL, cfg.APIKey, cfg.ModelID,
		adapter.WithTemperature(cfg.LLMTemperature),
		adapter.WithMaxTokens(cfg.LLMMaxTokens),
		adapter.WithLogger(logger.Named("llm")),
	)

	sm := &ServiceManager{
		Config:   cfg,
		Metrics:  collector,
		Gatherer: promRegistry,
		Registry: registry,
		LLM:      llm,
		logger:   logger,
	}

	opts := []agent.Option{
		agent.WithLogger(logger.Named("pipeline")),
		agent.WithMetrics(collector),
		agent.WithKnowledgeLimit(cfg.KnowledgeLimit),
		agent.WithTimeout(cfg.PlanTimeout),
	}

	if cfg.GraphEnabled() {
		repo, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			return nil, err
		}
		if err := repo.EnsureConstraints(ctx); err != nil {
			_ = repo.Close()
			return nil, err
		}
		sm.Graph = repo
		opts = append(opts, agent.WithKnowledgeSource(repo), agent.WithArchive(repo))
		logger.Info("Neo4j connected", zap.String("uri", cfg.Neo4jURI))
	} else {
		logger.Info("Neo4j not configured, knowledge search and plan archive disabled")
	}

	sm.Pipeline = agent.NewPipeline(llm, registry, opts...)

	logger.Info("Services initialized",
		zap.String("model", cfg.ModelID),
		zap.Strings("providers", registry.Providers()),
		zap.Bool("graph", sm.Graph != nil),
	)
	return sm, nil
}

// Close releases the graph connection. It is safe to call more than once.
func (sm *ServiceManager) Close() {
	sm.closeOnce.Do(func() {
		if sm.Graph == nil {
			return
		}
		if err := sm.Graph.Close(); err != nil {
			sm.logger.Error("Failed to close Neo4j driver", zap.Error(err))
		}
	})
}
