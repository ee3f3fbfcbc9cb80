package tools

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"party-planner/backend/internal/constants"
	"party-planner/backend/internal/metrics"
	apperrors "party-planner/backend/pkg/errors"
	"party-planner/backend/pkg/logger"
)

// Provider is a named bundle of tools and resources serving one domain
type Provider interface {
	// Domain is the tag matched by RecommendTools
	Domain() string
	ListTools() []ToolDescriptor
	// CallTool returns ErrToolNotFound for unadvertised names. Every other failure
	// is reported as an error Result.
	CallTool(ctx context.Context, name string, args map[string]interface{}) (Result, error)
	ListResources() []ResourceDescriptor
	ReadResource(ctx context.Context, uri string) (string, error)
}

// Registry dispatches tool calls to providers registered under distinct names.
// It is safe for concurrent use and holds no per-request state.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	order     []string
	logger    *zap.Logger
	metrics   *metrics.Collector
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the registry logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// WithMetrics records tool call outcomes on c
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Registry) { r.metrics = c }
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		logger:    logger.Named("tools"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultRegistry creates a registry with the event-domain provider registered
func NewDefaultRegistry(opts ...Option) (*Registry, error) {
	r := NewRegistry(opts...)
	provider, err := NewEventProvider(r.logger)
	if err != nil {
		return nil, err
	}
	r.Register(constants.EventProviderName, provider)
	return r, nil
}

// Register adds a provider under name, replacing any provider already registered there
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.providers[name] = p
	r.logger.Info("Tool provider registered",
		zap.String("provider", name),
		zap.String("domain", p.Domain()),
		zap.Int("tools", len(p.ListTools())),
	)
}

// Provider returns the provider registered under name
func (r *Registry) Provider(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// Providers returns registered provider names in registration order
func (r *Registry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// snapshot returns the providers in registration order
func (r *Registry) snapshot() []namedProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]namedProvider, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, namedProvider{name: name, provider: r.providers[name]})
	}
	return out
}

type namedProvider struct {
	name     string
	provider Provider
}

// ListTools returns every provider's advertised tools keyed by provider name
func (r *Registry) ListTools() map[string][]ToolDescriptor {
	all := make(map[string][]ToolDescriptor)
	for _, np := range r.snapshot() {
		all[np.name] = np.provider.ListTools()
	}
	return all
}

// ListResources returns every provider's resources keyed by provider name
func (r *Registry) ListResources() map[string][]ResourceDescriptor {
	all := make(map[string][]ResourceDescriptor)
	for _, np := range r.snapshot() {
		all[np.name] = np.provider.ListResources()
	}
	return all
}

// CallTool invokes tool on the named provider. Unknown providers and tools are errors;
// tool failures come back as a Result carrying an "error" key.
func (r *Registry) CallTool(ctx context.Context, providerName, toolName string, args map[string]interface{}) (result Result, err error) {
	p, ok := r.Provider(providerName)
	if !ok {
		r.metrics.ToolCall(providerName, toolName, metrics.OutcomeNotFound)
		return nil, apperrors.NewProviderNotFound(providerName)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Tool provider panicked",
				zap.String("provider", providerName),
				zap.String("tool", toolName),
				zap.Any("panic", rec),
			)
			result, err = errorResult(fmt.Sprintf("tool %s failed: %v", toolName, rec)), nil
			r.metrics.ToolCall(providerName, toolName, metrics.OutcomeErrorResult)
		}
	}()

	r.logger.Debug("Calling tool",
		zap.String("provider", providerName),
		zap.String("tool", toolName),
	)

	result, err = p.CallTool(ctx, toolName, args)
	switch {
	case err != nil:
		r.metrics.ToolCall(providerName, toolName, metrics.OutcomeNotFound)
		return nil, err
	case isErrorResult(result):
		r.metrics.ToolCall(providerName, toolName, metrics.OutcomeErrorResult)
	default:
		r.metrics.ToolCall(providerName, toolName, metrics.OutcomeOK)
	}
	return result, nil
}

// ReadResource reads uri from the named provider
func (r *Registry) ReadResource(ctx context.Context, providerName, uri string) (string, error) {
	p, ok := r.Provider(providerName)
	if !ok {
		return "", apperrors.NewProviderNotFound(providerName)
	}
	return p.ReadResource(ctx, uri)
}

func isErrorResult(res Result) bool {
	_, failed := res.ErrorMessage()
	return failed
}
