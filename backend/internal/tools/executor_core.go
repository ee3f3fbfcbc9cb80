package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"

	"party-planner/backend/internal/constants"
	apperrors "party-planner/backend/pkg/errors"
)

// handler runs one tool against its validated, JSON-encoded arguments
type handler func(ctx context.Context, raw json.RawMessage) (interface{}, error)

// typed adapts a tool function taking a decoded argument struct into a handler
func typed[A any, R any](fn func(context.Context, A) (R, error)) handler {
	return func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var args A
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, err
		}
		return fn(ctx, args)
	}
}

type boundTool struct {
	descriptor ToolDescriptor
	schema     *jsonschema.Schema
	run        handler
}

// EventProvider serves the event-planning tools and reference documents.
// It keeps no per-call state and may be shared across requests.
type EventProvider struct {
	tools     map[string]boundTool
	order     []ToolDescriptor
	resources []ResourceDescriptor
	logger    *zap.Logger
}

// NewEventProvider builds the provider, compiling every advertised parameter schema
// and checking that each advertised tool has exactly one handler.
func NewEventProvider(log *zap.Logger) (*EventProvider, error) {
	if log == nil {
		log = zap.NewNop()
	}
	handlers := map[string]handler{
		ToolSearchVenues:       typed(searchVenues),
		ToolGetCateringOptions: typed(getCateringOptions),
		ToolCheckWeather:       typed(checkWeather),
		ToolCalculateBudget:    typed(calculateBudget),
		ToolGenerateTimeline:   typed(generateTimeline),
	}

	p := &EventProvider{
		tools:     make(map[string]boundTool, len(handlers)),
		resources: eventResourceDescriptors(),
		logger:    log.With(zap.String("provider", constants.EventProviderName)),
	}
	for _, d := range eventToolDescriptors() {
		run, ok := handlers[d.Name]
		if !ok {
			return nil, fmt.Errorf("tool %s has no handler", d.Name)
		}
		schema, err := compileSchema(d)
		if err != nil {
			return nil, err
		}
		p.tools[d.Name] = boundTool{descriptor: d, schema: schema, run: run}
		p.order = append(p.order, d)
		delete(handlers, d.Name)
	}
	if len(handlers) != 0 {
		return nil, fmt.Errorf("%d handlers have no advertised tool", len(handlers))
	}
	return p, nil
}

// Domain implements Provider
func (p *EventProvider) Domain() string {
	return constants.EventDomain
}

// ListTools implements Provider
func (p *EventProvider) ListTools() []ToolDescriptor {
	return append([]ToolDescriptor(nil), p.order...)
}

// ListResources implements Provider
func (p *EventProvider) ListResources() []ResourceDescriptor {
	return append([]ResourceDescriptor(nil), p.resources...)
}

// CallTool validates args against the tool's schema and runs it.
// Invalid arguments and tool faults come back as an error Result.
func (p *EventProvider) CallTool(ctx context.Context, name string, args map[string]interface{}) (result Result, err error) {
	tool, ok := p.tools[name]
	if !ok {
		return nil, apperrors.NewToolNotFound(constants.EventProviderName, name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("Tool panicked", zap.String("tool", name), zap.Any("panic", rec))
			result, err = errorResult(fmt.Sprintf("tool %s failed: %v", name, rec)), nil
		}
	}()

	raw, inst, err := normalizeArguments(args)
	if err != nil {
		return p.fail(name, apperrors.NewInvalidArguments(name, err.Error())), nil
	}
	if err := tool.schema.Validate(inst); err != nil {
		return p.fail(name, apperrors.NewInvalidArguments(name, err.Error())), nil
	}

	out, err := tool.run(ctx, raw)
	if err != nil {
		return p.fail(name, apperrors.NewToolExecutionFailed(name, err.Error(), err)), nil
	}
	result, err = toResult(out)
	if err != nil {
		return p.fail(name, apperrors.NewToolExecutionFailed(name, "encode result", err)), nil
	}
	return result, nil
}

func (p *EventProvider) fail(name string, err error) Result {
	p.logger.Warn("Tool call failed", zap.String("tool", name), zap.Error(err))
	return errorResult(err.Error())
}

// ReadResource returns the JSON document served under uri. Unknown URIs yield
// a JSON error document rather than an error.
func (p *EventProvider) ReadResource(_ context.Context, uri string) (string, error) {
	doc, ok := resourceDocuments[uri]
	if !ok {
		p.logger.Debug("Unknown resource requested", zap.String("uri", uri))
		doc = map[string]string{"error": "Resource not found"}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode resource %s: %w", uri, err)
	}
	return string(raw), nil
}
