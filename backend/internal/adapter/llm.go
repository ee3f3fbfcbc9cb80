package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"party-planner/backend/internal/state"
	apperrors "party-planner/backend/pkg/errors"
	"party-planner/backend/pkg/logger"
)

// LLMAdapter handles communication with the LLM via LiteLLM (or any
// OpenAI-compatible endpoint)
type LLMAdapter struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	mu          sync.RWMutex // Protects model field for concurrent access
	logger      *zap.Logger
}

// Option configures an LLMAdapter
type Option func(*LLMAdapter)

// WithTemperature sets the sampling temperature
func WithTemperature(t float64) Option {
	return func(a *LLMAdapter) { a.temperature = float32(t) }
}

// WithMaxTokens caps the completion length. Zero leaves it to the server.
func WithMaxTokens(n int) Option {
	return func(a *LLMAdapter) { a.maxTokens = n }
}

// WithLogger sets the adapter logger
func WithLogger(l *zap.Logger) Option {
	return func(a *LLMAdapter) { a.logger = l }
}

// NewLLMAdapter creates a new LLM adapter
func NewLLMAdapter(baseURL, apiKey, modelID string, opts ...Option) *LLMAdapter {
	// For LiteLLM, we can use a dummy API key if not provided
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"

	a := &LLMAdapter{
		client:      openai.NewClientWithConfig(config),
		model:       modelID,
		temperature: 0.7,
		logger:      logger.Named("llm"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetModel updates the model used by this adapter
func (a *LLMAdapter) SetModel(model string) {
	if model != "" {
		a.mu.Lock()
		a.model = model
		a.mu.Unlock()
		a.logger.Debug("LLM adapter model updated", zap.String("model", model))
	}
}

// GetModel returns the current model
func (a *LLMAdapter) GetModel() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.model
}

// Response represents the LLM's response
type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// Complete sends the conversation to the LLM and returns its reply.
// Failures are returned as-is; the caller decides whether to retry.
func (a *LLMAdapter) Complete(ctx context.Context, messages []state.Message) (*Response, error) {
	currentModel := a.GetModel()

	req := openai.ChatCompletionRequest{
		Model:       currentModel,
		Messages:    toChatMessages(messages),
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		a.logger.Error("LLM request failed",
			zap.Error(err),
			zap.String("model", currentModel),
			zap.Int("messages", len(messages)),
		)
		return nil, apperrors.NewAgentLLMFailed(currentModel, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: %w", currentModel, apperrors.ErrAgentNoResponse)
	}

	response := &Response{
		Content:          resp.Choices[0].Message.Content,
		Model:            resp.Model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}

	a.logger.Debug("LLM response generated",
		zap.String("model", currentModel),
		zap.Int("prompt_tokens", response.PromptTokens),
		zap.Int("completion_tokens", response.CompletionTokens),
		zap.Bool("has_content", response.Content != ""),
	)

	return response, nil
}

func toChatMessages(messages []state.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    chatRole(m.Role),
			Content: m.Content,
		})
	}
	return out
}

func chatRole(r state.Role) string {
	switch r {
	case state.RoleSystem:
		return openai.ChatMessageRoleSystem
	case state.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
