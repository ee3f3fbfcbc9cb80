package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"party-planner/backend/internal/state"
	apperrors "party-planner/backend/pkg/errors"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens int `json:"max_tokens"`
}

func newMockLLM(t *testing.T, status int, body string, seen *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLLMAdapter_Complete(t *testing.T) {
	var seen chatRequest
	srv := newMockLLM(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "test-model",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "Theme: garden party"}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
	}`, &seen)

	a := NewLLMAdapter(srv.URL+"/", "", "test-model", WithMaxTokens(256), WithLogger(zap.NewNop()))
	resp, err := a.Complete(context.Background(), []state.Message{
		{Role: state.RoleSystem, Content: "You plan parties."},
		{Role: state.RoleHuman, Content: "Birthday for 12"},
		{Role: state.RoleAssistant, Content: "Noted."},
	})

	require.NoError(t, err)
	assert.Equal(t, "Theme: garden party", resp.Content)
	assert.Equal(t, 12, resp.PromptTokens)
	assert.Equal(t, 5, resp.CompletionTokens)

	assert.Equal(t, "test-model", seen.Model)
	assert.Equal(t, 256, seen.MaxTokens)
	require.Len(t, seen.Messages, 3)
	assert.Equal(t, "system", seen.Messages[0].Role)
	assert.Equal(t, "user", seen.Messages[1].Role)
	assert.Equal(t, "assistant", seen.Messages[2].Role)
}

func TestLLMAdapter_Complete_NoChoices(t *testing.T) {
	srv := newMockLLM(t, http.StatusOK, `{"id": "x", "model": "m", "choices": []}`, nil)
	a := NewLLMAdapter(srv.URL, "", "m", WithLogger(zap.NewNop()))

	_, err := a.Complete(context.Background(), []state.Message{{Role: state.RoleHuman, Content: "hi"}})

	assert.ErrorIs(t, err, apperrors.ErrAgentNoResponse)
}

func TestLLMAdapter_Complete_ServerError(t *testing.T) {
	srv := newMockLLM(t, http.StatusInternalServerError, `{"error": {"message": "upstream down", "type": "server_error"}}`, nil)
	a := NewLLMAdapter(srv.URL, "", "m", WithLogger(zap.NewNop()))

	_, err := a.Complete(context.Background(), []state.Message{{Role: state.RoleHuman, Content: "hi"}})

	var llmErr *apperrors.ErrAgentLLMFailed
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, "m", llmErr.Model)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeAgent))
}

func TestLLMAdapter_SetModel(t *testing.T) {
	a := NewLLMAdapter("http://localhost:4000", "", "a", WithLogger(zap.NewNop()))
	a.SetModel("")
	assert.Equal(t, "a", a.GetModel())
	a.SetModel("b")
	assert.Equal(t, "b", a.GetModel())
}
