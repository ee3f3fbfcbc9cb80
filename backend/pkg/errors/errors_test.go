package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsErrorType_WalksWrapChain(t *testing.T) {
	cause := errors.New("model unavailable")
	err := NewPlanningFailed("analyze_requirements", NewAgentLLMFailed("gpt-4o-mini", cause))
	wrapped := fmt.Errorf("handler: %w", err)

	assert.True(t, IsErrorType(wrapped, ErrorTypePlanning))
	assert.True(t, IsErrorType(wrapped, ErrorTypeAgent))
	assert.False(t, IsErrorType(wrapped, ErrorTypeTool))
	assert.ErrorIs(t, wrapped, cause)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewProviderNotFound("weather")))
	assert.True(t, IsNotFound(fmt.Errorf("call: %w", NewToolNotFound("event_planning", "book_dj"))))
	assert.True(t, IsNotFound(NewPlanNotFound("abc")))
	assert.False(t, IsNotFound(NewInvalidArguments("search_venues", "missing location")))
	assert.False(t, IsNotFound(nil))
}

func TestErrorMessages(t *testing.T) {
	err := NewToolNotFound("event_planning", "book_dj")
	assert.Equal(t, "[tool] tool not found: event_planning/book_dj", err.Error())

	var target *ErrToolNotFound
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "book_dj", target.ToolName)
}
