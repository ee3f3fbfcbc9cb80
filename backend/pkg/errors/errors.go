package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeTool represents tool lookup and execution errors
	ErrorTypeTool ErrorType = "tool"
	// ErrorTypeResource represents resource lookup errors
	ErrorTypeResource ErrorType = "resource"
	// ErrorTypePlanning represents pipeline stage failures
	ErrorTypePlanning ErrorType = "planning"
	// ErrorTypeParse represents unparseable model output
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeAgent represents LLM-related errors
	ErrorTypeAgent ErrorType = "agent"
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeContext represents context cancellation/timeout errors
	ErrorTypeContext ErrorType = "context"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Tool Errors

// ErrProviderNotFound is returned when a caller names a provider that is not registered
type ErrProviderNotFound struct {
	*BaseError
	Provider string
}

func NewProviderNotFound(provider string) *ErrProviderNotFound {
	return &ErrProviderNotFound{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("provider not found: %s", provider), nil),
		Provider:  provider,
	}
}

// ErrToolNotFound is returned when a provider does not advertise the requested tool
type ErrToolNotFound struct {
	*BaseError
	Provider string
	ToolName string
}

func NewToolNotFound(provider, toolName string) *ErrToolNotFound {
	return &ErrToolNotFound{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("tool not found: %s/%s", provider, toolName), nil),
		Provider:  provider,
		ToolName:  toolName,
	}
}

// ErrToolExecutionFailed is returned by a tool handler whose own logic faulted.
// Providers convert it into an error result; it never leaves the provider boundary.
type ErrToolExecutionFailed struct {
	*BaseError
	ToolName string
	Reason   string
}

func NewToolExecutionFailed(toolName, reason string, err error) *ErrToolExecutionFailed {
	return &ErrToolExecutionFailed{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("tool execution failed: %s: %s", toolName, reason), err),
		ToolName:  toolName,
		Reason:    reason,
	}
}

// ErrInvalidArguments is returned when call arguments violate a tool's parameter schema
type ErrInvalidArguments struct {
	*BaseError
	ToolName string
	Reason   string
}

func NewInvalidArguments(toolName, reason string) *ErrInvalidArguments {
	return &ErrInvalidArguments{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("invalid arguments for %s: %s", toolName, reason), nil),
		ToolName:  toolName,
		Reason:    reason,
	}
}

// Resource Errors

// ErrResourceNotFound is returned when no resource is served under a URI
type ErrResourceNotFound struct {
	*BaseError
	URI string
}

func NewResourceNotFound(uri string) *ErrResourceNotFound {
	return &ErrResourceNotFound{
		BaseError: NewBaseError(ErrorTypeResource, fmt.Sprintf("resource not found: %s", uri), nil),
		URI:       uri,
	}
}

// Planning Errors

// ErrContentParse is returned when model output does not parse as the expected structure
type ErrContentParse struct {
	*BaseError
	Strategy string
}

func NewContentParse(strategy string, err error) *ErrContentParse {
	return &ErrContentParse{
		BaseError: NewBaseError(ErrorTypeParse, fmt.Sprintf("content parse failed (%s)", strategy), err),
		Strategy:  strategy,
	}
}

// ErrPlanningFailed is the single failure outcome of a planning run
type ErrPlanningFailed struct {
	*BaseError
	Stage string
}

func NewPlanningFailed(stage string, err error) *ErrPlanningFailed {
	return &ErrPlanningFailed{
		BaseError: NewBaseError(ErrorTypePlanning, fmt.Sprintf("planning failed at stage %s", stage), err),
		Stage:     stage,
	}
}

// Agent Errors

// ErrAgentLLMFailed is returned when an LLM request fails
type ErrAgentLLMFailed struct {
	*BaseError
	Model string
}

func NewAgentLLMFailed(model string, err error) *ErrAgentLLMFailed {
	return &ErrAgentLLMFailed{
		BaseError: NewBaseError(ErrorTypeAgent, "LLM request failed", err),
		Model:     model,
	}
}

// ErrAgentNoResponse is returned when LLM returns no choices
var ErrAgentNoResponse = NewBaseError(ErrorTypeAgent, "no response from LLM", nil)

// Graph Errors

// ErrGraphQueryFailed is returned when a graph query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Operation string
}

func NewGraphQueryFailed(operation string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("query failed: %s", operation), err),
		Operation: operation,
	}
}

// ErrPlanNotFound is returned when an archived plan does not exist
type ErrPlanNotFound struct {
	*BaseError
	PlanID string
}

func NewPlanNotFound(planID string) *ErrPlanNotFound {
	return &ErrPlanNotFound{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("plan not found: %s", planID), nil),
		PlanID:    planID,
	}
}

// Context Errors

// ErrContextCancelled is returned when context is cancelled
type ErrContextCancelled struct {
	*BaseError
	Operation string
}

func NewContextCancelled(operation string, err error) *ErrContextCancelled {
	return &ErrContextCancelled{
		BaseError: NewBaseError(ErrorTypeContext, fmt.Sprintf("context cancelled: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error, or any error it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}
	if t, ok := typeOf(err); ok && t == errType {
		return true
	}
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if IsErrorType(inner, errType) {
				return true
			}
		}
	case interface{ Unwrap() error }:
		return IsErrorType(e.Unwrap(), errType)
	}
	return false
}

func typeOf(err error) (ErrorType, bool) {
	switch e := err.(type) {
	case *BaseError:
		return e.Type, true
	case interface{ base() *BaseError }:
		return e.base().Type, true
	}
	return "", false
}

func (e *ErrProviderNotFound) base() *BaseError       { return e.BaseError }
func (e *ErrToolNotFound) base() *BaseError           { return e.BaseError }
func (e *ErrToolExecutionFailed) base() *BaseError    { return e.BaseError }
func (e *ErrInvalidArguments) base() *BaseError       { return e.BaseError }
func (e *ErrResourceNotFound) base() *BaseError       { return e.BaseError }
func (e *ErrContentParse) base() *BaseError           { return e.BaseError }
func (e *ErrPlanningFailed) base() *BaseError         { return e.BaseError }
func (e *ErrAgentLLMFailed) base() *BaseError         { return e.BaseError }
func (e *ErrGraphQueryFailed) base() *BaseError       { return e.BaseError }
func (e *ErrPlanNotFound) base() *BaseError           { return e.BaseError }
func (e *ErrContextCancelled) base() *BaseError       { return e.BaseError }
func (e *ErrConfigValidationFailed) base() *BaseError { return e.BaseError }
func (e *ErrConfigMissingRequired) base() *BaseError  { return e.BaseError }

// IsNotFound reports whether err names a provider, tool, resource or plan that does not exist
func IsNotFound(err error) bool {
	var (
		provider *ErrProviderNotFound
		tool     *ErrToolNotFound
		resource *ErrResourceNotFound
		plan     *ErrPlanNotFound
	)
	return errors.As(err, &provider) || errors.As(err, &tool) ||
		errors.As(err, &resource) || errors.As(err, &plan)
}
