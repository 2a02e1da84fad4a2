// Package mcp implements the Model Context Protocol (MCP) server for
// paprika-mcp.
package mcp

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/briantkatch/paprika-mcp/internal/errors"
)

// Custom MCP error codes for paprika-mcp.
const (
	// ErrCodeRecipeNotFound indicates no recipe matches an id or title.
	ErrCodeRecipeNotFound = -32001

	// ErrCodeAmbiguousTitle indicates multiple recipes share a title.
	ErrCodeAmbiguousTitle = -32002

	// ErrCodeNoMatch indicates a find pattern matched nothing in the
	// target field.
	ErrCodeNoMatch = -32003

	// ErrCodeAuthFailed indicates the Paprika account rejected the
	// credentials.
	ErrCodeAuthFailed = -32004

	// ErrCodeStoreUnavailable indicates the Paprika API could not be
	// reached.
	ErrCodeStoreUnavailable = -32005

	// ErrCodeTimeout indicates the request timed out or was canceled.
	ErrCodeTimeout = -32006

	// Standard JSON-RPC error codes.
	ErrCodeInvalidParams = -32602
	ErrCodeInternalError = -32603
)

// MCPError represents an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// NewInvalidParamsError creates an error for invalid parameters with a
// custom message.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{
		Code:    ErrCodeInvalidParams,
		Message: msg,
	}
}

// MapError converts internal errors to MCP errors, preserving the error
// taxonomy so clients can render each failure kind distinctly.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var re *perrors.RecipeError
	if errors.As(err, &re) {
		return mapRecipeError(re)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request timed out."}
	case errors.Is(err, context.Canceled):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request was canceled."}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: "Internal server error."}
	}
}

// mapRecipeError converts a RecipeError to an MCPError.
func mapRecipeError(re *perrors.RecipeError) *MCPError {
	message := re.Message
	if re.Suggestion != "" {
		message = fmt.Sprintf("%s %s", re.Message, re.Suggestion)
	}

	switch re.Code {
	case perrors.ErrCodeNotFound:
		return &MCPError{Code: ErrCodeRecipeNotFound, Message: message}
	case perrors.ErrCodeAmbiguous:
		return &MCPError{Code: ErrCodeAmbiguousTitle, Message: message}
	case perrors.ErrCodeNoMatch:
		return &MCPError{Code: ErrCodeNoMatch, Message: message}
	case perrors.ErrCodeAuthFailed, perrors.ErrCodeCredentialsMissing:
		return &MCPError{Code: ErrCodeAuthFailed, Message: message}
	case perrors.ErrCodeNetworkTimeout:
		return &MCPError{Code: ErrCodeTimeout, Message: message}
	}

	switch re.Category {
	case perrors.CategoryValidation:
		return &MCPError{Code: ErrCodeInvalidParams, Message: message}
	case perrors.CategoryNetwork:
		return &MCPError{Code: ErrCodeStoreUnavailable, Message: message}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: message}
	}
}
