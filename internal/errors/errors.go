package errors

import (
	"fmt"
)

// RecipeError is the structured error type for paprika-mcp.
// It provides rich context for error handling, logging, and user presentation.
type RecipeError struct {
	// Code is the unique error code (e.g., "ERR_501_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Network, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *RecipeError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *RecipeError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with RecipeError.
func (e *RecipeError) Is(target error) bool {
	if t, ok := target.(*RecipeError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *RecipeError) WithDetail(key, value string) *RecipeError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *RecipeError) WithSuggestion(suggestion string) *RecipeError {
	e.Suggestion = suggestion
	return e
}

// New creates a new RecipeError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *RecipeError {
	return &RecipeError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Newf creates a new RecipeError with a formatted message.
func Newf(code string, format string, args ...any) *RecipeError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Wrap creates a RecipeError from an existing error.
// The error's message becomes the RecipeError message.
func Wrap(code string, err error) *RecipeError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// InvalidArgument creates a validation error for malformed or
// contradictory inputs.
func InvalidArgument(message string) *RecipeError {
	return New(ErrCodeInvalidArgument, message, nil)
}

// NotFound creates a recipe-not-found error.
func NotFound(message string) *RecipeError {
	return New(ErrCodeNotFound, message, nil)
}

// Ambiguous creates an ambiguous-title error.
func Ambiguous(message string) *RecipeError {
	return New(ErrCodeAmbiguous, message, nil)
}

// NoMatch creates a zero-effect-edit error.
func NoMatch(message string) *RecipeError {
	return New(ErrCodeNoMatch, message, nil)
}

// NetworkError creates a Paprika API network error.
// Network errors are typically retryable.
func NetworkError(message string, cause error) *RecipeError {
	return New(ErrCodeAPIRequest, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *RecipeError {
	return New(ErrCodeInternal, message, cause)
}

// IsRetryable checks if an error is retryable.
// Returns true if the error is a RecipeError with Retryable flag set.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if re, ok := err.(*RecipeError); ok {
		return re.Retryable
	}
	return false
}

// GetCode extracts the error code from a RecipeError.
// Returns empty string if not a RecipeError.
func GetCode(err error) string {
	if re, ok := err.(*RecipeError); ok {
		return re.Code
	}
	return ""
}

// GetCategory extracts the category from a RecipeError.
// Returns empty string if not a RecipeError.
func GetCategory(err error) Category {
	if re, ok := err.(*RecipeError); ok {
		return re.Category
	}
	return ""
}
