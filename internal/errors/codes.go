// Package errors provides structured error handling for paprika-mcp.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Cache/IO errors
//   - 3XX: Network errors (Paprika API)
//   - 4XX: Validation errors
//   - 5XX: Recipe domain errors (lookup/mutation outcomes)
//   - 9XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates cache and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryNetwork indicates Paprika API network errors.
	CategoryNetwork Category = "NETWORK"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryRecipe indicates recipe lookup/mutation outcome errors.
	CategoryRecipe Category = "RECIPE"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound     = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid      = "ERR_102_CONFIG_INVALID"
	ErrCodeCredentialsMissing = "ERR_103_CREDENTIALS_MISSING"

	// Cache/IO errors (200-299)
	ErrCodeCacheRead    = "ERR_201_CACHE_READ"
	ErrCodeCacheWrite   = "ERR_202_CACHE_WRITE"
	ErrCodeCacheLock    = "ERR_203_CACHE_LOCK"
	ErrCodeCacheCorrupt = "ERR_204_CACHE_CORRUPT"

	// Network errors (300-399)
	ErrCodeAuthFailed     = "ERR_301_AUTH_FAILED"
	ErrCodeNetworkTimeout = "ERR_302_NETWORK_TIMEOUT"
	ErrCodeAPIRequest     = "ERR_303_API_REQUEST"
	ErrCodeAPIResponse    = "ERR_304_API_RESPONSE"

	// Validation errors (400-499)
	ErrCodeInvalidArgument = "ERR_401_INVALID_ARGUMENT"
	ErrCodeInvalidQuery    = "ERR_402_INVALID_QUERY"
	ErrCodeInvalidFormat   = "ERR_403_INVALID_FORMAT"
	ErrCodeInvalidPattern  = "ERR_404_INVALID_PATTERN"
	ErrCodeInvalidField    = "ERR_405_INVALID_FIELD"

	// Recipe domain errors (500-599)
	ErrCodeNotFound  = "ERR_501_NOT_FOUND"
	ErrCodeAmbiguous = "ERR_502_AMBIGUOUS"
	ErrCodeNoMatch   = "ERR_503_NO_MATCH"

	// Internal errors (900-999)
	ErrCodeInternal = "ERR_901_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract the leading digit of the numeric portion
	// (e.g. '1' from "ERR_101_CONFIG_NOT_FOUND").
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryNetwork
	case '4':
		return CategoryValidation
	case '5':
		return CategoryRecipe
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeCredentialsMissing, ErrCodeAuthFailed:
		return SeverityFatal
	}

	if isRetryableCode(code) {
		return SeverityWarning
	}

	return SeverityError
}

// isRetryableCode checks if an error code represents a retryable error.
// Only transient network failures qualify; auth failures do not.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeNetworkTimeout, ErrCodeAPIRequest:
		return true
	default:
		return false
	}
}
