// Package errors provides standardized error handling for the deck analysis pipeline.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeEmptyResponse  ErrorCode = "EMPTY_RESPONSE"
	ErrCodeNoMarkersFound ErrorCode = "NO_MARKERS_FOUND"
	ErrCodeMalformedJSON  ErrorCode = "MALFORMED_JSON"

	ErrCodeNilDocument       ErrorCode = "NIL_DOCUMENT"
	ErrCodeContractViolation ErrorCode = "CONTRACT_VIOLATION"

	ErrCodeInvalidCatalog       ErrorCode = "INVALID_CATALOG"
	ErrCodeCatalogLoadFailed    ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeSchemaCheckFailed    ErrorCode = "SCHEMA_CHECK_FAILED"
	ErrCodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause so callers can use errors.Is on component
// sentinels through a StandardError.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewEmptyResponseError marks a raw model response with no usable content.
func NewEmptyResponseError(cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyResponse,
		Message:   "Model response is empty or whitespace",
		Details:   cause.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewNoMarkersFoundError marks a response in which no extraction strategy
// located a document.
func NewNoMarkersFoundError(cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoMarkersFound,
		Message:   "No extraction markers or JSON objects found",
		Details:   cause.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewMalformedJSONError marks a located payload that failed to parse even
// after cleanup.
func NewMalformedJSONError(cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedJSON,
		Message:   "Located payload is not parseable JSON",
		Details:   cause.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewNilDocumentError marks a repair call on a document that does not exist.
func NewNilDocumentError(cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNilDocument,
		Message:   "Cannot repair a document that was never extracted",
		Details:   cause.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewContractViolationError marks a repaired document that still fails the
// output contract.
func NewContractViolationError(cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContractViolation,
		Message:   "Repaired document violates output contract",
		Details:   cause.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewCatalogLoadFailedError marks an unreadable or invalid catalog override.
func NewCatalogLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Catalog override could not be loaded",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSchemaCheckFailedError marks a schema validation that could not run.
func NewSchemaCheckFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaCheckFailed,
		Message:   "Schema validation error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidConfigurationError marks a config file that fails validation.
func NewInvalidConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidConfiguration,
		Message:   "Configuration validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "MARKERS") || strings.Contains(codeStr, "JSON") || strings.Contains(codeStr, "RESPONSE"):
		return "EXTRACTION"
	case strings.Contains(codeStr, "DOCUMENT") || strings.Contains(codeStr, "CONTRACT"):
		return "REPAIR"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "SCHEMA"):
		return "CATALOG"
	case strings.Contains(codeStr, "CONFIGURATION"):
		return "CONFIG"
	default:
		return "OTHER"
	}
}
