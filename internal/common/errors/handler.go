// internal/common/errors/handler.go
package errors

import (
	"errors"
	"time"
)

// Handler normalizes and logs pipeline stage errors.
type Handler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle normalizes err to a StandardError, logs it with its category, and
// returns the normalized error for the caller to propagate.
func (h *Handler) Handle(stage, runID string, err error) *StandardError {
	stdErr := h.normalizeError(err)
	h.logger.Error("Pipeline stage failed", map[string]interface{}{
		"stage":         stage,
		"runId":         runID,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})
	return stdErr
}

// normalizeError ensures we always have a StandardError. Component sentinels
// carry their error code as the message, so the root of a wrap chain
// identifies the code directly.
func (h *Handler) normalizeError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}

	switch rootCode(err) {
	case ErrCodeEmptyResponse:
		return NewEmptyResponseError(err)
	case ErrCodeNoMarkersFound:
		return NewNoMarkersFoundError(err)
	case ErrCodeMalformedJSON:
		return NewMalformedJSONError(err)
	case ErrCodeNilDocument:
		return NewNilDocumentError(err)
	case ErrCodeContractViolation:
		return NewContractViolationError(err)
	}

	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func rootCode(err error) ErrorCode {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return ErrorCode(err.Error())
		}
		err = next
	}
}
