// internal/common/errors/handler_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	fields map[string]interface{}
}

func (c *captureLogger) Error(msg string, fields map[string]interface{}) {
	c.fields = fields
}

func TestHandleMapsSentinelToCode(t *testing.T) {
	sentinel := stderrors.New("MALFORMED_JSON")
	wrapped := fmt.Errorf("%w: content slot", sentinel)

	log := &captureLogger{}
	h := NewHandler(log)

	std := h.Handle("process", "run-1", wrapped)

	assert.Equal(t, ErrCodeMalformedJSON, std.Code)
	assert.True(t, stderrors.Is(std, sentinel), "sentinel must stay reachable through the StandardError")
	require.NotNil(t, log.fields)
	assert.Equal(t, "MALFORMED_JSON", log.fields["errorCode"])
	assert.Equal(t, "EXTRACTION", log.fields["errorCategory"])
}

func TestHandleCodeMapping(t *testing.T) {
	tests := []struct {
		sentinel string
		code     ErrorCode
		category string
	}{
		{"EMPTY_RESPONSE", ErrCodeEmptyResponse, "EXTRACTION"},
		{"NO_MARKERS_FOUND", ErrCodeNoMarkersFound, "EXTRACTION"},
		{"NIL_DOCUMENT", ErrCodeNilDocument, "REPAIR"},
		{"CONTRACT_VIOLATION", ErrCodeContractViolation, "REPAIR"},
	}

	for _, tt := range tests {
		t.Run(tt.sentinel, func(t *testing.T) {
			h := NewHandler(&captureLogger{})

			std := h.Handle("stage", "run", fmt.Errorf("%w: detail", stderrors.New(tt.sentinel)))

			assert.Equal(t, tt.code, std.Code)
			assert.Equal(t, tt.category, GetErrorCategory(std.Code))
		})
	}
}

func TestHandlePassesThroughStandardError(t *testing.T) {
	h := NewHandler(&captureLogger{})
	orig := NewInvalidConfigurationError("scorer.max_slides out of range")

	std := h.Handle("config", "run", orig)

	assert.Same(t, orig, std)
}

func TestHandleUnknownError(t *testing.T) {
	log := &captureLogger{}
	h := NewHandler(log)

	std := h.Handle("stage", "run", stderrors.New("disk on fire"))

	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), std.Code)
	assert.Equal(t, "OTHER", GetErrorCategory(std.Code))
	assert.Equal(t, "disk on fire", std.Details)
}
