// internal/extractor/extractor_test.go
package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchdeck-pipeline/internal/common/logger"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return New(DefaultConfig(), logger.NewTestLogger(t))
}

const contentJSON = `{"entities": {"company_name": "TechVision"}, "facts": {"years": ["2022", "2023"]}}`
const renderJSON = `{"slides": [{"template": "business_overview", "data": {"title": "Overview"}}]}`

func TestExtractEmptyResponse(t *testing.T) {
	e := newTestExtractor(t)

	for _, raw := range []string{"", "   ", "\n\t\n"} {
		res := e.Extract(raw)
		assert.ErrorIs(t, res.Content.Err, ErrEmptyResponse)
		assert.ErrorIs(t, res.RenderPlan.Err, ErrEmptyResponse)
	}
}

func TestExtractByMarker(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "plain markers",
			raw:  "Here are the results.\n\nCONTENT IR JSON:\n" + contentJSON + "\n\nRENDER PLAN JSON:\n" + renderJSON,
		},
		{
			name: "lowercase markers",
			raw:  "content ir json:\n" + contentJSON + "\nrender plan json:\n" + renderJSON,
		},
		{
			name: "heading and emphasis decoration",
			raw:  "## CONTENT IR JSON:\n" + contentJSON + "\n\n**RENDER PLAN JSON:**\n" + renderJSON,
		},
		{
			name: "fenced payloads after markers",
			raw:  "Content IR:\n```json\n" + contentJSON + "\n```\nRender Plan:\n```json\n" + renderJSON + "\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Extract(tt.raw)

			require.NoError(t, res.Content.Err)
			require.NoError(t, res.RenderPlan.Err)
			assert.Equal(t, MethodMarker, res.Content.Method)
			assert.Equal(t, MethodMarker, res.RenderPlan.Method)

			entities, ok := res.Content.Document["entities"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, "TechVision", entities["company_name"])

			slides, ok := res.RenderPlan.Document["slides"].([]interface{})
			require.True(t, ok)
			assert.Len(t, slides, 1)
		})
	}
}

func TestExtractMarkerAfterNonASCIIText(t *testing.T) {
	e := newTestExtractor(t)

	// U+0130 grows by a byte under Unicode lowering, which would misalign
	// marker offsets against the original string.
	raw := "Prepared for İstanbul Holdings İİİ review.\n\nCONTENT IR JSON:\n" + contentJSON

	res := e.Extract(raw)

	require.NoError(t, res.Content.Err)
	assert.Equal(t, MethodMarker, res.Content.Method)
	entities, ok := res.Content.Document["entities"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "TechVision", entities["company_name"])
}

func TestExtractFromFencedBlocks(t *testing.T) {
	e := newTestExtractor(t)
	raw := "Here is everything you asked for.\n\n```json\n" + contentJSON + "\n```\n\nAnd the plan:\n\n```json\n" + renderJSON + "\n```\n"

	res := e.Extract(raw)

	require.NoError(t, res.Content.Err)
	require.NoError(t, res.RenderPlan.Err)
	assert.Equal(t, MethodFence, res.Content.Method)
	assert.Equal(t, MethodFence, res.RenderPlan.Method)
}

func TestExtractByRawScan(t *testing.T) {
	e := newTestExtractor(t)
	raw := "I analyzed the interview. " + contentJSON + " and separately " + renderJSON + " as requested."

	res := e.Extract(raw)

	require.NoError(t, res.Content.Err)
	require.NoError(t, res.RenderPlan.Err)
	assert.Equal(t, MethodScan, res.Content.Method)
	assert.Equal(t, MethodScan, res.RenderPlan.Method)
}

func TestExtractTrailingCommasRepaired(t *testing.T) {
	e := newTestExtractor(t)
	raw := `CONTENT IR JSON: {"entities": {"company_name": "Acme",}, "facts": {"years": ["2023",],},}`

	res := e.Extract(raw)

	require.NoError(t, res.Content.Err)
	entities := res.Content.Document["entities"].(map[string]interface{})
	assert.Equal(t, "Acme", entities["company_name"])
}

func TestExtractMissingSlot(t *testing.T) {
	e := newTestExtractor(t)
	raw := "CONTENT IR JSON:\n" + contentJSON + "\nThat is all I produced."

	res := e.Extract(raw)

	require.NoError(t, res.Content.Err)
	assert.ErrorIs(t, res.RenderPlan.Err, ErrNoMarkersFound)
	assert.Nil(t, res.RenderPlan.Document)
}

func TestExtractMalformedPayload(t *testing.T) {
	e := newTestExtractor(t)
	raw := `RENDER PLAN JSON: {"slides": [{"template": "overview", "data": {`

	res := e.Extract(raw)

	assert.ErrorIs(t, res.RenderPlan.Err, ErrMalformedJSON)
}

func TestExtractProseOnly(t *testing.T) {
	e := newTestExtractor(t)
	raw := "I could not produce the documents you asked for, sorry about that."

	res := e.Extract(raw)

	assert.ErrorIs(t, res.Content.Err, ErrNoMarkersFound)
	assert.ErrorIs(t, res.RenderPlan.Err, ErrNoMarkersFound)
}

func TestBalancedObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"simple", `prefix {"a": 1} suffix`, `{"a": 1}`, true},
		{"nested", `{"a": {"b": {"c": 1}}}`, `{"a": {"b": {"c": 1}}}`, true},
		{"braces in strings", `{"text": "a { weird } value"}`, `{"text": "a { weird } value"}`, true},
		{"escaped quotes", `{"text": "she said \"hi\""}`, `{"text": "she said \"hi\""}`, true},
		{"unterminated", `{"a": {"b": 1}`, "", false},
		{"no object", "plain prose", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := balancedObject(tt.input, 0)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
