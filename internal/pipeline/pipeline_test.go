// internal/pipeline/pipeline_test.go
package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchdeck-pipeline/internal/catalog"
	"pitchdeck-pipeline/internal/common/config"
	commonerrors "pitchdeck-pipeline/internal/common/errors"
	"pitchdeck-pipeline/internal/common/logger"
	"pitchdeck-pipeline/internal/extractor"
	"pitchdeck-pipeline/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Tracker: config.TrackerConfig{
			MinAnswerWords:      8,
			MinResearchChars:    250,
			MinResearchKeywords: 2,
		},
		Scorer: config.ScorerConfig{
			RecommendThreshold:  0.6,
			BorderlineThreshold: 0.65,
			MaxSlides:           10,
			MinSlides:           3,
			ContextBonusCap:     0.3,
		},
		Extractor: config.ExtractorConfig{MaxScanBytes: 1 << 20},
		Repair: config.RepairConfig{
			ConvertBuyerFinancials: true,
			RevenueMultiple:        3.0,
		},
	}
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return New(testConfig(), catalog.New(), logger.NewTestLogger(t))
}

func TestProcessFullResponse(t *testing.T) {
	p := newTestPipeline(t)
	raw := `Analysis done.

CONTENT IR JSON:
{"entities": {"company_name": "TechVision"}, "facts": {"years": ["2022", "2023"], "revenue_usd_m": [80, 100]}}

RENDER PLAN JSON:
{"slides": [{"template": "business_overview", "data": {"title": "Overview"}}]}`

	result, err := p.Process(raw)
	require.NoError(t, err)

	entities, ok := result.Content.SectionMap("entities")
	require.True(t, ok)
	assert.Equal(t, "TechVision", entities["company_name"])
	assert.GreaterOrEqual(t, len(result.Plan.Slides), 3)
}

func TestProcessMissingRenderPlanTolerated(t *testing.T) {
	p := newTestPipeline(t)
	raw := `CONTENT IR JSON: {"entities": {"company_name": "Acme"}}`

	result, err := p.Process(raw)
	require.NoError(t, err)

	// Required slides are backfilled from the empty plan.
	require.Len(t, result.Plan.Slides, 3)
	assert.Equal(t, "business_overview", result.Plan.Slides[0].Template)
}

func TestProcessMissingContentFails(t *testing.T) {
	p := newTestPipeline(t)

	_, err := p.Process("No documents here, just prose.")
	require.Error(t, err)
	assert.ErrorIs(t, err, extractor.ErrNoMarkersFound)

	var std *commonerrors.StandardError
	require.ErrorAs(t, err, &std)
	assert.Equal(t, commonerrors.ErrCodeNoMarkersFound, std.Code)

	_, err = p.Process("")
	require.Error(t, err)
	assert.ErrorIs(t, err, extractor.ErrEmptyResponse)
}

func TestAnalyzeAndScoreEndToEnd(t *testing.T) {
	p := newTestPipeline(t)
	q1 := catalog.New().Topics()[0].Question
	transcript := models.Transcript{
		{Role: models.RoleAssistant, Content: q1},
		{Role: models.RoleUser, Content: "Our company TechVision operates a software business in the healthcare sector with 250 employees worldwide."},
	}

	progress := p.Analyze(transcript)
	assert.Equal(t, 1, progress.TopicsCovered)

	selection := p.Score(transcript)
	assert.NotEmpty(t, selection.SelectedIDs)
}
