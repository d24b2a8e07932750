// test/e2e/e2e_test.go
package e2e

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchdeck-pipeline/internal/catalog"
	"pitchdeck-pipeline/internal/common/config"
	"pitchdeck-pipeline/internal/common/logger"
	"pitchdeck-pipeline/internal/models"
	"pitchdeck-pipeline/internal/pipeline"
)

// Full-interview walkthrough: a transcript covering every topic is analyzed,
// scored, and the resulting model response is extracted and repaired into a
// contract-clean document pair.

func e2eConfig() *config.Config {
	cfg, err := config.LoadFromFile("../../configs/config.yaml")
	if err != nil {
		// Tests must run without the config file present.
		cfg = &config.Config{
			Tracker: config.TrackerConfig{MinAnswerWords: 8, MinResearchChars: 250, MinResearchKeywords: 2},
			Scorer: config.ScorerConfig{
				RecommendThreshold:  0.6,
				BorderlineThreshold: 0.65,
				MaxSlides:           10,
				MinSlides:           3,
				ContextBonusCap:     0.3,
			},
			Extractor: config.ExtractorConfig{MaxScanBytes: 1 << 20},
			Repair:    config.RepairConfig{ConvertBuyerFinancials: true, RevenueMultiple: 3.0},
		}
	}
	return cfg
}

func fullInterview(cat *catalog.Catalog) models.Transcript {
	var transcript models.Transcript
	transcript = append(transcript, models.Message{
		Role:    models.RoleSystem,
		Content: "You are an investment banking interview assistant.",
	})
	for _, topic := range cat.Topics() {
		answer := "Our company is called TechVision and here is the detail on " +
			topic.Keywords[0] + " and " + topic.Keywords[1] +
			" with figures around 120 million across the last three years."
		transcript = append(transcript,
			models.Message{Role: models.RoleAssistant, Content: topic.Question},
			models.Message{Role: models.RoleUser, Content: answer},
		)
	}
	return transcript
}

const analysisResponse = `Based on the interview, here are the documents.

CONTENT IR JSON:
{
  "entities": {"company_name": "TechVision"},
  "facts": {
    "years": ["2021", "2022", "2023"],
    "revenue_usd_m": [80, 100, 120],
    "ebitda_usd_m": [12, 18, 24]
  },
  "management_team": [
    {"name": "Jane Doe", "title": "CEO"},
    {"name": "John Smith", "title": "CFO"}
  ],
  "strategic_buyers": [
    {"name": "MegaCorp Industries", "country": "Singapore", "description": "Diversified group", "revenue_usd_m": 5000}
  ]
}

RENDER PLAN JSON:
{
  "slides": [
    {"template": "historical_financial_performance", "data": {"key_metrics": ["Revenue CAGR 22%"]}},
    {"template": "business_overview", "data": {"title": "TechVision Overview"}},
    {"template": "buyer_profiles", "data": {}}
  ]
}`

func TestFullPipelineRun(t *testing.T) {
	cfg := e2eConfig()
	cat := catalog.New()
	p := pipeline.New(cfg, cat, logger.NewTestLogger(t))

	transcript := fullInterview(cat)

	progress := p.Analyze(transcript)
	assert.True(t, progress.IsComplete)
	assert.Equal(t, 14, progress.TopicsCovered)
	assert.Equal(t, "TechVision", progress.CompanyName)

	selection := p.Score(transcript)
	assert.NotEmpty(t, selection.SelectedIDs)
	assert.Contains(t, selection.SelectedIDs, "business_overview")

	result, err := p.Process(analysisResponse)
	require.NoError(t, err)

	// Every required section exists after repair.
	for _, section := range cat.RequiredSections() {
		_, ok := result.Content[section]
		assert.True(t, ok, "section %s", section)
	}

	// The conglomerates section was synthesized from the strategic buyer.
	cons, ok := result.Content.SectionList("sea_conglomerates")
	require.True(t, ok)
	require.NotEmpty(t, cons)
	entry := cons[0].(map[string]interface{})
	assert.Equal(t, "MegaCorp Industries", entry["name"])

	// The enterprise value was derived from the latest revenue figure.
	valuation, ok := result.Content.SectionMap("valuation_data")
	require.True(t, ok)
	assert.InDelta(t, 360.0, valuation["enterprise_value_usd_m"], 0.001)

	// Slides come back in canonical order with content keys resolved.
	var order []string
	for _, s := range result.Plan.Slides {
		order = append(order, s.ContentKey)
	}
	assert.Equal(t, "business_overview_data", order[0])
	assert.Contains(t, order, "strategic_buyers")

	// The financial slide's metric list was wrapped.
	for _, s := range result.Plan.Slides {
		if s.Template != "historical_financial_performance" {
			continue
		}
		metricsObj, ok := s.Data["key_metrics"].(map[string]interface{})
		require.True(t, ok)
		assert.Len(t, metricsObj["metrics"], 1)
	}
}

func TestPipelineProgressMidInterview(t *testing.T) {
	cfg := e2eConfig()
	cat := catalog.New()
	p := pipeline.New(cfg, cat, logger.NewTestLogger(t))

	full := fullInterview(cat)
	// System message plus three full exchanges.
	partial := full[:7]

	progress := p.Analyze(partial)
	assert.False(t, progress.IsComplete)
	assert.Equal(t, 3, progress.TopicsCovered)
	assert.Equal(t, 4, progress.CurrentPosition)
	require.NotEmpty(t, progress.NextQuestion)
	assert.True(t, strings.Contains(progress.NextQuestion, "management team"))
}
