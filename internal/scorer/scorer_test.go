// internal/scorer/scorer_test.go
package scorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchdeck-pipeline/internal/catalog"
	"pitchdeck-pipeline/internal/common/logger"
	"pitchdeck-pipeline/internal/models"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	return New(DefaultConfig(), catalog.New(), logger.NewTestLogger(t))
}

func userMsg(content string) models.Message {
	return models.Message{Role: models.RoleUser, Content: content}
}

// richTurn builds a long user turn containing every keyword of the template
// so its ratio is 1.0 and the context bonus saturates.
func richTurn(tmpl catalog.Template) models.Message {
	var b strings.Builder
	b.WriteString("Let me go deep on this area. ")
	for b.Len() < 400 {
		for _, k := range tmpl.Keywords {
			b.WriteString(k)
			b.WriteString(" details matter here. ")
		}
	}
	return userMsg(b.String())
}

func TestScoreEmptyTranscript(t *testing.T) {
	s := newTestScorer(t)

	sel := s.Score(nil)

	require.Len(t, sel.Scores, 14)
	// Only the required slides survive an empty conversation.
	assert.Equal(t, []string{"business_overview", "management_team", "historical_financial_performance"}, sel.SelectedIDs)
	for _, sc := range sel.Scores {
		assert.Zero(t, sc.Score)
	}
}

func TestScoreSelectsSupportedSlides(t *testing.T) {
	s := newTestScorer(t)
	cat := catalog.New()

	valuation, ok := cat.TemplateByID("valuation_overview")
	require.True(t, ok)

	sel := s.Score(models.Transcript{richTurn(valuation)})

	assert.Contains(t, sel.SelectedIDs, "valuation_overview")
	assert.NotContains(t, sel.SelectedIDs, "sea_conglomerates")

	var sc SlideScore
	for _, cand := range sel.Scores {
		if cand.TemplateID == "valuation_overview" {
			sc = cand
		}
	}
	assert.True(t, sc.Recommended)
	assert.GreaterOrEqual(t, sc.Score, 0.6)
	assert.InDelta(t, 0.3, sc.ContextBonus, 0.001)
}

func TestScoreCapAndRequired(t *testing.T) {
	s := newTestScorer(t)
	cat := catalog.New()

	var transcript models.Transcript
	for _, tmpl := range cat.Templates() {
		transcript = append(transcript, richTurn(tmpl))
	}

	sel := s.Score(transcript)

	assert.Len(t, sel.SelectedIDs, s.config.MaxSlides)
	assert.Contains(t, sel.SelectedIDs, "business_overview")
	assert.Contains(t, sel.SelectedIDs, "management_team")
	assert.Contains(t, sel.SelectedIDs, "historical_financial_performance")
}

func TestScoreCanonicalOrderPreserved(t *testing.T) {
	s := newTestScorer(t)
	cat := catalog.New()

	var transcript models.Transcript
	for _, id := range []string{"sea_conglomerates", "valuation_overview"} {
		tmpl, ok := cat.TemplateByID(id)
		require.True(t, ok)
		transcript = append(transcript, richTurn(tmpl))
	}

	sel := s.Score(transcript)

	// Selection order follows catalog positions, not conversation order.
	positions := make([]int, 0, len(sel.SelectedIDs))
	for _, id := range sel.SelectedIDs {
		tmpl, ok := cat.TemplateByID(id)
		require.True(t, ok)
		positions = append(positions, tmpl.Position)
	}
	for i := 1; i < len(positions); i++ {
		assert.Greater(t, positions[i], positions[i-1])
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := newTestScorer(t)
	tmpl, _ := catalog.New().TemplateByID("competitive_positioning")
	transcript := models.Transcript{richTurn(tmpl)}

	first := s.Score(transcript)
	second := s.Score(transcript)

	assert.Equal(t, first, second)
}
