// internal/scorer/scorer.go
package scorer

import (
	"sort"
	"strings"

	"pitchdeck-pipeline/internal/catalog"
	"pitchdeck-pipeline/internal/common/logger"
	"pitchdeck-pipeline/internal/models"
)

// SlideScore is the scoring verdict for one slide template.
type SlideScore struct {
	TemplateID   string   `json:"templateId"`
	Template     string   `json:"template"`
	Score        float64  `json:"score"`
	KeywordHits  []string `json:"keywordHits,omitempty"`
	ContextBonus float64  `json:"contextBonus"`
	Required     bool     `json:"required"`
	Recommended  bool     `json:"recommended"`
	Borderline   bool     `json:"borderline"`
	Selected     bool     `json:"selected"`
}

// Selection is the scored template list plus the ids chosen for the deck, in
// canonical slide order.
type Selection struct {
	Scores      []SlideScore `json:"scores"`
	SelectedIDs []string     `json:"selectedIds"`
}

// Scorer decides which slide templates the conversation supports. Stateless
// and safe for concurrent use.
type Scorer struct {
	config  *Config
	catalog *catalog.Catalog
	logger  logger.Logger
}

func New(cfg *Config, cat *catalog.Catalog, log logger.Logger) *Scorer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Scorer{
		config:  cfg,
		catalog: cat,
		logger:  log.WithFields(map[string]interface{}{"component": "scorer"}),
	}
}

// Score evaluates every catalog template against the transcript and selects
// the slides the deck should carry. Required templates are always selected;
// the rest compete on keyword support and conversational depth.
func (s *Scorer) Score(transcript models.Transcript) *Selection {
	templates := s.catalog.Templates()
	text := transcript.ConversationText()

	scores := make([]SlideScore, 0, len(templates))
	for _, tmpl := range templates {
		scores = append(scores, s.scoreTemplate(tmpl, text, transcript))
	}

	s.selectSlides(scores)

	sel := &Selection{Scores: scores}
	for _, sc := range scores {
		if sc.Selected {
			sel.SelectedIDs = append(sel.SelectedIDs, sc.TemplateID)
		}
	}

	s.logger.Info("slide selection complete", map[string]interface{}{
		"selected": len(sel.SelectedIDs),
		"total":    len(templates),
	})
	return sel
}

func (s *Scorer) scoreTemplate(tmpl catalog.Template, text string, transcript models.Transcript) SlideScore {
	hits := tmpl.KeywordHits(text)
	ratio := 0.0
	if len(tmpl.Keywords) > 0 {
		ratio = float64(len(hits)) / float64(len(tmpl.Keywords))
	}

	bonus := s.contextBonus(tmpl, transcript)
	score := ratio + bonus
	if score > 1.0 {
		score = 1.0
	}

	sc := SlideScore{
		TemplateID:   tmpl.ID,
		Template:     tmpl.Template,
		Score:        score,
		KeywordHits:  hits,
		ContextBonus: bonus,
		Required:     tmpl.Required,
	}
	sc.Recommended = score >= s.config.RecommendThreshold && len(hits) >= tmpl.MinKeywords
	sc.Borderline = !sc.Recommended && score >= s.config.BorderlineThreshold
	return sc
}

// contextBonus rewards depth: the longer the turns that discuss a template's
// vocabulary, the more material exists to fill the slide. Averaged word count
// of matching turns, scaled down and capped.
func (s *Scorer) contextBonus(tmpl catalog.Template, transcript models.Transcript) float64 {
	matching := 0
	totalWords := 0
	for _, m := range transcript {
		if m.IsSystem() {
			continue
		}
		if len(tmpl.KeywordHits(m.Content)) == 0 {
			continue
		}
		matching++
		totalWords += len(strings.Fields(m.Content))
	}
	if matching == 0 {
		return 0
	}
	bonus := float64(totalWords) / float64(matching) / 100.0
	if bonus > s.config.ContextBonusCap {
		bonus = s.config.ContextBonusCap
	}
	return bonus
}

// selectSlides marks the Selected flag in place. Scores are in canonical
// order and stay that way.
func (s *Scorer) selectSlides(scores []SlideScore) {
	count := 0
	for i := range scores {
		if scores[i].Required || scores[i].Recommended {
			scores[i].Selected = true
			count++
		}
	}

	// Borderline slides fill remaining room under the cap, strongest first.
	if count < s.config.MaxSlides {
		order := make([]int, 0, len(scores))
		for i := range scores {
			if !scores[i].Selected && scores[i].Borderline {
				order = append(order, i)
			}
		}
		sort.SliceStable(order, func(a, b int) bool {
			return scores[order[a]].Score > scores[order[b]].Score
		})
		for _, i := range order {
			if count >= s.config.MaxSlides {
				break
			}
			scores[i].Selected = true
			count++
		}
	}

	// Over the cap: drop the weakest optional slides.
	if count > s.config.MaxSlides {
		order := make([]int, 0, len(scores))
		for i := range scores {
			if scores[i].Selected && !scores[i].Required {
				order = append(order, i)
			}
		}
		sort.SliceStable(order, func(a, b int) bool {
			return scores[order[a]].Score < scores[order[b]].Score
		})
		for _, i := range order {
			if count <= s.config.MaxSlides {
				break
			}
			scores[i].Selected = false
			count--
		}
	}

	// Under the floor: backfill the strongest unselected slides.
	if count < s.config.MinSlides {
		order := make([]int, 0, len(scores))
		for i := range scores {
			if !scores[i].Selected {
				order = append(order, i)
			}
		}
		sort.SliceStable(order, func(a, b int) bool {
			return scores[order[a]].Score > scores[order[b]].Score
		})
		for _, i := range order {
			if count >= s.config.MinSlides {
				break
			}
			scores[i].Selected = true
			count++
		}
	}
}
