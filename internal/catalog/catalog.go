// internal/catalog/catalog.go
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCatalog = errors.New("INVALID_CATALOG")
)

// Topic is one subject of the guided interview. Position is 1-based and
// strictly ordered; the interview advances through topics in position order.
type Topic struct {
	ID                 string   `json:"id"`
	Position           int      `json:"position"`
	Question           string   `json:"question"`
	SatisfactionPrompt string   `json:"satisfactionPrompt"`
	Keywords           []string `json:"keywords"`
	Phrases            []string `json:"phrases"`
}

// Template describes one slide kind of the render plan: its canonical
// position, the render template it binds to, the ContentDocument section it
// reads, and the keyword set the scorer uses to judge conversational support.
type Template struct {
	ID           string   `json:"id"`
	Template     string   `json:"template"`
	Position     int      `json:"position"`
	Title        string   `json:"title"`
	ContentKey   string   `json:"contentKey"`
	Keywords     []string `json:"keywords"`
	MinKeywords  int      `json:"minKeywords"`
	Required     bool     `json:"required"`
	TableHeaders []string `json:"tableHeaders,omitempty"`
}

// Catalog is the only long-lived state of the pipeline: the ordered topic
// list, the slide template list, and the required content sections. It is
// immutable after construction; every analysis call reads it concurrently
// without locking.
type Catalog struct {
	topics      []Topic
	templates   []Template
	sections    []string
	topicByID   map[string]int
	tmplByID    map[string]int
	sectionsSet map[string]struct{}
}

// New builds the built-in catalog.
func New() *Catalog {
	c, err := Build(defaultTopics(), defaultTemplates(), requiredContentSections())
	if err != nil {
		// The built-in definitions are validated by tests; a failure here is
		// a programming error, not an input error.
		panic(err)
	}
	return c
}

// Build assembles and validates a catalog from explicit definitions. Used by
// New and by pkg/registry when a deployment overrides the interview content.
func Build(topics []Topic, templates []Template, sections []string) (*Catalog, error) {
	if len(topics) == 0 {
		return nil, fmt.Errorf("%w: no topics", ErrInvalidCatalog)
	}
	c := &Catalog{
		topics:      topics,
		templates:   templates,
		sections:    sections,
		topicByID:   make(map[string]int, len(topics)),
		tmplByID:    make(map[string]int, len(templates)),
		sectionsSet: make(map[string]struct{}, len(sections)),
	}
	for i, t := range topics {
		if t.Position != i+1 {
			return nil, fmt.Errorf("%w: topic %q has position %d, want %d", ErrInvalidCatalog, t.ID, t.Position, i+1)
		}
		if _, dup := c.topicByID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate topic id %q", ErrInvalidCatalog, t.ID)
		}
		c.topicByID[t.ID] = i
	}
	for i, t := range templates {
		if t.Position != i+1 {
			return nil, fmt.Errorf("%w: template %q has position %d, want %d", ErrInvalidCatalog, t.ID, t.Position, i+1)
		}
		if _, dup := c.tmplByID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate template id %q", ErrInvalidCatalog, t.ID)
		}
		c.tmplByID[t.ID] = i
	}
	for _, s := range sections {
		c.sectionsSet[s] = struct{}{}
	}
	return c, nil
}

// Topics returns the ordered topic list.
func (c *Catalog) Topics() []Topic { return c.topics }

// Templates returns the ordered template list.
func (c *Catalog) Templates() []Template { return c.templates }

// RequiredSections returns the content sections every repaired
// ContentDocument must carry.
func (c *Catalog) RequiredSections() []string { return c.sections }

// TopicByID looks a topic up by id.
func (c *Catalog) TopicByID(id string) (Topic, bool) {
	i, ok := c.topicByID[id]
	if !ok {
		return Topic{}, false
	}
	return c.topics[i], true
}

// TopicAt returns the topic at a 1-based position.
func (c *Catalog) TopicAt(position int) (Topic, bool) {
	if position < 1 || position > len(c.topics) {
		return Topic{}, false
	}
	return c.topics[position-1], true
}

// TemplateByID looks a slide template up by id.
func (c *Catalog) TemplateByID(id string) (Template, bool) {
	i, ok := c.tmplByID[id]
	if !ok {
		return Template{}, false
	}
	return c.templates[i], true
}

// TemplatesForRender returns all templates whose render template name matches,
// in canonical order. A render template like buyer_profiles serves several
// catalog entries that differ only by content key.
func (c *Catalog) TemplatesForRender(render string) []Template {
	var out []Template
	for _, t := range c.templates {
		if t.Template == render {
			out = append(out, t)
		}
	}
	return out
}

// MatchScore counts how strongly text matches a topic. Phrase hits outweigh
// keyword hits: phrases are distinctive question fragments, keywords are
// single domain words that also appear in adjacent topics.
func (t Topic) MatchScore(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, p := range t.Phrases {
		if strings.Contains(lower, p) {
			score += 3
		}
	}
	for _, k := range t.Keywords {
		if containsWord(lower, k) {
			score++
		}
	}
	return score
}

// KeywordHits returns which of the topic's keywords occur in text.
func (t Topic) KeywordHits(text string) []string {
	lower := strings.ToLower(text)
	var hits []string
	for _, k := range t.Keywords {
		if containsWord(lower, k) {
			hits = append(hits, k)
		}
	}
	return hits
}

// KeywordHits returns which of the template's keywords occur in text.
func (t Template) KeywordHits(text string) []string {
	lower := strings.ToLower(text)
	var hits []string
	for _, k := range t.Keywords {
		if containsWord(lower, k) {
			hits = append(hits, k)
		}
	}
	return hits
}

// BestMatch picks the strongest topic match for text among candidates.
// Candidates must be in ascending position order; ties resolve to the
// earliest candidate so a long multi-subject answer cannot be attributed to
// a later topic than the one actually being asked.
func BestMatch(text string, candidates []Topic) (Topic, int, bool) {
	var best Topic
	bestScore := 0
	for _, t := range candidates {
		if s := t.MatchScore(text); s > bestScore {
			best, bestScore = t, s
		}
	}
	return best, bestScore, bestScore > 0
}

// containsWord reports whether needle occurs in haystack on a word boundary
// for single-word needles, or as a plain substring for multi-word needles.
func containsWord(haystack, needle string) bool {
	if strings.ContainsRune(needle, ' ') {
		return strings.Contains(haystack, needle)
	}
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(needle)
		beforeOK := start == 0 || !isWordByte(haystack[start-1])
		afterOK := end == len(haystack) || !isWordByte(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
		if idx >= len(haystack) {
			return false
		}
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
