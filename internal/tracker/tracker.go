// internal/tracker/tracker.go
package tracker

import (
	"strings"

	"pitchdeck-pipeline/internal/catalog"
	"pitchdeck-pipeline/internal/common/logger"
	"pitchdeck-pipeline/internal/models"
)

// Progress is the full derived interview state for one transcript. It is
// recomputed from scratch on every call; the tracker itself holds no
// per-conversation state.
type Progress struct {
	TopicsCovered        int      `json:"topicsCovered"`
	TopicsSkipped        int      `json:"topicsSkipped"`
	TotalTopics          int      `json:"totalTopics"`
	CoveredIDs           []string `json:"coveredIds"`
	SkippedIDs           []string `json:"skippedIds"`
	CurrentTopicID       string   `json:"currentTopicId,omitempty"`
	CurrentPosition      int      `json:"currentPosition,omitempty"`
	NextQuestion         string   `json:"nextQuestion,omitempty"`
	IsComplete           bool     `json:"isComplete"`
	AwaitingSatisfaction bool     `json:"awaitingSatisfaction"`
	SatisfactionPrompt   string   `json:"satisfactionPrompt,omitempty"`
	CompanyName          string   `json:"companyName,omitempty"`
}

// Tracker derives interview progress from a transcript. It is stateless and
// safe for concurrent use.
type Tracker struct {
	config  *Config
	catalog *catalog.Catalog
	logger  logger.Logger
}

func New(cfg *Config, cat *catalog.Catalog, log logger.Logger) *Tracker {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Tracker{
		config:  cfg,
		catalog: cat,
		logger:  log.WithFields(map[string]interface{}{"component": "tracker"}),
	}
}

// Analyze replays the transcript and returns the derived progress. It never
// fails: an empty or odd transcript simply yields zero coverage and the first
// topic's question.
func (t *Tracker) Analyze(transcript models.Transcript) *Progress {
	topics := t.catalog.Topics()
	n := len(topics)
	covered := make([]bool, n)
	skipped := make([]bool, n)

	msgs := make([]models.Message, 0, len(transcript))
	for _, m := range transcript {
		if !m.IsSystem() {
			msgs = append(msgs, m)
		}
	}

	companyName := ""
	for _, m := range msgs {
		if companyName == "" && m.IsUser() {
			companyName = detectCompanyName(m.Content)
		}
	}

	i := 0
	for i < len(msgs) {
		cur := firstOpen(covered, skipped)
		if cur < 0 {
			break
		}
		m := msgs[i]
		if !m.IsAssistant() || !looksLikeQuestion(m.Content) {
			i++
			continue
		}
		topic := topics[cur]

		j := nextUser(msgs, i+1)
		if j < 0 {
			break // question still pending
		}
		reply := msgs[j]

		// Coverage always applies to the earliest open topic. A question
		// aimed squarely at a later topic is not attributed at all: its reply
		// would otherwise count toward the open topic through the concrete
		// detail heuristic alone.
		if best, _, ok := catalog.BestMatch(m.Content, t.openTopics(topics, covered, skipped)); ok &&
			best.Position != topic.Position && topic.MatchScore(m.Content) == 0 {
			t.logger.Debug("question targets a later topic, exchange not attributed", map[string]interface{}{
				"openTopic":    topic.ID,
				"matchedTopic": best.ID,
			})
			i = j + 1
			continue
		}

		switch {
		case isRepetitionComplaint(reply.Content):
			// The user has refused to re-answer; force the topic closed so
			// the interview cannot stall on it.
			covered[cur] = true
			t.logger.Debug("topic force-closed on repetition complaint", map[string]interface{}{
				"topic": topic.ID,
			})
			i = j + 1
		case isSkipDirective(reply.Content):
			skipped[cur] = true
			i = j + 1
		case isResearchRequest(reply.Content):
			done, resume := t.researchOutcome(msgs, j, topic)
			if done {
				covered[cur] = true
			}
			i = resume
		default:
			if t.isDirectAnswer(reply.Content, topic) {
				covered[cur] = true
			}
			i = j + 1
		}
	}

	return t.buildProgress(topics, covered, skipped, msgs, companyName)
}

// researchOutcome follows a research delegation starting at the user request
// msgs[j]. Coverage requires the full exchange: the request, a substantive
// assistant reply, and a user acknowledgement. Returns whether the topic was
// covered and the index to resume the walk from.
func (t *Tracker) researchOutcome(msgs []models.Message, j int, topic catalog.Topic) (bool, int) {
	idx := j
	for {
		k := nextAssistant(msgs, idx+1)
		if k < 0 {
			return false, len(msgs)
		}
		reply := msgs[k]
		substantive := len(strings.TrimSpace(reply.Content)) >= t.config.MinResearchChars &&
			len(topic.KeywordHits(reply.Content)) >= t.config.MinResearchKeywords

		l := nextUser(msgs, k+1)
		if l < 0 {
			return false, len(msgs)
		}
		follow := msgs[l].Content

		if substantive && (isAcknowledgement(follow) || isAdvanceDirective(follow)) {
			return true, l + 1
		}
		if isResearchRequest(follow) {
			idx = l
			continue
		}
		if t.isDirectAnswer(follow, topic) {
			// The user answered in their own words instead of acknowledging.
			return true, l + 1
		}
		return false, l + 1
	}
}

// isDirectAnswer applies the coverage conjunction: enough words plus either a
// topic keyword or a concrete detail. Delegations and directives never count.
func (t *Tracker) isDirectAnswer(text string, topic catalog.Topic) bool {
	if isResearchRequest(text) || isSkipDirective(text) || isAcknowledgement(text) {
		return false
	}
	if len(strings.Fields(text)) < t.config.MinAnswerWords {
		return false
	}
	if len(topic.KeywordHits(text)) > 0 {
		return true
	}
	return hasConcreteDetail(text)
}

func (t *Tracker) buildProgress(topics []catalog.Topic, covered, skipped []bool, msgs []models.Message, companyName string) *Progress {
	p := &Progress{
		TotalTopics: len(topics),
		CompanyName: companyName,
	}
	for i, topic := range topics {
		if covered[i] {
			p.TopicsCovered++
			p.CoveredIDs = append(p.CoveredIDs, topic.ID)
		}
		if skipped[i] {
			p.TopicsSkipped++
			p.SkippedIDs = append(p.SkippedIDs, topic.ID)
		}
	}

	cur := firstOpen(covered, skipped)
	if cur < 0 {
		p.IsComplete = true
		return p
	}

	topic := topics[cur]
	p.CurrentTopicID = topic.ID
	p.CurrentPosition = topic.Position
	p.NextQuestion = topic.Question
	p.SatisfactionPrompt = topic.SatisfactionPrompt

	if len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		switch {
		case last.IsAssistant() && strings.Contains(strings.ToLower(last.Content), "satisfied"):
			p.AwaitingSatisfaction = true
		case last.IsUser() && isResearchRequest(last.Content):
			p.AwaitingSatisfaction = true
		}
	}
	return p
}

func (t *Tracker) openTopics(topics []catalog.Topic, covered, skipped []bool) []catalog.Topic {
	var open []catalog.Topic
	for i, topic := range topics {
		if !covered[i] && !skipped[i] {
			open = append(open, topic)
		}
	}
	return open
}

func firstOpen(covered, skipped []bool) int {
	for i := range covered {
		if !covered[i] && !skipped[i] {
			return i
		}
	}
	return -1
}

func nextUser(msgs []models.Message, from int) int {
	for i := from; i < len(msgs); i++ {
		if msgs[i].IsUser() {
			return i
		}
	}
	return -1
}

func nextAssistant(msgs []models.Message, from int) int {
	for i := from; i < len(msgs); i++ {
		if msgs[i].IsAssistant() {
			return i
		}
	}
	return -1
}
