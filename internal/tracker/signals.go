// internal/tracker/signals.go
package tracker

import (
	"regexp"
	"strings"
)

// Conversational signal detection. All checks operate on lowercased text and
// look for explicit phrasing; ambiguous wording falls through to the direct
// answer evaluation.

var researchPhrases = []string{
	"research this",
	"research it",
	"research that",
	"research for me",
	"research yourself",
	"do the research",
	"please research",
	"can you research",
	"find information",
	"find out for me",
	"look it up",
	"look this up",
	"look up",
}

var skipPhrases = []string{
	"skip this topic",
	"skip this",
	"skip topic",
	"skip it",
	"skip slide",
	"next topic",
	"move to next",
	"move to the next",
	"next section",
	"go to next",
	"proceed to next",
}

var repetitionPhrases = []string{
	"already asked",
	"asked this before",
	"asked that before",
	"you keep asking",
	"stop repeating",
	"same question",
	"repeating yourself",
	"asked me this already",
}

var ackWords = map[string]struct{}{
	"yes":        {},
	"yep":        {},
	"yeah":       {},
	"ok":         {},
	"okay":       {},
	"correct":    {},
	"satisfied":  {},
	"good":       {},
	"great":      {},
	"right":      {},
	"sure":       {},
	"fine":       {},
	"proceed":    {},
	"continue":   {},
	"next":       {},
	"sufficient": {},
}

var ackPhrases = []string{
	"go ahead",
	"looks good",
	"sounds good",
	"that works",
	"that's sufficient",
	"that is sufficient",
	"i'm satisfied",
	"i am satisfied",
}

var advancePhrases = []string{
	"next topic",
	"move on",
	"let's continue",
	"lets continue",
	"proceed",
	"that's enough",
	"that is enough",
	"sufficient",
}

var negationWords = map[string]struct{}{
	"no":     {},
	"not":    {},
	"don't":  {},
	"dont":   {},
	"never":  {},
	"wrong":  {},
	"isn't":  {},
	"wasn't": {},
}

func isResearchRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range researchPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	// A short message built around the word "research" is a delegation even
	// without one of the stock phrasings.
	if strings.Contains(lower, "research") && len(strings.Fields(lower)) <= 8 {
		return true
	}
	return false
}

func isSkipDirective(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range skipPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func isRepetitionComplaint(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range repetitionPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// isAcknowledgement reports whether a short user turn accepts the preceding
// material. Long turns are answers, not acknowledgements.
func isAcknowledgement(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(strings.Map(stripPunct, lower))
	if len(words) == 0 || len(words) > 6 {
		return false
	}
	for _, w := range words {
		if _, neg := negationWords[w]; neg {
			return false
		}
	}
	if _, ok := ackWords[words[0]]; ok {
		return true
	}
	for _, p := range ackPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func isAdvanceDirective(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range advancePhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// looksLikeQuestion reports whether an assistant turn is asking the user
// something rather than presenting material.
func looksLikeQuestion(text string) bool {
	if strings.Contains(text, "?") {
		return true
	}
	return strings.Contains(strings.ToLower(text), "let's")
}

// hasConcreteDetail reports whether text carries a number, a currency or
// percent figure, or a mid-sentence proper noun.
func hasConcreteDetail(text string) bool {
	for _, r := range text {
		if r >= '0' && r <= '9' || r == '$' || r == '%' {
			return true
		}
	}
	words := strings.Fields(text)
	for i, w := range words {
		if i == 0 {
			continue
		}
		prev := words[i-1]
		if strings.HasSuffix(prev, ".") || strings.HasSuffix(prev, "?") || strings.HasSuffix(prev, "!") {
			continue
		}
		c := w[0]
		if c >= 'A' && c <= 'Z' && !strings.EqualFold(w, "i") {
			return true
		}
	}
	return false
}

func stripPunct(r rune) rune {
	switch r {
	case '.', ',', '!', '?', ';', ':':
		return ' '
	}
	return r
}

// Company name extraction. The trigger phrase matches case-insensitively but
// the captured name must be capitalized, so "my company is a startup" does
// not yield a name.
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:(?i:my company is called|our company is called|the company is called|my company is|our company is|the company is named|we are called|company name is))\s+([A-Z][A-Za-z0-9&.\-]*(?:\s+[A-Z][A-Za-z0-9&.\-]*)*)`),
	regexp.MustCompile(`^([A-Z][A-Za-z0-9&.\-]+(?:\s+[A-Z][A-Za-z0-9&.\-]+)*)\s+(?:is|provides|makes|sells|operates)\s`),
}

var companyStopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "we": {}, "it": {}, "i": {},
}

// detectCompanyName scans text for an introduction pattern and returns the
// captured name, or "" when none is found.
func detectCompanyName(text string) string {
	for _, re := range companyPatterns {
		if m := re.FindStringSubmatch(strings.TrimSpace(text)); len(m) > 1 {
			name := strings.TrimRight(m[1], ".,-")
			if _, stop := companyStopWords[strings.ToLower(name)]; stop {
				continue
			}
			if name != "" {
				return name
			}
		}
	}
	return ""
}
