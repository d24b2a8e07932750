// internal/tracker/config.go
package tracker

// Config holds the coverage thresholds of the progress tracker.
type Config struct {
	// MinAnswerWords is the minimum word count before a direct answer can
	// cover a topic.
	MinAnswerWords int

	// MinResearchChars is the minimum length of an assistant research reply
	// before it counts as substantive.
	MinResearchChars int

	// MinResearchKeywords is the minimum number of distinct topic keywords a
	// substantive research reply must contain.
	MinResearchKeywords int
}

func DefaultConfig() *Config {
	return &Config{
		MinAnswerWords:      8,
		MinResearchChars:    250,
		MinResearchKeywords: 2,
	}
}
