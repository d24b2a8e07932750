// internal/scorer/config.go
package scorer

// Config holds the selection thresholds of the adaptive content scorer.
type Config struct {
	// RecommendThreshold is the minimum score for a slide that also passes
	// its keyword gate.
	RecommendThreshold float64

	// BorderlineThreshold is the minimum score for a slide that misses its
	// keyword gate but may still be included under the slide cap.
	BorderlineThreshold float64

	// MaxSlides caps the selected deck size.
	MaxSlides int

	// MinSlides is the floor below which the highest scoring slides are
	// backfilled.
	MinSlides int

	// ContextBonusCap limits how much conversational depth can lift a score.
	ContextBonusCap float64
}

func DefaultConfig() *Config {
	return &Config{
		RecommendThreshold:  0.6,
		BorderlineThreshold: 0.65,
		MaxSlides:           10,
		MinSlides:           3,
		ContextBonusCap:     0.3,
	}
}
