// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Tracker   TrackerConfig   `mapstructure:"tracker"`
	Scorer    ScorerConfig    `mapstructure:"scorer"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
	Repair    RepairConfig    `mapstructure:"repair"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// CatalogConfig points at an optional interview catalog override. When
// RegistryPath is empty the built-in catalog is used.
type CatalogConfig struct {
	RegistryPath string `mapstructure:"registry_path"`
}

// TrackerConfig holds the thresholds of the topic progress tracker.
type TrackerConfig struct {
	MinAnswerWords      int `mapstructure:"min_answer_words"`
	MinResearchChars    int `mapstructure:"min_research_chars"`
	MinResearchKeywords int `mapstructure:"min_research_keywords"`
}

// ScorerConfig holds the thresholds of the adaptive content scorer.
type ScorerConfig struct {
	RecommendThreshold  float64 `mapstructure:"recommend_threshold"`
	BorderlineThreshold float64 `mapstructure:"borderline_threshold"`
	MaxSlides           int     `mapstructure:"max_slides"`
	MinSlides           int     `mapstructure:"min_slides"`
	ContextBonusCap     float64 `mapstructure:"context_bonus_cap"`
}

// ExtractorConfig holds limits for the structured document extractor.
type ExtractorConfig struct {
	MaxScanBytes int `mapstructure:"max_scan_bytes"`
}

// RepairConfig holds switches for the document validator and repairer.
type RepairConfig struct {
	ConvertBuyerFinancials bool    `mapstructure:"convert_buyer_financials"`
	RevenueMultiple        float64 `mapstructure:"revenue_multiple"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
