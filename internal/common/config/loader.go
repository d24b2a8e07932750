// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	commonerrors "pitchdeck-pipeline/internal/common/errors"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like TRACKER_MIN_ANSWER_WORDS
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment overlay, e.g. config.production.yaml
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env from several locations so the binary and tests can
// run from any directory.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "deck-analyzer"
	}

	// Tracker defaults
	if cfg.Tracker.MinAnswerWords == 0 {
		cfg.Tracker.MinAnswerWords = 8
	}
	if cfg.Tracker.MinResearchChars == 0 {
		cfg.Tracker.MinResearchChars = 250
	}
	if cfg.Tracker.MinResearchKeywords == 0 {
		cfg.Tracker.MinResearchKeywords = 2
	}

	// Scorer defaults
	if cfg.Scorer.RecommendThreshold == 0 {
		cfg.Scorer.RecommendThreshold = 0.6
	}
	if cfg.Scorer.BorderlineThreshold == 0 {
		cfg.Scorer.BorderlineThreshold = 0.65
	}
	if cfg.Scorer.MaxSlides == 0 {
		cfg.Scorer.MaxSlides = 10
	}
	if cfg.Scorer.MinSlides == 0 {
		cfg.Scorer.MinSlides = 3
	}
	if cfg.Scorer.ContextBonusCap == 0 {
		cfg.Scorer.ContextBonusCap = 0.3
	}

	// Extractor defaults
	if cfg.Extractor.MaxScanBytes == 0 {
		cfg.Extractor.MaxScanBytes = 1 << 20
	}

	// Repair defaults
	if cfg.Repair.RevenueMultiple == 0 {
		cfg.Repair.RevenueMultiple = 3.0
	}
	if !viper.IsSet("repair.convert_buyer_financials") {
		cfg.Repair.ConvertBuyerFinancials = true
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Tracker.MinAnswerWords < 1 {
		return commonerrors.NewInvalidConfigurationError("tracker.min_answer_words must be positive")
	}
	if cfg.Scorer.RecommendThreshold <= 0 || cfg.Scorer.RecommendThreshold > 1 {
		return commonerrors.NewInvalidConfigurationError("scorer.recommend_threshold must be in (0, 1]")
	}
	if cfg.Scorer.BorderlineThreshold < cfg.Scorer.RecommendThreshold {
		return commonerrors.NewInvalidConfigurationError("scorer.borderline_threshold must not be below recommend_threshold")
	}
	if cfg.Scorer.MinSlides > cfg.Scorer.MaxSlides {
		return commonerrors.NewInvalidConfigurationError("scorer.min_slides must not exceed max_slides")
	}
	if cfg.Repair.RevenueMultiple <= 0 {
		return commonerrors.NewInvalidConfigurationError("repair.revenue_multiple must be positive")
	}
	return nil
}
