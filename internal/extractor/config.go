// internal/extractor/config.go
package extractor

// Config holds limits for the extractor.
type Config struct {
	// MaxScanBytes caps how much of a response is scanned for documents.
	// Responses beyond the cap are truncated, not rejected.
	MaxScanBytes int
}

func DefaultConfig() *Config {
	return &Config{
		MaxScanBytes: 1 << 20,
	}
}
