// internal/repair/config.go
package repair

// Config holds the switches of the document repairer.
type Config struct {
	// ConvertBuyerFinancials enables synthesizing conglomerate entries from
	// buyer profiles when the conglomerates section is empty.
	ConvertBuyerFinancials bool

	// RevenueMultiple is applied to the latest revenue figure when an
	// enterprise value must be derived.
	RevenueMultiple float64
}

func DefaultConfig() *Config {
	return &Config{
		ConvertBuyerFinancials: true,
		RevenueMultiple:        3.0,
	}
}
