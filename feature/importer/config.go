package importer

// Config holds configuration for the reconciliation pipeline.
type Config struct {
	// PageSize is the number of records per batch. Each batch costs one
	// existence-check round trip, so larger pages mean fewer queries but
	// longer query strings.
	PageSize int `mapstructure:"page_size" default:"10"`
	// Workers bounds concurrent create/update calls within a batch.
	Workers int `mapstructure:"workers" default:"4"`
	// RateLimitRPS caps outbound calls per second across all workers.
	// Zero disables the limit.
	RateLimitRPS float64 `mapstructure:"rate_limit_rps" default:"0"`
}
