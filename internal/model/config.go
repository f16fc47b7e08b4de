package model

// Config is the complete legalguard configuration
type Config struct {
	Calendar     CalendarConfig     `yaml:"calendar" mapstructure:"calendar"`
	Citation     CitationConfig     `yaml:"citation" mapstructure:"citation"`
	Liability    LiabilityConfig    `yaml:"liability" mapstructure:"liability"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
}

// CalendarConfig selects the holiday calendar used when a claim names none
type CalendarConfig struct {
	DefaultCountry     string `yaml:"default_country" mapstructure:"default_country"`
	DefaultSubdivision string `yaml:"default_subdivision" mapstructure:"default_subdivision"`
}

// CitationConfig tunes citation validation
type CitationConfig struct {
	RequireYear bool `yaml:"require_year" mapstructure:"require_year"` // Missing "(… 2019)" is an issue
}

// LiabilityConfig tunes amount comparison
type LiabilityConfig struct {
	TolerancePercent float64 `yaml:"tolerance_percent" mapstructure:"tolerance_percent"` // 0 requires an exact match to the cent
}

// OutputConfig controls rendering and exit status
type OutputConfig struct {
	Format           string `yaml:"format" mapstructure:"format"`                         // json, yaml, markdown, text
	FailOnUnverified bool   `yaml:"fail_on_unverified" mapstructure:"fail_on_unverified"` // Exit 1 when any claim fails
	Verbose          bool   `yaml:"verbose" mapstructure:"verbose"`
}

// ConcurrencyConfig sizes the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig throttles batch claims per kind (0 disables)
type RateLimitingConfig struct {
	ClaimsPerSecond float64 `yaml:"claims_per_second" mapstructure:"claims_per_second"`
	BurstSize       int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		Calendar: CalendarConfig{
			DefaultCountry: "US",
		},
		Citation: CitationConfig{
			RequireYear: true,
		},
		Output: OutputConfig{
			Format:           "text",
			FailOnUnverified: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			ClaimsPerSecond: 0,
			BurstSize:       10,
		},
	}
}
