package model

import "time"

// Config is the full application configuration.
// Populated from defaults, then ~/.axislab/config.yaml, then AXISLAB_* env
// vars, then CLI flags (highest priority).
type Config struct {
	Server      ServerConfig      `yaml:"server" json:"server"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Indicators  IndicatorConfig   `yaml:"indicators" json:"indicators"`
	Limits      LimitsConfig      `yaml:"limits" json:"limits"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr              string        `yaml:"addr" json:"addr"`
	ReadTimeout       time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout" json:"write_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int           `yaml:"burst" json:"burst"`
}

// LLMConfig configures the generation backend client.
type LLMConfig struct {
	Provider    string  `yaml:"provider" json:"provider"` // "ollama", "openai", "" (disabled)
	Model       string  `yaml:"model" json:"model"`
	APIKey      string  `yaml:"-" json:"-"` // env only, never written to config files
	BaseURL     string  `yaml:"base_url" json:"base_url"`
	Timeout     int     `yaml:"timeout" json:"timeout"` // seconds
	Temperature float64 `yaml:"temperature" json:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
}

// IndicatorConfig holds the tunable thresholds for micro-indicator
// classification. Zero values mean "use default"; explicit invalid values
// are rejected by indicator.NewConfig.
type IndicatorConfig struct {
	CompressionRatio float64  `yaml:"compression_ratio" json:"compression_ratio"`
	ExpansionRatio   float64  `yaml:"expansion_ratio" json:"expansion_ratio"`
	MinTokens        int      `yaml:"min_tokens" json:"min_tokens"`
	ModalityDensity  float64  `yaml:"modality_density_threshold" json:"modality_density_threshold"`
	Enabled          []string `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	LexiconDir       string   `yaml:"lexicon_dir,omitempty" json:"lexicon_dir,omitempty"`
}

// LimitsConfig guards the O(m*n) alignment against pathological inputs.
type LimitsConfig struct {
	MaxTokensPerSide int `yaml:"max_tokens_per_side" json:"max_tokens_per_side"`
	MaxBodyBytes     int `yaml:"max_body_bytes" json:"max_body_bytes"`
}

// CacheConfig configures the in-memory analysis result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// ConcurrencyConfig bounds worker pools.
type ConcurrencyConfig struct {
	ClassifyWorkers int `yaml:"classify_workers" json:"classify_workers"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              "127.0.0.1:8242",
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      2 * time.Minute,
			RequestsPerSecond: 5,
			Burst:             10,
		},
		LLM: LLMConfig{
			Provider:    "ollama",
			Model:       "gemma2:2b",
			BaseURL:     "",
			Timeout:     120,
			Temperature: 0.2,
			MaxTokens:   512,
		},
		Indicators: IndicatorConfig{
			CompressionRatio: 2.0,
			ExpansionRatio:   2.0,
			MinTokens:        2,
			ModalityDensity:  0.3,
		},
		Limits: LimitsConfig{
			MaxTokensPerSide: 5000,
			MaxBodyBytes:     1 << 20, // 1 MiB request bodies
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			ClassifyWorkers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
