package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the full application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Vocab       VocabConfig       `yaml:"vocab" mapstructure:"vocab"`
	Trust       TrustConfig       `yaml:"trust" mapstructure:"trust"`
	Signals     SignalConfig      `yaml:"signals" mapstructure:"signals"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	CORSOrigins     []string      `yaml:"cors_origins" mapstructure:"cors_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// HTTPConfig configures outbound probe fetches
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`               // Per-fetch budget
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`         // Sent on every probe request
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"` // Response read cap
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`     // Skip certificate verification
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"` // Honor robots.txt before probing
	RatePerHost   float64       `yaml:"rate_per_host" mapstructure:"rate_per_host"`   // Requests per second per host
	RateBurst     int           `yaml:"rate_burst" mapstructure:"rate_burst"`
	HTTPProxy     string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// CacheConfig configures URL signal caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// VocabConfig configures the domain vocabulary table
type VocabConfig struct {
	DefaultDomain string `yaml:"default_domain" mapstructure:"default_domain"` // Used when a request names no known domain
	File          string `yaml:"file" mapstructure:"file"`                     // Optional YAML file merged over the built-ins
}

// TrustConfig configures trust scoring
type TrustConfig struct {
	Aggregation string `yaml:"aggregation" mapstructure:"aggregation"` // "mean" or "weighted"
}

// SignalConfig configures source-type inference from URLs.
// The hint lists are matched in rule order against host, path and page text.
type SignalConfig struct {
	AcademicTLDs []string `yaml:"academic_tlds" mapstructure:"academic_tlds"`
	GovTLDs      []string `yaml:"gov_tlds" mapstructure:"gov_tlds"`
	NewsHints    []string `yaml:"news_hints" mapstructure:"news_hints"`
	BlogHints    []string `yaml:"blog_hints" mapstructure:"blog_hints"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	SignalWorkers int `yaml:"signal_workers" mapstructure:"signal_workers"` // Concurrent probe fetches per request
	BatchWorkers  int `yaml:"batch_workers" mapstructure:"batch_workers"`   // Concurrent claims in batch mode
}

// LLMConfig configures the optional narrative provider
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "openai" or "" to disable
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"` // Override for openai-compatible endpoints
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // "json" or "console"
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults. Callers mutate the copy.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			CORSOrigins:     []string{"*"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		HTTP: HTTPConfig{
			Timeout:       4 * time.Second,
			UserAgent:     "ClaimGuard/1.0 (+https://github.com/ppiankov/claimguard)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
			RatePerHost:   2,
			RateBurst:     4,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCacheDir(),
			TTL:     12 * time.Hour,
		},
		Vocab: VocabConfig{
			DefaultDomain: "health",
		},
		Trust: TrustConfig{
			Aggregation: "mean",
		},
		Signals: DefaultSignalConfig(),
		Concurrency: ConcurrencyConfig{
			SignalWorkers: 8,
			BatchWorkers:  4,
		},
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// DefaultSignalConfig returns the built-in source-type inference hints.
// TLD lists are suffix-matched longest-first; hint lists are substring-matched.
func DefaultSignalConfig() SignalConfig {
	return SignalConfig{
		AcademicTLDs: []string{".edu", ".ac.uk", ".ac.in", ".ac", ".edu.au", ".edu.in"},
		GovTLDs:      []string{".gov", ".gov.uk", ".gov.in", ".gov.au"},
		NewsHints:    []string{"news", "reuters", "bbc", "nytimes", "bloomberg", "guardian"},
		BlogHints:    []string{"blog", "medium.com", "substack.com", "wordpress", "blogspot"},
	}
}

// defaultCacheDir places the cache under the user's home directory,
// falling back to a relative directory when home cannot be resolved
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".claimguard-cache"
	}
	return filepath.Join(home, ".claimguard", "cache")
}
