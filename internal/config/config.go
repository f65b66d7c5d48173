// Package config holds the listing API configuration. Values are built once at
// startup and handed to constructors; nothing reads the environment afterwards.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/yourorg/listing-api/internal/logger"
)

// Config is the root configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	Higgsfield HiggsfieldConfig `yaml:"higgsfield"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    logger.Config    `yaml:"logging"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" env:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	// MaxBodyBytes caps inbound request bodies; larger bodies are read as {}.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"MAX_BODY_BYTES"`
}

// AnthropicConfig configures the text-generation provider. An empty APIKey
// puts both generators in fallback mode.
type AnthropicConfig struct {
	APIKey               string        `yaml:"api_key" env:"ANTHROPIC_API_KEY"`
	BaseURL              string        `yaml:"base_url" env:"ANTHROPIC_BASE_URL"`
	Version              string        `yaml:"version" env:"ANTHROPIC_VERSION"`
	Model                string        `yaml:"model" env:"ANTHROPIC_MODEL"`
	Timeout              time.Duration `yaml:"timeout" env:"ANTHROPIC_TIMEOUT"`
	MaxRetries           int           `yaml:"max_retries" env:"ANTHROPIC_MAX_RETRIES"`
	RequestsPerSecond    float64       `yaml:"requests_per_second" env:"ANTHROPIC_REQUESTS_PER_SECOND"`
	DescriptionMaxTokens int           `yaml:"description_max_tokens" env:"DESCRIPTION_MAX_TOKENS"`
	SocialMaxTokens      int           `yaml:"social_max_tokens" env:"SOCIAL_MAX_TOKENS"`
}

// Enabled reports whether a credential is configured.
func (a AnthropicConfig) Enabled() bool { return a.APIKey != "" }

// HiggsfieldConfig holds the video provider credentials. They only feed the
// health endpoint.
type HiggsfieldConfig struct {
	APIKey    string `yaml:"api_key" env:"HF_API_KEY"`
	APISecret string `yaml:"api_secret" env:"HF_API_SECRET"`
}

func (h HiggsfieldConfig) Configured() bool { return h.APIKey != "" }

type RateLimitConfig struct {
	// RequestsPerMinute per client IP; 0 disables the limiter.
	RequestsPerMinute int `yaml:"requests_per_minute" env:"RATE_LIMIT_PER_MINUTE"`
}

type MetricsConfig struct {
	// Addr for the prometheus listener; empty disables it.
	Addr string `yaml:"addr" env:"METRICS_ADDR"`
}

const (
	DefaultPort                 = 8000
	DefaultAnthropicBaseURL     = "https://api.anthropic.com"
	DefaultAnthropicVersion     = "2023-06-01"
	DefaultModel                = "claude-sonnet-4-20250514"
	DefaultUpstreamTimeout      = 30 * time.Second
	DefaultDescriptionMaxTokens = 500
	DefaultSocialMaxTokens      = 1000
	DefaultMaxBodyBytes         = 1 << 20
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	SetDefaults(cfg)
	return cfg
}

// SetDefaults fills zero values.
func SetDefaults(cfg *Config) {
	s := &cfg.Server
	if s.Port == 0 {
		s.Port = DefaultPort
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 10 * time.Second
	}
	// Demo runs two upstream calls back to back.
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 2*DefaultUpstreamTimeout + 15*time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 15 * time.Second
	}
	if s.MaxBodyBytes == 0 {
		s.MaxBodyBytes = DefaultMaxBodyBytes
	}

	a := &cfg.Anthropic
	if a.BaseURL == "" {
		a.BaseURL = DefaultAnthropicBaseURL
	}
	if a.Version == "" {
		a.Version = DefaultAnthropicVersion
	}
	if a.Model == "" {
		a.Model = DefaultModel
	}
	if a.Timeout == 0 {
		a.Timeout = DefaultUpstreamTimeout
	}
	if a.DescriptionMaxTokens == 0 {
		a.DescriptionMaxTokens = DefaultDescriptionMaxTokens
	}
	if a.SocialMaxTokens == 0 {
		a.SocialMaxTokens = DefaultSocialMaxTokens
	}

	cfg.Logging.SetDefaults()
}

// Validate rejects values the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.MaxBodyBytes < 0 {
		errs = append(errs, errors.New("server.max_body_bytes must not be negative"))
	}
	if c.Anthropic.Timeout <= 0 {
		errs = append(errs, errors.New("anthropic.timeout must be positive"))
	}
	if c.Anthropic.MaxRetries < 0 {
		errs = append(errs, errors.New("anthropic.max_retries must not be negative"))
	}
	if c.Anthropic.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("anthropic.requests_per_second must not be negative"))
	}
	if c.Anthropic.DescriptionMaxTokens <= 0 || c.Anthropic.SocialMaxTokens <= 0 {
		errs = append(errs, errors.New("anthropic token budgets must be positive"))
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("rate_limit.requests_per_minute must not be negative"))
	}
	return errors.Join(errs...)
}
