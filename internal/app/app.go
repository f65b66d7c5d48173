// Package app wires configuration into the HTTP handler. The server binary,
// the CLI and the serverless entry point all build the service through it.
package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yourorg/listing-api/claude"
	httpapi "github.com/yourorg/listing-api/http"
	"github.com/yourorg/listing-api/internal/config"
	"github.com/yourorg/listing-api/internal/generate"
	"github.com/yourorg/listing-api/internal/logger"
	"github.com/yourorg/listing-api/internal/metrics"
)

type App struct {
	Config    *config.Config
	Log       logger.Logger
	Generator *generate.Generator
	Registry  *prometheus.Registry
	Metrics   *metrics.Recorder
	Handler   http.Handler
}

// New builds the service. A nil registry disables metrics.
func New(cfg *config.Config, log logger.Logger, reg *prometheus.Registry) *App {
	if log == nil {
		log = logger.NewNop()
	}
	var rec *metrics.Recorder
	if reg != nil {
		rec = metrics.New(reg)
	}

	gen := NewGenerator(cfg, log, rec)
	handler := httpapi.NewRouter(httpapi.RouterDeps{
		Generator: gen,
		Meta: httpapi.MetaDeps{
			AIEnabled:            cfg.Anthropic.Enabled(),
			AnthropicConfigured:  cfg.Anthropic.Enabled(),
			HiggsfieldConfigured: cfg.Higgsfield.Configured(),
		},
		Log:                log,
		Metrics:            rec,
		MaxBodyBytes:       cfg.Server.MaxBodyBytes,
		RateLimitPerMinute: cfg.RateLimit.RequestsPerMinute,
	})

	return &App{
		Config:    cfg,
		Log:       log,
		Generator: gen,
		Registry:  reg,
		Metrics:   rec,
		Handler:   handler,
	}
}

// NewGenerator returns a generator backed by the Messages API when a key is
// configured and a template-only generator otherwise.
func NewGenerator(cfg *config.Config, log logger.Logger, rec *metrics.Recorder) *generate.Generator {
	opts := []generate.Option{
		generate.WithLogger(log),
		generate.WithTokenBudgets(cfg.Anthropic.DescriptionMaxTokens, cfg.Anthropic.SocialMaxTokens),
	}
	if rec != nil {
		opts = append(opts, generate.WithObserver(rec))
	}
	if !cfg.Anthropic.Enabled() {
		log.Info("ANTHROPIC_API_KEY not set, serving template content")
		return generate.New(nil, opts...)
	}
	client := claude.NewClient(claude.Config{
		APIKey:            cfg.Anthropic.APIKey,
		BaseURL:           cfg.Anthropic.BaseURL,
		Version:           cfg.Anthropic.Version,
		Model:             cfg.Anthropic.Model,
		Timeout:           cfg.Anthropic.Timeout,
		MaxRetries:        cfg.Anthropic.MaxRetries,
		RequestsPerSecond: cfg.Anthropic.RequestsPerSecond,
		Logger:            logger.KV{L: log.With(logger.String("component", "claude"))},
	})
	log.Info("text generation enabled", logger.String("model", client.Model()))
	return generate.New(client, opts...)
}
