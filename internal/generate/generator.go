// Package generate turns a listing into marketing copy. Each operation makes
// at most one upstream call and always returns usable content: when the model
// is unavailable or its answer cannot be used, deterministic templates fill in.
package generate

import (
	"context"
	"time"

	"github.com/yourorg/listing-api/internal/listing"
	"github.com/yourorg/listing-api/internal/logger"
)

// Completer sends a single-prompt request to the text-generation provider.
// *claude.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Observer receives generation outcomes. *metrics.Recorder satisfies it.
type Observer interface {
	ObserveGeneration(kind, source, reason string)
	ObserveUpstream(kind, outcome string, d time.Duration)
}

// Content kinds, used in logs and metrics.
const (
	KindDescription = "description"
	KindSocial      = "social"
)

const (
	DefaultDescriptionMaxTokens = 500
	DefaultSocialMaxTokens      = 1000
)

type Generator struct {
	llm               Completer
	log               logger.Logger
	obs               Observer
	descriptionTokens int
	socialTokens      int
}

type Option func(*Generator)

func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(g *Generator) { g.obs = o }
}

// WithTokenBudgets overrides the max_tokens sent per kind; non-positive values
// keep the defaults.
func WithTokenBudgets(description, social int) Option {
	return func(g *Generator) {
		if description > 0 {
			g.descriptionTokens = description
		}
		if social > 0 {
			g.socialTokens = social
		}
	}
}

// New builds a Generator. A nil llm means no credential is configured and
// every call returns fallback content.
func New(llm Completer, opts ...Option) *Generator {
	g := &Generator{
		llm:               llm,
		log:               logger.NewNop(),
		descriptionTokens: DefaultDescriptionMaxTokens,
		socialTokens:      DefaultSocialMaxTokens,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Enabled reports whether an upstream provider is wired.
func (g *Generator) Enabled() bool { return g.llm != nil }

func (g *Generator) complete(ctx context.Context, kind, prompt string, maxTokens int) (string, error) {
	start := time.Now()
	text, err := g.llm.Complete(ctx, prompt, maxTokens)
	outcome := "ok"
	if err != nil {
		outcome = string(classify(err))
	}
	if g.obs != nil {
		g.obs.ObserveUpstream(kind, outcome, time.Since(start))
	}
	return text, err
}

func (g *Generator) record(ctx context.Context, kind string, l listing.Listing, src Source, reason Reason, err error) {
	if g.obs != nil {
		g.obs.ObserveGeneration(kind, string(src), string(reason))
	}
	log := logger.FromContext(ctx, g.log)
	fields := []logger.Field{
		logger.String("kind", kind),
		logger.String("source", string(src)),
		logger.String("listing_key", l.Key()),
	}
	if reason != ReasonNone {
		fields = append(fields, logger.String("reason", string(reason)))
	}
	if err != nil {
		fields = append(fields, logger.Error(err))
	}
	switch {
	case err != nil:
		log.Warn("generation fell back to template", fields...)
	case src == SourceFallback || reason != ReasonNone:
		log.Info("generation used template content", fields...)
	default:
		log.Debug("generation completed", fields...)
	}
}
