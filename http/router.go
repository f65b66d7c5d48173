package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"github.com/yourorg/listing-api/internal/generate"
	"github.com/yourorg/listing-api/internal/logger"
	"github.com/yourorg/listing-api/internal/metrics"
)

type RouterDeps struct {
	Generator *generate.Generator
	Meta      MetaDeps
	Log       logger.Logger
	// Metrics may be nil.
	Metrics      *metrics.Recorder
	MaxBodyBytes int64
	// RateLimitPerMinute per client IP; 0 disables limiting.
	RateLimitPerMinute int
}

func NewRouter(d RouterDeps) http.Handler {
	if d.Log == nil {
		d.Log = logger.NewNop()
	}
	if d.Generator == nil {
		d.Generator = generate.New(nil, generate.WithLogger(d.Log))
	}

	r := chi.NewRouter()
	r.Use(logger.Middleware(d.Log))
	r.Use(middleware.Recoverer)
	r.Use(d.Metrics.Middleware)
	r.Use(CORS)
	if d.RateLimitPerMinute > 0 {
		r.Use(httprate.Limit(d.RateLimitPerMinute, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(tooManyRequests),
		))
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(NotFound)
	r.MethodNotAllowed(NotFound)

	gen := GenerateDeps{Generator: d.Generator, Log: d.Log, MaxBodyBytes: d.MaxBodyBytes}
	RegisterMeta(r, d.Meta)
	RegisterGenerate(r, gen)
	RegisterDemo(r, gen)

	return r
}
