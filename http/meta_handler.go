package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const (
	ServiceName    = "ListinGenius API"
	ServiceVersion = "1.0.0"
)

// MetaDeps reports which credentials were configured at startup.
type MetaDeps struct {
	AIEnabled            bool
	AnthropicConfigured  bool
	HiggsfieldConfigured bool
}

func RegisterMeta(r chi.Router, d MetaDeps) {
	info := func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]any{
			"service":    ServiceName,
			"status":     "running",
			"version":    ServiceVersion,
			"ai_enabled": d.AIEnabled,
		})
	}
	r.Get("/api", info)
	r.Get("/api/", info)

	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]any{
			"status":                "healthy",
			"anthropic_configured":  d.AnthropicConfigured,
			"higgsfield_configured": d.HiggsfieldConfigured,
		})
	})
}
