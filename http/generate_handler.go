package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/listing-api/internal/generate"
	"github.com/yourorg/listing-api/internal/listing"
	"github.com/yourorg/listing-api/internal/logger"
)

// SourceHeader tells clients whether the payload came from the model.
const SourceHeader = "X-Generation-Source"

type GenerateDeps struct {
	Generator    *generate.Generator
	Log          logger.Logger
	MaxBodyBytes int64
}

func RegisterGenerate(r chi.Router, d GenerateDeps) {
	r.Post("/api/generate/description", func(w http.ResponseWriter, req *http.Request) {
		l := readListing(w, req, d.MaxBodyBytes, d.Log)
		res := d.Generator.Description(req.Context(), l)
		w.Header().Set(SourceHeader, string(res.Source))
		render.JSON(w, req, map[string]any{"description": res.Value})
	})

	r.Post("/api/generate/social", func(w http.ResponseWriter, req *http.Request) {
		l := readListing(w, req, d.MaxBodyBytes, d.Log)
		res := d.Generator.SocialPosts(req.Context(), l)
		w.Header().Set(SourceHeader, string(res.Source))
		render.JSON(w, req, map[string]any{"social_posts": res.Value})
	})
}

// readListing never fails: an unreadable, oversized or non-object body is an
// empty listing.
func readListing(w http.ResponseWriter, req *http.Request, limit int64, log logger.Logger) listing.Listing {
	body := req.Body
	if limit > 0 {
		body = http.MaxBytesReader(w, req.Body, limit)
	}
	l, err := listing.Decode(body)
	if err != nil {
		logger.FromContext(req.Context(), log).Debug("ignoring request body", logger.Error(err))
		return listing.Listing{}
	}
	return l
}
