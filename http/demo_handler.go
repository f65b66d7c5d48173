package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Aspect ratios of the placeholder videos returned by the demo route.
var demoAspects = []string{"vertical", "square", "landscape"}

func demoVideos() map[string][]string {
	out := make(map[string][]string, len(demoAspects))
	for _, a := range demoAspects {
		out[a] = []string{"demo_" + a + ".mp4"}
	}
	return out
}

// RegisterDemo runs both generators one after the other. Video rendering is
// not implemented; the payload lists placeholder file names.
func RegisterDemo(r chi.Router, d GenerateDeps) {
	r.Post("/api/demo/generate", func(w http.ResponseWriter, req *http.Request) {
		l := readListing(w, req, d.MaxBodyBytes, d.Log)
		desc := d.Generator.Description(req.Context(), l)
		posts := d.Generator.SocialPosts(req.Context(), l)
		render.JSON(w, req, map[string]any{
			"description":  desc.Value,
			"social_posts": posts.Value,
			"videos":       demoVideos(),
			"message":      "Generation complete",
		})
	})
}
