package httpapi

import (
	"net/http"

	"github.com/go-chi/render"
)

const (
	allowOrigin  = "*"
	allowMethods = "GET, POST, OPTIONS"
	allowHeaders = "Content-Type"
)

// CORS stamps the JSON content type and CORS headers on every response and
// answers preflight requests for any path.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Type", "application/json")
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", allowHeaders)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, req *http.Request, status int, msg string) {
	render.Status(req, status)
	render.JSON(w, req, map[string]any{"error": msg})
}

// NotFound answers unknown paths and unsupported verbs alike.
func NotFound(w http.ResponseWriter, req *http.Request) {
	writeError(w, req, http.StatusNotFound, "Not found")
}

func tooManyRequests(w http.ResponseWriter, req *http.Request) {
	writeError(w, req, http.StatusTooManyRequests, "Too many requests")
}
