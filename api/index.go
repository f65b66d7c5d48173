// Package api is the serverless entry point. The platform calls Handler for
// every request; the service is built once per instance.
package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/render"

	httpapi "github.com/yourorg/listing-api/http"
	"github.com/yourorg/listing-api/internal/app"
	"github.com/yourorg/listing-api/internal/config"
	"github.com/yourorg/listing-api/internal/logger"
)

var (
	once    sync.Once
	handler http.Handler
	initErr error
)

func build() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		initErr = err
		return
	}
	lg, err := logger.New(cfg.Logging)
	if err != nil {
		initErr = err
		return
	}
	handler = app.New(cfg, lg, nil).Handler
}

// misconfigured answers every request when the service could not be built.
var misconfigured = httpapi.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, map[string]any{"error": "service misconfigured"})
}))

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(build)
	if initErr != nil {
		misconfigured.ServeHTTP(w, r)
		return
	}
	handler.ServeHTTP(w, r)
}
