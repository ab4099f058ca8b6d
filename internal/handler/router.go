// Package handler wires HTTP routes to core services.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	chathandler "github.com/hustlesynth/synth-backend/internal/handler/chat"
	"github.com/hustlesynth/synth-backend/internal/middleware"
	chatservice "github.com/hustlesynth/synth-backend/internal/service/chat"
	"github.com/hustlesynth/synth-backend/internal/store"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(logger zerolog.Logger, chatSvc *chatservice.Service, sessions *store.SessionStore, staticDir string) http.Handler {
	r := chi.NewRouter()

	// Metrics first so every request is counted.
	r.Use(middleware.Metrics)

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// The browser UI may be served from another origin during
	// development, so allow cross-origin calls to the API.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Cache-Control", "Pragma"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", health(sessions))

	chatHandler := chathandler.New(chatSvc, logger)
	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
	})

	if staticDir != "" {
		fs := http.FileServer(http.Dir(staticDir))
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, staticDir+"/index.html")
		})
		r.Handle("/static/*", http.StripPrefix("/static/", fs))
	}

	return r
}
