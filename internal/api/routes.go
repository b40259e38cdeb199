package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"wrapper.one/config"
	"wrapper.one/internal/store"
)

func SetupRouter(s store.Store, cfg *config.Config, log zerolog.Logger) *chi.Mux {
	h := NewHandler(s, cfg, log)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recover(log))
	r.Use(middleware.Timeout(30 * time.Second))

	// Health
	r.Get("/health", h.Health)

	// API routes
	r.Route("/v1", func(r chi.Router) {
		r.Post("/wrapper", h.CreateWrapper)
		r.Get("/wrapper/{id}", h.RetrieveWrapper)
	})

	return r
}
