package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pantry-finder/internal/db"
	"pantry-finder/internal/locate"
)

// NewRouter creates and configures the Chi router
func NewRouter(database *db.DB, resolver *locate.Resolver) http.Handler {
	r := chi.NewRouter()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	// Middleware
	r.Use(Logger)
	r.Use(CORS)
	r.Use(PromHTTPMiddleware(m))

	// Create handlers
	h := NewHandlers(database, resolver, m)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/pantries", h.ListPantries)
		r.Get("/pantries/{id}", h.GetPantry)
		r.Post("/nearest", h.Nearest)
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}
