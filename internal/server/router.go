package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sangkips/dairy-collection-service/internal/domains/customers"
	"github.com/sangkips/dairy-collection-service/internal/domains/entries"
	"github.com/sangkips/dairy-collection-service/internal/health"
)

type Handlers struct {
	Customers *customers.Handler
	Entries   *entries.Handler
	Health    *health.Handler
}

// NewRouter mounts the API under /api. Cross-origin calls are accepted from
// corsOrigin only.
func NewRouter(h Handlers, corsOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{corsOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			h.Customers.RegisterCustomerRoutes(r)
		})
		r.Route("/entries", func(r chi.Router) {
			h.Entries.RegisterEntryRoutes(r)
		})
	})

	if h.Health != nil {
		r.Get("/health", h.Health.Health)
	}

	return r
}
