package api

import (
	"event-naming-service/internal/api/handlers"
	"event-naming-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// The namer carries the store, gazetteer and resolution config shared by all routes.
// A nil limiter disables rate limiting.
func NewRouter(namer *services.EventNamer, logger *zap.Logger, limiter *rate.Limiter) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	describeHandler := &handlers.DescribeHandler{
		Gazetteer: namer.Gazetteer,
		Config:    namer.Config,
		Logger:    logger,
	}
	eventHandler := &handlers.EventHandler{Namer: namer, Logger: logger}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", handlers.Health)
	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(rateLimitMiddleware(limiter))
		}
		r.Post("/describe", describeHandler.Describe)
		r.Route("/events/{eventID}", func(r chi.Router) {
			r.Get("/", eventHandler.Get)
			r.Post("/name", eventHandler.Name)
		})
	})

	return r
}
