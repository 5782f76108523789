package routes

import (
	"context"
	"net/http"
	"time"

	"arkfleet/opsboard/internal/api"
	"arkfleet/opsboard/internal/db"
	"arkfleet/opsboard/internal/jobs"
	"arkfleet/opsboard/internal/logging"
	"arkfleet/opsboard/internal/metrics"
	"arkfleet/opsboard/internal/middleware"
	"arkfleet/opsboard/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-None-Match", "X-API-Key", "X-Filename", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "ETag", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)

	// Background retention sweep and cache warmer
	jobs.InitializeJobs(context.Background(), deps.Repo.Blob)
	workers.InitWorkers(context.Background(), deps.Services.Correlator)

	RegisterAPIRoutes(r, handlers, deps)

	return r
}
