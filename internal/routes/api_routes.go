package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/cscruggs10/autointel/internal/api"
	"github.com/cscruggs10/autointel/internal/metrics"
	"github.com/cscruggs10/autointel/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, deps *api.Dependencies) {

	// Public routes: presigned runlist links, rate limited
	r.Group(func(public chi.Router) {
		public.Use(middleware.MetricsMiddleware(metricsReg))
		public.Use(middleware.RateLimitMiddleware)
		public.Get("/public/runlist", api.SharedRunlistHandler(deps.Services.URLSigner, deps.Repo.Runlists, deps.Repo.Vehicles))
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))
		v1.Use(middleware.AuthMiddleware(deps.Repo.Keys)) // global: all routes require an active API key

		v1.Get("/status", api.StatusHandler(deps.Repo.Sales, deps.Repo.Runlists))

		v1.Get("/formats", api.ListFormatsHandler(deps.Services.Registry))
		v1.Post("/formats", api.RegisterFormatHandler(deps.Services.Registry))

		v1.Post("/runlists", api.UploadRunlistHandler(deps.Services.Runlist))
		v1.Get("/runlists", api.ListRunlistsHandler(deps.Repo.Runlists))
		v1.Get("/runlists/{id}", api.GetRunlistHandler(deps.Repo.Runlists, deps.Repo.Vehicles))
		v1.Post("/runlists/{id}/match", api.RematchRunlistHandler(deps.Services.Runlist, deps.Repo.Runlists))
		v1.Post("/runlists/{id}/share", api.ShareRunlistHandler(deps.Services.URLSigner, deps.Repo.Runlists))
	})
}
