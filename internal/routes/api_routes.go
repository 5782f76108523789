package routes

import (
	"arkfleet/opsboard/internal/api"
	"arkfleet/opsboard/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies) {

	// Shared report links are public by design: the token is the credential.
	r.Group(func(public chi.Router) {
		public.Use(middleware.RateLimitMiddleware)
		public.Get("/api/v1/reports/shared", handlers.SharedReportHandler())
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.RateLimitMiddleware)
		v1.Use(middleware.AuthMiddleware(deps.Repo.Keys)) // global: all routes must be authenticated

		v1.Route("/reports", func(reports chi.Router) {
			reports.Get("/summary", handlers.SummaryReportHandler())
			reports.Get("/full", handlers.FullReportHandler())
			reports.Get("/driver-routes", handlers.DriverRoutesHandler())
			reports.Get("/start-times", handlers.StartTimesHandler())
			reports.Get("/order-arrival", handlers.OrderArrivalHandler())
			reports.Get("/working-times", handlers.WorkingTimesHandler())
			reports.Get("/van-checks", handlers.VanChecksHandler())
			reports.Get("/roster-advisories", handlers.RosterAdvisoriesHandler())

			reports.Group(func(share chi.Router) {
				share.Use(middleware.RequirePermission("share"))
				share.Post("/share", handlers.ShareReportHandler())
			})
		})

		// Uploads need at least the uploader role
		v1.Group(func(ingest chi.Router) {
			ingest.Use(middleware.RequirePermission("ingest"))
			ingest.Post("/ingest", handlers.IngestHandler())
			ingest.Get("/ingest/uploads", handlers.UploadsHandler())
		})

		// Raw record admin surface
		v1.Group(func(admin chi.Router) {
			admin.Use(middleware.RequirePermission("records"))
			admin.Route("/records/{table}", func(records chi.Router) {
				records.Get("/", handlers.ListRecordsHandler())
				records.Post("/", handlers.CreateRecordHandler())
				records.Get("/{id}", handlers.GetRecordHandler())
				records.Put("/{id}", handlers.UpdateRecordHandler())
				records.Delete("/{id}", handlers.DeleteRecordHandler())
			})
		})

		v1.Group(func(admin chi.Router) {
			admin.Use(middleware.RequirePermission("schedule"))
			admin.Put("/schedule/{date}", handlers.ReplaceScheduleHandler())
		})
	})
}
