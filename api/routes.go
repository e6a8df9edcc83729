package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers every endpoint. None of them require authentication.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware)

		// Project Handler endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())

		// Demo Project Handler endpoints
		r.Get("/demo-projects", handlers.demoProjectHandler.getAllDemoProjects())
		r.Post("/demo-projects/upload", handlers.demoProjectHandler.uploadDemoProject())
		r.Get("/demo-projects/{demoProjectID}", handlers.demoProjectHandler.getDemoProject())
		r.Delete("/demo-projects/{demoProjectID}", handlers.demoProjectHandler.deleteDemoProject())

		// Diagnostics
		r.Get("/check-env", handlers.diagnosticsHandler.checkEnv())
		r.Get("/health", handlers.diagnosticsHandler.health())
	})
}
