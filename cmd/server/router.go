package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fiscaldesk/fiscaldesk-api/internal/api"
	apiMiddleware "github.com/fiscaldesk/fiscaldesk-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.db,
		app.tenantStore,
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	clientHandler := api.NewClientHandler(app.clientStore)
	templateHandler := api.NewTemplateHandler(app.templateStore)
	taskHandler := api.NewTaskHandler(app.taskService, app.userStore)
	generationHandler := api.NewGenerationHandler(
		app.generationService,
		app.jobRunner,
		app.logger,
	)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Client endpoints
			r.Post("/clients", clientHandler.Create)
			r.Get("/clients", clientHandler.List)
			r.Get("/clients/{id}", clientHandler.Get)

			// Template endpoints
			r.Post("/templates", templateHandler.Create)
			r.Get("/templates", templateHandler.List)
			r.Get("/templates/{id}", templateHandler.Get)

			// Task endpoints
			r.Get("/tasks", taskHandler.List)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Patch("/tasks/{id}/status", taskHandler.UpdateStatus)
			r.Get("/tasks/{id}/history", taskHandler.History)
			r.Get("/tasks/{id}/audit", taskHandler.AuditTrail)

			// Generation endpoint
			r.Post("/tasks/generate", generationHandler.Generate)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
