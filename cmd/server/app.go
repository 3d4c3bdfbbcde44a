package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/fiscaldesk/fiscaldesk-api/internal/config"
	"github.com/fiscaldesk/fiscaldesk-api/internal/job"
	"github.com/fiscaldesk/fiscaldesk-api/internal/platform/postgres"
	"github.com/fiscaldesk/fiscaldesk-api/internal/service"
	"github.com/fiscaldesk/fiscaldesk-api/internal/service/auth"
	"github.com/fiscaldesk/fiscaldesk-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	tenantStore   store.TenantStore
	userStore     store.UserStore
	clientStore   store.ClientStore
	templateStore store.TemplateStore
	taskStore     store.TaskStore
	auditStore    store.AuditLogStore
	historyStore  store.HistoryStore
	jobStore      job.JobStore

	// Service interfaces
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	generationService *service.GenerationService
	taskService       *service.TaskService

	// Background job handling
	jobRunner *job.Runner
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMins)

	// Initialize password verifier
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.tenantStore = postgres.NewPostgresTenantStore(db, logger)
	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)
	app.clientStore = postgres.NewPostgresClientStore(db, logger)
	app.templateStore = postgres.NewPostgresTemplateStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.auditStore = postgres.NewPostgresAuditLogStore(db, logger)
	app.historyStore = postgres.NewPostgresHistoryStore(db, logger)
	app.jobStore = postgres.NewPostgresJobStore(db, logger)

	// Initialize generation service
	app.generationService, err = service.NewGenerationService(
		app.taskStore,
		app.templateStore,
		app.clientStore,
		app.auditStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	// Initialize task workflow service
	app.taskService, err = service.NewTaskService(
		db,
		app.taskStore,
		app.historyStore,
		app.auditStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	// Initialize background job runner
	if err := setupJobRunner(app); err != nil {
		return nil, fmt.Errorf("failed to setup job runner: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupJobRunner initializes and starts the background job processor,
// wiring the generation job factory in as the recovery resolver so
// interrupted generation runs resume after a restart.
func setupJobRunner(app *application) error {
	runner := job.NewRunner(app.jobStore, job.RunnerConfig{
		WorkerCount:           app.config.Job.WorkerCount,
		QueueSize:             app.config.Job.QueueSize,
		StuckJobAge:           time.Duration(app.config.Job.StuckJobAgeMins) * time.Minute,
		StuckJobCheckInterval: time.Duration(app.config.Job.StuckCheckMins) * time.Minute,
	}, app.logger)

	factory := job.NewGenerationJobFactory(app.generationService, app.logger)
	runner.SetResolver(factory.Resolve)

	if err := runner.Start(); err != nil {
		return fmt.Errorf("failed to start job runner: %w", err)
	}

	app.jobRunner = runner
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.jobRunner != nil {
		app.jobRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
