package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/admissions/internal/admissions/broadcast"
	httpapi "github.com/aussiebroadwan/admissions/internal/admissions/http"
	"github.com/aussiebroadwan/admissions/internal/admissions/policy"
	"github.com/aussiebroadwan/admissions/internal/admissions/service"
	"github.com/aussiebroadwan/admissions/internal/admissions/store"
	"github.com/aussiebroadwan/admissions/internal/admissions/store/drivers/sqlite"
	"github.com/aussiebroadwan/admissions/pkg/jwtx"
	"github.com/aussiebroadwan/admissions/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the admissions service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	keys     *jwtx.KeySet
	verifier jwtx.Verifier
	events   broadcast.Notifier[broadcast.TaskCreatedEvent]

	// Services
	leadService        *service.LeadService
	applicationService *service.ApplicationService
	taskService        *service.TaskService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "admissions-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initAuth(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initBroadcast(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("admissions service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down admissions service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("admissions service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initAuth loads the issuer's public key and builds the token verifier.
// The admissions service never mints tokens; it only checks ones issued
// by the auth service.
func (app *Application) initAuth() error {
	keys := jwtx.NewKeySet()
	if err := keys.AddEd25519PEMFile(app.cfg.AuthPublicKeyID, app.cfg.AuthPublicKeyFile); err != nil {
		return fmt.Errorf("failed to load auth public key: %w", err)
	}

	app.keys = keys
	app.verifier = jwtx.NewCommonEdDSA(keys, app.cfg.Issuer, []string{app.cfg.Audience})

	app.logger.Info("token verifier ready", "issuer", app.cfg.Issuer, "kid", app.cfg.AuthPublicKeyID)
	return nil
}

// initBroadcast builds the task event notifier for the configured backend
func (app *Application) initBroadcast() error {
	events, err := broadcast.NewNotifierFromConfig[broadcast.TaskCreatedEvent](broadcast.Config{
		Mode:      app.cfg.BroadcastMode,
		RedisAddr: app.cfg.RedisAddr,
		Buffer:    app.cfg.EventBuffer,
	}, broadcast.ChannelTasks)
	if err != nil {
		return fmt.Errorf("failed to initialize event broadcaster: %w", err)
	}

	app.events = events
	app.logger.Info("event broadcaster ready", "mode", app.cfg.BroadcastMode)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	pol := &policy.Evaluator{Store: app.db}

	app.leadService = &service.LeadService{
		Store:  app.db,
		Policy: pol,
	}
	app.applicationService = &service.ApplicationService{
		Store:  app.db,
		Policy: pol,
	}
	app.taskService = &service.TaskService{
		Store:  app.db,
		Policy: pol,
		Events: app.events,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.LeadService = app.leadService
	router.ApplicationService = app.applicationService
	router.TaskService = app.taskService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
