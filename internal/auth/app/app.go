package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/mcauth/internal/auth/http"
	"github.com/aussiebroadwan/mcauth/internal/auth/service"
	"github.com/aussiebroadwan/mcauth/internal/auth/store"
	"github.com/aussiebroadwan/mcauth/internal/auth/store/drivers/memory"
	"github.com/aussiebroadwan/mcauth/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/mcauth/pkg/jwtx"
	"github.com/aussiebroadwan/mcauth/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the token service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	codec   *jwtx.Codec
	clients *service.ClientRegistry

	// Services
	tokenService        *service.TokenService
	housekeepingService *service.HousekeepingService // nil when disabled

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	return newApplication(cfg, slogx.New(slogx.Config{
		Service: "mcauth",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	}))
}

func newApplication(cfg Config, logger *slog.Logger) (*Application, error) {
	app := &Application{cfg: cfg, logger: logger}

	if err := app.initCodec(); err != nil {
		return nil, err
	}
	if err := app.initClients(); err != nil {
		return nil, err
	}
	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	if app.housekeepingService != nil {
		app.housekeepingService.Start()
	}

	app.logger.Info("token service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"registry", app.cfg.RegistryMode,
		"clients", app.clients.Len(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down token service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeepingService != nil {
		app.housekeepingService.Stop()
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing registry", "error", err)
		return err
	}

	app.logger.Info("token service stopped")
	return nil
}

// initCodec resolves the signing secret and builds the token codec.
func (app *Application) initCodec() error {
	secret, generated, err := LoadSigningSecret(app.cfg)
	if err != nil {
		return fmt.Errorf("failed to load signing secret: %w", err)
	}
	if generated {
		app.logger.Warn("no signing secret configured, generated an ephemeral one; tokens will not survive a restart")
	}

	codec, err := jwtx.NewCodec(jwtx.CodecOptions{
		Secret: secret,
		Issuer: app.cfg.Issuer,
	})
	if err != nil {
		return fmt.Errorf("failed to create token codec: %w", err)
	}
	app.codec = codec
	return nil
}

// initClients loads and validates the client registry.
func (app *Application) initClients() error {
	if app.cfg.ClientsFile == "" && !app.cfg.IsDev() {
		app.logger.Warn("no clients file configured, using the built-in development clients", "env", app.cfg.Env)
	}

	records, err := LoadClients(app.cfg.ClientsFile)
	if err != nil {
		return err
	}

	clients, err := service.NewClientRegistry(records)
	if err != nil {
		return fmt.Errorf("failed to load clients: %w", err)
	}
	app.clients = clients
	return nil
}

// initDatabase opens the refresh token registry and applies migrations.
func (app *Application) initDatabase() error {
	if app.cfg.RegistryMode != RegistryPersistent {
		app.db = memory.NewStore()
		app.logger.Info("using in-memory refresh token registry")
		return nil
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Clients:    app.clients,
		Codec:      app.codec,
		Store:      app.db,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}

	if app.cfg.HousekeepingInterval > 0 {
		app.housekeepingService = service.NewHousekeepingService(
			app.tokenService,
			app.logger,
			app.cfg.HousekeepingInterval,
		)
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)
	router.TokenService = app.tokenService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
