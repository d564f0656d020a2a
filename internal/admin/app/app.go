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

	httpapi "github.com/opsgarden/admind/internal/admin/http"
	"github.com/opsgarden/admind/internal/admin/service"
	"github.com/opsgarden/admind/internal/admin/store"
	"github.com/opsgarden/admind/internal/admin/store/drivers/sqlite"
	"github.com/opsgarden/admind/pkg/cryptox"
	"github.com/opsgarden/admind/pkg/jwtx"
	"github.com/opsgarden/admind/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the admind service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	registry    *service.Registry
	authService *service.AuthService
	userService *service.UserService
	roleService *service.RoleService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "admind",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("ADMIND_ACCESS_SECRET and ADMIND_REFRESH_SECRET must be set")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}

	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	// Warm the registry so tokens issued before a restart still get
	// background eviction.
	if err := app.registry.Warm(context.Background()); err != nil {
		app.logger.Warn("failed to warm refresh-token registry", "error", err)
	}
	app.registry.Start()

	app.logger.Info("admind starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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

// Shutdown gracefully shuts the application down.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down admind...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.registry.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("admind stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
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

func (app *Application) initServices() error {
	accessSigner, err := jwtx.NewSignerHS256([]byte(app.cfg.AccessSecret))
	if err != nil {
		return fmt.Errorf("access signer: %w", err)
	}
	accessVerifier, err := jwtx.NewVerifierHS256([]byte(app.cfg.AccessSecret), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("access verifier: %w", err)
	}
	refreshSigner, err := jwtx.NewSignerHS256([]byte(app.cfg.RefreshSecret))
	if err != nil {
		return fmt.Errorf("refresh signer: %w", err)
	}
	refreshVerifier, err := jwtx.NewVerifierHS256([]byte(app.cfg.RefreshSecret), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("refresh verifier: %w", err)
	}

	app.registry = service.NewRegistry(app.db, app.logger, app.cfg.RegistryInterval)

	app.authService = &service.AuthService{
		Store:           app.db,
		Registry:        app.registry,
		Logger:          app.logger,
		AccessSigner:    accessSigner,
		AccessVerifier:  accessVerifier,
		RefreshSigner:   refreshSigner,
		RefreshVerifier: refreshVerifier,
		Issuer:          app.cfg.Issuer,
		AccessTTL:       app.cfg.AccessTTL,
		RefreshTTL:      app.cfg.RefreshTTL,
	}
	app.userService = &service.UserService{Store: app.db, Logger: app.logger}
	app.roleService = &service.RoleService{Store: app.db, Logger: app.logger}

	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.authService.AccessVerifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.RoleService = app.roleService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
