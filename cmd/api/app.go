package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-location/internal/cascade"
	"storefront-location/internal/catalog"
	"storefront-location/internal/config"
	"storefront-location/internal/enrich"
	"storefront-location/internal/location"
	"storefront-location/internal/session"
	"storefront-location/internal/timezone"

	_ "storefront-location/docs" // Ensure docs are imported
)

const shutdownTimeout = 10 * time.Second

// App encapsulates application dependencies
type App struct {
	router    *gin.Engine
	logger    *slog.Logger
	cfg       *config.Config
	directory location.Directory
	geocoder  location.Geocoder
	sessions  *session.Registry
	catalog   *catalog.Store
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Persistent option list cache, disabled by an empty path
	var (
		store *catalog.Store
		cache location.Cache
	)
	if cfg.Cache.Path != "" {
		var err error
		store, err = catalog.Open(cfg.Cache.Path, cfg.Cache.TTL, logger)
		if err != nil {
			return nil, err
		}
		cache = store
	}

	directory := location.NewDirectoryService(cfg, cache, logger)

	geocoder, err := location.NewGeocodeService(cfg, logger)
	if err != nil {
		closeStore(store)
		return nil, err
	}

	var tz enrich.TimezoneLookup
	if cfg.App.ResolveTimezone {
		tzSvc, err := timezone.NewService()
		if err != nil {
			closeStore(store)
			return nil, err
		}
		tz = tzSvc
	}

	app := newApp(cfg, logger, directory, geocoder, enrich.NewService(geocoder, tz, logger))
	app.catalog = store

	logger.Info("application initialized",
		"geocoder", cfg.Providers.Geocoder,
		"catalog", cfg.Cache.Path,
	)
	return app, nil
}

func newApp(cfg *config.Config, logger *slog.Logger, directory location.Directory, geocoder location.Geocoder, resolver cascade.CoordinateResolver) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())

	app := &App{
		router:    router,
		logger:    logger,
		cfg:       cfg,
		directory: directory,
		geocoder:  geocoder,
		sessions:  session.NewRegistry(directory, resolver, cfg.App.MaxSessions, cfg.App.SessionTTL, logger),
	}

	// Register routes
	app.registerRoutes()

	return app
}

// Run serves HTTP on addr until ctx is done, then drains in-flight requests
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: app.router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops live sessions and releases the catalog
func (app *App) Close() {
	app.sessions.Close()
	if app.catalog != nil {
		if err := app.catalog.Close(); err != nil {
			app.logger.Error("failed to close catalog", "error", err)
		}
	}
}

func closeStore(store *catalog.Store) {
	if store != nil {
		store.Close()
	}
}
