package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"shelfcsv/internal/catalog"
	"shelfcsv/internal/config"
	"shelfcsv/internal/errors"
	"shelfcsv/internal/infrastructure"
	customMiddleware "shelfcsv/internal/middleware"
	"shelfcsv/internal/services"
	handlers "shelfcsv/internal/transport/http"
)

const (
	Version = "1.0.0"
	AppName = "shelfcsv"
)

// Application is the main application container. All collaborators are wired
// together here at startup.
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	CatalogStore  *catalog.Store
	ExportService *services.ExportService
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}

	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution()

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices wires up the catalog store and export service
func (a *Application) initializeServices() error {
	workbook, err := findCatalogWorkbook(a.Paths.CatalogDir)
	if err != nil {
		// Not fatal: the store surfaces the missing file on first request
		// and the health endpoint reports degraded until a workbook lands.
		a.Logger.Warn("No catalog workbook found",
			slog.String("catalog_dir", a.Paths.CatalogDir),
			slog.String("error", err.Error()))
		workbook = a.Paths.GetCatalogPath("catalog.xlsx")
	}

	a.CatalogStore = catalog.NewStore(workbook, a.Logger)

	metrics, err := infrastructure.CreateExportMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create export metrics: %w", err)
	}

	a.ExportService = services.NewExportService(a.Logger, metrics)
	return nil
}

// findCatalogWorkbook picks the lexically last .xlsx in the catalog directory,
// which for date-stamped workbook names is the most recent one.
func findCatalogWorkbook(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no .xlsx workbook in %s", dir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// setupRouter configures the HTTP router with all routes.
// Middleware ordering: RequestID → RealIP → Logger → Recoverer → RateLimit.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))

	if a.Config.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.RateLimit.RPS,
			a.Config.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := errors.NewErrorHandler(a.Logger)

	healthHandler := handlers.NewHealthHandler(a.CatalogStore, Version, a.Logger)
	r.Get("/healthz", healthHandler.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(a.Config.Server.ReadTimeout))

		exportHandler := handlers.NewExportHandler(a.CatalogStore, a.ExportService, a.Logger, errorHandler)
		r.Mount("/export", exportHandler.Routes())

		r.Get("/version", func(w http.ResponseWriter, req *http.Request) {
			render.JSON(w, req, map[string]string{
				"name":    AppName,
				"version": Version,
			})
		})
	})

	// Prometheus metrics endpoint sits outside the rate-limited group
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts the HTTP server in the background. Fatal listen errors cancel
// the supplied context so Run can unwind.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting server",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Server started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	infrastructure.CloseLogFile()

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
