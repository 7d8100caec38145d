package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"goqval/app"
	"goqval/internal"
	"goqval/internal/config"
)

// App represents the HTTP API application
type App struct {
	router     *chi.Mux
	summarizer *app.SignificanceSummarizer
	logger     *internal.Logger
}

// NewApp creates the API application around a summarizer service
func NewApp(cfg config.SummaryConfig, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}

	opts := []app.Option{}
	if cfg.Digits > 0 {
		opts = append(opts, app.WithDefaultDigits(cfg.Digits))
	}
	if cfg.Thresholds != nil {
		opts = append(opts, app.WithDefaultThresholds(cfg.Thresholds))
	}

	a := &App{
		router:     chi.NewRouter(),
		summarizer: app.NewSignificanceSummarizer(logger, opts...),
		logger:     logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

// setupRoutes configures the API routes
func (a *App) setupRoutes() {
	a.router.Route("/api", func(r chi.Router) {
		r.Get("/health", a.handleHealth)
		r.Post("/summaries", a.handleCreateSummary)
	})
}

// Router exposes the configured router (used by tests and Serve)
func (a *App) Router() http.Handler {
	return a.router
}

// Serve starts the HTTP server on the given port and blocks
func (a *App) Serve(port string) error {
	addr := fmt.Sprintf(":%s", port)
	a.logger.Info("significance summary API listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
