// Package server exposes the dashboard over HTTP: a rendered HTML
// page at / and a small JSON API under /api. The dataset is loaded
// once and shared read-only; filter state travels in query
// parameters, never server-side.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"pubscope/internal/catalog"
	"pubscope/internal/config"
	"pubscope/internal/core"
	"pubscope/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options carries presentation limits from configuration.
type Options struct {
	PreviewLimit   int
	WordCloudLimit int
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	ds         *core.Dataset
	cat        *catalog.Catalog
	config     config.Server
	opts       Options
	log        *slog.Logger
	renderer   *TemplateRenderer
}

// New creates a new HTTP server instance over an already-loaded
// dataset.
func New(ds *core.Dataset, cat *catalog.Catalog, cfg config.Server, opts Options) (*Server, error) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize template renderer: %w", err)
	}

	s := &Server{
		router:   chi.NewRouter(),
		ds:       ds,
		cat:      cat,
		config:   cfg,
		opts:     opts,
		log:      logger.Get(),
		renderer: renderer,
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s, nil
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	if s.config.CORS.Enabled {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.config.CORS.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
	}
}

// setupRoutes configures routes for the server
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/topics", s.handleTopics)
		r.Get("/aggregates", s.handleAggregates)
	})

	// Web routes (HTML pages)
	s.router.Get("/", s.handleDashboard)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		"addr", s.httpServer.Addr,
		"rows", len(s.ds.Articles),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}
