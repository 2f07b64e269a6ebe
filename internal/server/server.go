// Package server wires configuration, storage, handlers and middleware into
// an HTTP server.
//
// Dependency flow (composition root):
//
//	config.Config → openRepository → ItemService → handlers → chi router
//
// Each layer only receives what it needs: the service gets a
// repository.ItemRepository, handlers get the service.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/itembox/internal/auth"
	"github.com/sakif/itembox/internal/config"
	"github.com/sakif/itembox/internal/handler"
	"github.com/sakif/itembox/internal/middleware"
	"github.com/sakif/itembox/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// The server owns the storage backend and closes it on shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	store  *store
}

// New opens the configured storage backend and builds the router.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	st, err := openRepository(cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  st,
	}

	if err := s.setupRoutes(); err != nil {
		st.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the storage backend.
func (s *Server) Close() error {
	return s.store.Close()
}

// setupRoutes configures all middleware and route handlers.
//
//	GET    /                 → landing page (HTML)
//	GET    /health           → liveness
//	GET    /ready            → readiness (pings storage)
//	GET    /api/items        → list items
//	POST   /api/items        → create item           [bearer when auth enabled]
//	PUT    /api/items/{id}   → update item           [bearer when auth enabled]
//	DELETE /api/items/{id}   → delete item           [bearer when auth enabled]
//
// {id} only matches digits; anything else falls through to 404.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.CORS(s.config.CORS))

	itemService := service.NewItemService(s.store.repo, s.logger)
	itemHandler := handler.NewItemHandler(itemService, s.logger)
	healthHandler := handler.NewHealthHandler(itemService)

	indexHandler, err := handler.NewIndexHandler(itemService, s.logger)
	if err != nil {
		return fmt.Errorf("creating index handler: %w", err)
	}

	requireWriter := func(next http.Handler) http.Handler { return next }
	if s.config.Auth.Enabled() {
		tokens, err := auth.NewTokenService(s.config.Auth.JWTSecret, s.config.Auth.JWTIssuer)
		if err != nil {
			return fmt.Errorf("creating token service: %w", err)
		}
		requireWriter = auth.RequireBearer(tokens, s.logger)
	} else {
		s.logger.Warn("auth.jwt_secret not set; write routes are open")
	}

	s.router.Get("/", indexHandler.HandleIndex)
	s.router.Get("/health", healthHandler.HandleHealth)
	s.router.Get("/ready", healthHandler.HandleReady)

	s.router.Route("/api/items", func(r chi.Router) {
		r.Get("/", itemHandler.HandleList)

		r.Group(func(r chi.Router) {
			r.Use(requireWriter)
			r.Post("/", itemHandler.HandleCreate)
			r.Put("/{id:[0-9]+}", itemHandler.HandleUpdate)
			r.Delete("/{id:[0-9]+}", itemHandler.HandleDelete)
		})
	})

	return nil
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests
// within the configured shutdown timeout and closes storage.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run is Start with the shutdown trigger supplied by the caller.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	cfg := s.config.Server
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("storage", s.store.describe),
			slog.Bool("auth", s.config.Auth.Enabled()),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
