// Package server exposes scanning and file operations over HTTP for the
// web frontend.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/config"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/core"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/metrics"
)

// Server is the DDAS HTTP API server
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	cfg        *config.Config
}

// New creates a server with routes and middleware configured
func New(cfg *config.Config, logger *zap.Logger, scanner *core.Scanner, store *core.FileStore) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Server.Listen,
			Handler:      NewRouter(cfg, logger, NewHandler(scanner, store, logger)),
			ReadTimeout:  config.Seconds(cfg.Server.ReadTimeout),
			WriteTimeout: config.Seconds(cfg.Server.WriteTimeout),
			IdleTimeout:  120 * time.Second,
		},
		logger: logger,
		cfg:    cfg,
	}
}

// NewRouter builds the chi router
func NewRouter(cfg *config.Config, logger *zap.Logger, h *Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(RequestID)
	router.Use(RequestLogger(logger))
	router.Use(chimw.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", RequestIDHeader},
		MaxAge:         300,
	}))

	router.Get("/", h.Home)
	router.Post("/scan", h.Scan)
	router.Get("/download", h.Download)
	router.Post("/delete", h.Delete)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts down
// gracefully
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-quit:
		s.logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Seconds(s.cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}
