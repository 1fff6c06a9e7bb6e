package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Server represents the HTTP API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	addr       string
}

// NewServer creates a new API Server.
func NewServer(addr string, logger *slog.Logger) Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()

	// Timeout is applied per route group; MCP streaming cannot sit behind it.
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)

	return Server{
		router: router,
		addr:   addr,
		logger: logger,
	}
}

// Router returns the chi router for registering routes.
func (s Server) Router() chi.Router {
	return s.router
}

func (s *Server) prepare() {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.prepare()

	s.logger.Info("starting HTTP server", slog.String("addr", s.addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Run binds the listener, serves until ctx is done, then shuts down within
// shutdownTimeout. A bind failure is returned immediately.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	s.prepare()

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}

	s.logger.Info("starting HTTP server", slog.String("addr", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the server address.
func (s Server) Addr() string {
	return s.addr
}
