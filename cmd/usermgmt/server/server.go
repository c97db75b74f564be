package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"

	ginhandler "user-management-service/internal/adapter/gin/handler"
	"user-management-service/internal/adapter/gin/middleware"
	"user-management-service/internal/config"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, handler *ginhandler.UserHandler, rateLimiter *middleware.RateLimiter) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		HTTP:   SetupGinServer(handler, rateLimiter, httpAddress(cfg), cfg.Logger.ServiceName, l),
	}
}

// Start listens and serves until Shutdown is called.
// A graceful shutdown is not reported as an error.
func (s *Server) Start() error {
	lc := net.ListenConfig{}
	lis, err := lc.Listen(context.Background(), "tcp", s.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return s.Serve(lis)
}

// Serve serves HTTP on an existing listener.
func (s *Server) Serve(lis net.Listener) error {
	s.Logger.Info("HTTP server running", zap.String("address", lis.Addr().String()))

	if err := s.HTTP.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("shutting down HTTP server...")
	return s.HTTP.Shutdown(ctx)
}

// httpAddress returns the HTTP server address
func httpAddress(cfg *config.Config) string {
	return ":" + cfg.App.HTTPPort
}
