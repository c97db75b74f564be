package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "user-management-service/internal/adapter/gin/handler"
	"user-management-service/internal/adapter/gin/middleware"
	ginrouter "user-management-service/internal/adapter/gin/router"
)

// SetupGinServer creates and configures the read-only HTTP listing server
func SetupGinServer(
	handler *ginhandler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	addr string,
	serviceName string,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(handler, rateLimiter, serviceName, l)

	l.Info("HTTP listing configured",
		zap.String("address", addr),
		zap.Bool("rate_limit", rateLimiter != nil),
	)

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
