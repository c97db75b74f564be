package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-management-service/internal/adapter/gin/handler"
	"user-management-service/internal/adapter/gin/middleware"
)

// SetupRouter configures and returns a Gin router with all routes and middleware.
// rateLimiter may be nil when rate limiting is disabled.
func SetupRouter(
	userHandler *handler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	serviceName string,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	api := router.Group("/api")
	api.Use(rateLimiter.Handler())
	{
		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
		}
	}

	return router
}
