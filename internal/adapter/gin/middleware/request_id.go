package middleware

import (
	"github.com/gin-gonic/gin"

	"user-management-service/pkg/logger"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID tags each request context with an ID, reusing the caller's
// X-Request-ID when present, and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logger.NewRequestContext(c.Request.Context(), "http", c.GetHeader(RequestIDHeader))
		c.Request = c.Request.WithContext(ctx)

		c.Header(RequestIDHeader, logger.GetRequestID(ctx))
		c.Next()
	}
}
