package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	WindowSeconds     int
	Enabled           bool
}

// fixedWindowScript increments the per-window counter and starts the
// window expiry on the first hit.
var fixedWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local window = tonumber(ARGV[1])

	local count = redis.call('INCR', key)
	if count == 1 then
		redis.call('EXPIRE', key, window)
	end

	return count
`)

// RateLimiter implements fixed-window HTTP rate limiting using Redis.
type RateLimiter struct {
	client *redis.Client
	config RateLimiterConfig
	log    *zap.Logger
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(client *redis.Client, config RateLimiterConfig, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
		log:    log,
	}
}

// maxRequests is the number of requests allowed per window, at least one.
func (rl *RateLimiter) maxRequests() int64 {
	limit := int64(rl.config.RequestsPerSecond * float64(rl.config.WindowSeconds))
	if limit < 1 {
		return 1
	}
	return limit
}

// Handler returns a Gin middleware enforcing the limit per method, path and client IP.
// Redis failures let the request through.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.client == nil || !rl.config.Enabled {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		// ratelimit:{method}:{route}:{ip}
		key := fmt.Sprintf("ratelimit:%s:%s:%s", c.Request.Method, route, clientIP)

		count, err := fixedWindowScript.Run(c.Request.Context(), rl.client, []string{key},
			rl.config.WindowSeconds).Int64()
		if err != nil {
			rl.log.Warn("rate limiter redis error, allowing request",
				zap.String("client_ip", clientIP),
				zap.String("route", route),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if count > rl.maxRequests() {
			rl.log.Warn("rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.String("route", route),
				zap.Int64("count", count),
				zap.Float64("limit", rl.config.RequestsPerSecond),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate_limit_exceeded",
				"message": fmt.Sprintf("Rate limit exceeded: %d requests in %d seconds (limit: %.0f req/s)",
					count, rl.config.WindowSeconds, rl.config.RequestsPerSecond),
			})
			return
		}

		c.Next()
	}
}
