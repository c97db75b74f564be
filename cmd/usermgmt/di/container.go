package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-management-service/cmd/usermgmt/infrastructure"
	"user-management-service/internal/adapter/cache"
	"user-management-service/internal/adapter/db/postgres"
	ginhandler "user-management-service/internal/adapter/gin/handler"
	"user-management-service/internal/adapter/gin/middleware"
	"user-management-service/internal/adapter/repository/cached"
	"user-management-service/internal/config"
	"user-management-service/internal/usecase/user"
	redisclient "user-management-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client // nil unless the cache or rate limiter is enabled
	UserUC      user.Usecase
	RateLimiter *middleware.RateLimiter // nil when rate limiting is disabled
	GinHandler  *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	c := &Container{
		Config: cfg,
		Logger: l,
		DB:     db,
	}

	if cfg.RedisRequired() {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb
	}

	var repo user.Repository = postgres.NewUserGateway(db, l)
	if cfg.Cache.Enabled {
		userCache := cache.NewRedisUserCache(
			c.RedisClient.Client,
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
			l,
		)
		repo = cached.NewUserRepository(repo, userCache, l)
		l.Info("user cache enabled", zap.Int("ttl_seconds", cfg.Cache.TTLSeconds))
	}

	c.UserUC = user.New(repo, l)

	if cfg.RateLimit.Enabled {
		c.RateLimiter = middleware.NewRateLimiter(
			c.RedisClient.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				WindowSeconds:     cfg.RateLimit.WindowSeconds,
				Enabled:           true,
			},
			l,
		)
	}

	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
