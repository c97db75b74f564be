package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"user-management-service/cmd/usermgmt/di"
	"user-management-service/cmd/usermgmt/server"
	"user-management-service/internal/adapter/console"
	"user-management-service/internal/config"
	"user-management-service/pkg/logger"
)

// App represents the application
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Container *di.Container
}

// Option adjusts the loaded configuration before dependencies are built.
type Option func(*config.Config)

// WithInteractiveOutput moves stdout logging to stderr so it does not
// interleave with the console menu.
func WithInteractiveOutput() Option {
	return func(cfg *config.Config) {
		if cfg.Logger.OutputPath == "" || cfg.Logger.OutputPath == "stdout" {
			cfg.Logger.OutputPath = "stderr"
		}
	}
}

// New loads configuration from configPath and builds all dependencies.
func New(ctx context.Context, configPath string, opts ...Option) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	for _, opt := range opts {
		opt(cfg)
	}

	l, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewWithConfig(ctx, cfg, l)
}

// NewWithConfig builds the application from an already loaded configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	container, err := di.NewContainer(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	return &App{
		Config:    cfg,
		Logger:    l,
		Container: container,
	}, nil
}

// RunServer serves the HTTP listing until ctx is canceled, then shuts down gracefully.
func (a *App) RunServer(ctx context.Context) error {
	a.Logger.Info("starting application",
		zap.String("service", a.Config.Logger.ServiceName),
		zap.String("version", a.Config.Logger.ServiceVersion),
		zap.String("environment", a.Config.Env),
		zap.String("front_end", "http"),
	)

	srv := server.New(a.Config, a.Logger, a.Container.GinHandler, a.Container.RateLimiter)

	errChan := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errChan <- fmt.Errorf("server panic: %v", r)
			}
		}()

		errChan <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		a.Logger.Info("shutting down application...")
		err := a.shutdown(srv)
		return errors.Join(err, <-errChan)
	case err := <-errChan:
		if err != nil {
			err = fmt.Errorf("server error: %w", err)
		}
		return errors.Join(err, a.shutdown(nil))
	}
}

// RunConsole runs the interactive menu over in and out until the user exits.
func (a *App) RunConsole(ctx context.Context, in io.Reader, out io.Writer) error {
	a.Logger.Info("starting application",
		zap.String("service", a.Config.Logger.ServiceName),
		zap.String("environment", a.Config.Env),
		zap.String("front_end", "console"),
	)

	err := console.NewMenu(a.Container.UserUC, in, out, a.Logger).Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	return errors.Join(err, a.shutdown(nil))
}

// shutdown stops the server when one is running and releases all resources
func (a *App) shutdown(srv *server.Server) error {
	timeout := time.Duration(a.Config.App.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error

	if srv != nil {
		a.Logger.Info("starting graceful shutdown",
			zap.Int("timeout_seconds", a.Config.App.ShutdownTimeoutSeconds),
		)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("failed to shutdown HTTP server", zap.Error(err))
			errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
		}
	}

	if a.Container != nil {
		a.Logger.Info("closing container resources...")
		if err := a.Container.Close(); err != nil {
			a.Logger.Error("failed to close container", zap.Error(err))
			errs = append(errs, fmt.Errorf("container close: %w", err))
		}
	}

	// Sync errors for stdout/stderr are expected and ignored
	_ = a.Logger.Sync()

	a.Logger.Info("application shutdown complete")

	return errors.Join(errs...)
}

// initLogger initializes the application logger
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.NewWithConfig(logger.Config{
		Level:          cfg.Logger.Level,
		Format:         cfg.Logger.Format,
		OutputPath:     cfg.Logger.OutputPath,
		EnableSampling: cfg.Logger.EnableSampling,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
		Environment:    cfg.Env,
	})
}
