// Package cli provides the babytrack command tree and the initialization it
// shares: environment, logging, configuration and the storage backend.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"babytrack/internal/backend"
	"babytrack/internal/config"
	"babytrack/internal/log"
	"babytrack/internal/render"
	"babytrack/internal/services"
)

// SetupLogger initializes structured logging from the configuration and
// sets it as the default logger. Logs go to stderr.
func SetupLogger(cfg *config.Config) *log.Logger {
	logCfg := log.DefaultConfig()
	if cfg != nil {
		if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
			logCfg.Level = level
		}
		if format, err := log.ParseFormat(cfg.LogFormat); err == nil {
			logCfg.Format = format
		}
	}
	logger := log.New(logCfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local use.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM, so an
// interrupted command stops between storage calls.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// App is what every command runs against.
type App struct {
	Tracker  *services.Tracker
	Renderer *render.Renderer
	Logger   *log.Logger
	Timeout  time.Duration

	cleanup backend.CleanupFunc
}

// Opener builds the App lazily, once a command that needs it runs.
type Opener func(ctx context.Context) (*App, error)

// Bootstrap opens the configured backend and wires the tracker and
// renderer.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("backend config: %w", err)
	}

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("open backend: %w", err)
	}

	logger.WithComponent(log.ComponentCLI).DebugContext(ctx, "Backend ready", log.FieldBackend, backendCfg.Type.String())

	return &App{
		Tracker:  services.NewTracker(result.Medium, logger, services.WithLocation(cfg.Location())),
		Renderer: render.NewRenderer(render.NewLocalizer(cfg.Language())),
		Logger:   logger,
		Timeout:  cfg.StorageTimeout,
		cleanup:  result.Cleanup,
	}, nil
}

// NewApp wires an App around an existing tracker, for callers that manage
// the medium themselves.
func NewApp(tracker *services.Tracker, renderer *render.Renderer, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &App{Tracker: tracker, Renderer: renderer, Logger: logger}
}

// Context bounds ctx by the configured storage timeout.
func (a *App) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.Timeout)
}

// Close releases the backend.
func (a *App) Close() error {
	if a == nil || a.cleanup == nil {
		return nil
	}
	if err := a.cleanup(); err != nil {
		return fmt.Errorf("close backend: %w", err)
	}
	return nil
}
