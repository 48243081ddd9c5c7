package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/questionbase/questionbase/api/internal/config"
	"github.com/questionbase/questionbase/api/internal/handler"
	"github.com/questionbase/questionbase/api/internal/middleware"
	"github.com/questionbase/questionbase/api/internal/pkg/logger"
)

const appVersion = "0.1.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = logger.Sync() }()

	// Initialize Sentry if a DSN is configured
	sentryConfig := middleware.DefaultSentryConfig()
	sentryConfig.DSN = cfg.Sentry.DSN
	sentryConfig.SampleRate = cfg.Sentry.SampleRate
	sentryConfig.Release = "questionbase@" + appVersion
	sentryConfig.Environment = cfg.Server.Env
	if cfg.Sentry.Environment != "" {
		sentryConfig.Environment = cfg.Sentry.Environment
	}

	sentryEnabled, err := middleware.InitSentry(sentryConfig)
	if err != nil {
		log.Error("failed to initialize Sentry", zap.Error(err))
	}
	if sentryEnabled {
		log.Info("Sentry initialized",
			zap.String("environment", sentryConfig.Environment),
			zap.String("release", sentryConfig.Release),
		)
		defer middleware.FlushSentry(sentryConfig.FlushTimeout)
	}

	// Initialize dependencies
	deps, err := initDependencies(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("failed to initialize dependencies", zap.Error(err))
	}
	defer deps.Close()

	var report func(*fiber.Ctx, error)
	if sentryEnabled {
		report = middleware.CaptureError
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:               "Questionbase API",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		UnescapePath:          true,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          handler.ErrorHandler(log, report),
	})

	applyMiddleware(app, cfg, deps, sentryEnabled)
	registerRoutes(app, deps)

	// Start server
	go func() {
		addr := cfg.Server.Addr()
		log.Info("starting server",
			zap.String("addr", addr),
			zap.String("backend", cfg.Store.Backend),
			zap.Int("questions", deps.Questions.Count(context.Background())),
		)
		if err := app.Listen(addr); err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}

	log.Info("server stopped")
}

// applyMiddleware installs the global middleware chain. The logger renders
// handler errors itself, so it sits inside metrics and outside recovery.
func applyMiddleware(app *fiber.App, cfg *config.Config, deps *Dependencies, sentryEnabled bool) {
	app.Use(middleware.RequestID())

	metricsMiddleware := middleware.NewMetricsMiddleware(middleware.DefaultMetricsConfig())
	app.Use(metricsMiddleware.Handler())

	loggerMiddleware := middleware.NewLoggerMiddleware(middleware.DefaultLoggerConfig(deps.Logger))
	app.Use(loggerMiddleware.Handler())

	app.Use(middleware.RecoverWithSentry(deps.Logger, sentryEnabled))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	corsMiddleware := middleware.NewCORSMiddleware(corsConfig)
	app.Use(corsMiddleware.Handler())

	if deps.RateLimit != nil {
		app.Use(deps.RateLimit.Handler())
	}
}
