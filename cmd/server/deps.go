package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/questionbase/questionbase/api/internal/config"
	"github.com/questionbase/questionbase/api/internal/handler"
	"github.com/questionbase/questionbase/api/internal/middleware"
	"github.com/questionbase/questionbase/api/internal/pkg/circuitbreaker"
	"github.com/questionbase/questionbase/api/internal/pkg/database"
	"github.com/questionbase/questionbase/api/internal/repository"
	"github.com/questionbase/questionbase/api/internal/repository/memory"
	pgrepo "github.com/questionbase/questionbase/api/internal/repository/postgres"
	redisrepo "github.com/questionbase/questionbase/api/internal/repository/redis"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	// Connections, nil when the configuration does not need them
	Postgres *database.PostgresDB
	Redis    *database.RedisDB

	// Repository
	Questions *repository.QuestionRepository

	// Handlers
	Health          *handler.HealthHandler
	Docs            *handler.DocsHandler
	QuestionHandler *handler.QuestionHandler

	// Middleware
	RateLimit *middleware.RateLimitMiddleware
}

// initDependencies opens the configured backend, loads the repository and
// builds the handlers. The caller owns Close even when an error is returned.
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if cfg.NeedsRedis() {
		rdb, err := database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return deps, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		deps.Redis = rdb
	}

	backend, err := deps.initBackend(ctx)
	if err != nil {
		return deps, err
	}

	questions, err := repository.New(ctx, backend, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to load questions: %w", err)
	}
	deps.Questions = questions

	// Initialize handlers
	checks := []handler.Check{{Name: "store", Ping: questions.Ping}}
	if deps.Redis != nil && cfg.Store.Backend != config.BackendRedis {
		checks = append(checks, handler.Check{Name: "redis", Ping: deps.Redis.Ping})
	}
	deps.Health = handler.NewHealthHandler(appVersion, checks...)
	deps.Docs = handler.NewDocsHandler()
	deps.QuestionHandler = handler.NewQuestionHandler(questions, logger)

	// Initialize middleware
	if cfg.RateLimit.Enabled {
		deps.RateLimit = middleware.NewRateLimitMiddleware(
			middleware.NewRedisLimiter(deps.Redis.Client),
			middleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
				Logger: logger,
			},
		)
	}

	return deps, nil
}

// initBackend selects the storage backend named by store_backend. Durable
// backends are wrapped in a circuit breaker.
func (d *Dependencies) initBackend(ctx context.Context) (repository.Backend, error) {
	cfg := d.Config

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pg, err := database.NewPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		d.Postgres = pg

		backend := pgrepo.NewQuestionBackend(pg, cfg.Store.OpTimeout)
		if err := backend.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to prepare questions table: %w", err)
		}
		return d.guard(config.BackendPostgres, backend), nil

	case config.BackendRedis:
		backend := redisrepo.NewQuestionBackend(d.Redis.Client, cfg.Store.RedisKey, cfg.Store.OpTimeout)
		return d.guard(config.BackendRedis, backend), nil

	default:
		load := memory.New
		if cfg.Store.SeedPath != "" {
			d.Logger.Info("loading seed file", zap.String("path", cfg.Store.SeedPath))
			load = func() (*memory.Backend, error) { return memory.NewFromFile(cfg.Store.SeedPath) }
		}
		backend, err := load()
		if err != nil {
			return nil, fmt.Errorf("failed to load seed: %w", err)
		}
		return backend, nil
	}
}

func (d *Dependencies) guard(name string, backend repository.Backend) repository.Backend {
	breaker := circuitbreaker.DefaultConfig(name)
	breaker.MaxFailures = d.Config.Store.BreakerMaxFailures
	breaker.Timeout = d.Config.Store.BreakerTimeout
	return repository.NewGuardedBackend(backend, breaker, d.Logger)
}

// Close closes all dependencies
func (d *Dependencies) Close() {
	if d.Postgres != nil {
		d.Postgres.Close()
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
