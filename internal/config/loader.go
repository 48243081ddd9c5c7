package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Optionally read from config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/questionbase")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// Server
	cfg.Server.Host = v.GetString("server_host")
	cfg.Server.Port = v.GetInt("server_port")
	cfg.Server.Env = v.GetString("server_env")

	// Store
	cfg.Store.Backend = strings.ToLower(v.GetString("store_backend"))
	cfg.Store.SeedPath = v.GetString("store_seed_path")
	cfg.Store.OpTimeout = v.GetDuration("store_op_timeout")
	cfg.Store.RedisKey = v.GetString("store_redis_key")
	cfg.Store.BreakerMaxFailures = v.GetInt("store_breaker_max_failures")
	cfg.Store.BreakerTimeout = v.GetDuration("store_breaker_timeout")

	// PostgreSQL
	cfg.Postgres.Host = v.GetString("postgres_host")
	cfg.Postgres.Port = v.GetInt("postgres_port")
	cfg.Postgres.User = v.GetString("postgres_user")
	cfg.Postgres.Password = v.GetString("postgres_password")
	cfg.Postgres.Database = v.GetString("postgres_db")
	cfg.Postgres.SSLMode = v.GetString("postgres_ssl_mode")
	cfg.Postgres.MaxConns = int32(v.GetInt("postgres_max_conns"))
	cfg.Postgres.MinConns = int32(v.GetInt("postgres_min_conns"))

	// Redis
	cfg.Redis.Host = v.GetString("redis_host")
	cfg.Redis.Port = v.GetInt("redis_port")
	cfg.Redis.Password = v.GetString("redis_password")
	cfg.Redis.DB = v.GetInt("redis_db")

	// Rate Limiting
	cfg.RateLimit.Enabled = v.GetBool("rate_limit_enabled")
	cfg.RateLimit.Max = v.GetInt("rate_limit_max")
	cfg.RateLimit.Window = v.GetDuration("rate_limit_window")

	// CORS
	cfg.CORS.AllowOrigins = v.GetStringSlice("cors_allow_origins")

	// Logging
	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")

	// Sentry
	cfg.Sentry.DSN = v.GetString("sentry_dsn")
	cfg.Sentry.Environment = v.GetString("sentry_environment")
	cfg.Sentry.SampleRate = v.GetFloat64("sentry_sample_rate")

	// Validate required fields
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server_host", "127.0.0.1")
	v.SetDefault("server_port", 3030)
	v.SetDefault("server_env", "development")

	// Store defaults
	v.SetDefault("store_backend", BackendMemory)
	v.SetDefault("store_seed_path", "")
	v.SetDefault("store_op_timeout", "5s")
	v.SetDefault("store_redis_key", "questions")
	v.SetDefault("store_breaker_max_failures", 5)
	v.SetDefault("store_breaker_timeout", "30s")

	// PostgreSQL defaults
	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "questionbase")
	v.SetDefault("postgres_password", "questionbase")
	v.SetDefault("postgres_db", "questionbase")
	v.SetDefault("postgres_ssl_mode", "disable")
	v.SetDefault("postgres_max_conns", 10)
	v.SetDefault("postgres_min_conns", 1)

	// Redis defaults
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	// Rate limiting defaults
	v.SetDefault("rate_limit_enabled", false)
	v.SetDefault("rate_limit_max", 100)
	v.SetDefault("rate_limit_window", "1m")

	// CORS defaults
	v.SetDefault("cors_allow_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// Sentry defaults
	v.SetDefault("sentry_dsn", "")
	v.SetDefault("sentry_sample_rate", 1.0)
}

func validate(cfg *Config) error {
	switch cfg.Store.Backend {
	case BackendMemory, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	if cfg.Server.Port <= 0 {
		return fmt.Errorf("server port must be positive, got %d", cfg.Server.Port)
	}
	if cfg.Store.OpTimeout <= 0 {
		return fmt.Errorf("store op timeout must be positive, got %s", cfg.Store.OpTimeout)
	}
	if cfg.Store.BreakerMaxFailures <= 0 || cfg.Store.BreakerTimeout <= 0 {
		return fmt.Errorf("store breaker max failures and timeout must be positive")
	}
	if cfg.Store.Backend == BackendRedis && cfg.Store.RedisKey == "" {
		return fmt.Errorf("store redis key is required for the redis backend")
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.Max <= 0 || cfg.RateLimit.Window <= 0) {
		return fmt.Errorf("rate limit max and window must be positive when enabled")
	}
	return nil
}
