// Package config содержит конфигурацию сервиса задач.
package config

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "taskmanager/pkg/config"
	"taskmanager/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName         = "taskmanager"
	LogConfigLoaded     = "task service configuration loaded"
	ErrFailedLoadConfig = "failed to load configuration"
	ErrInvalidConfig    = "invalid configuration"
)

// Ошибки валидации конфигурации.
var (
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
	ErrUnknownHasher        = errors.New("unknown password hashing algorithm")
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Redis    RedisConfig    `yaml:"redis"`
	Hasher   HasherConfig   `yaml:"hasher"`
	Search   SearchConfig   `yaml:"search"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// Load загружает конфигурацию из файла (если указан) и переменных окружения.
func Load(ctx context.Context, path string) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrInvalidConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("sqlite_path", cfg.SQLite.Path),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("hasher", cfg.Hasher.Algorithm),
		zap.Bool("search_case_insensitive", cfg.Search.CaseInsensitive),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Validate проверяет значения-перечисления.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.Storage.Driver)
	}

	switch c.Hasher.Algorithm {
	case HasherArgon2id, HasherScrypt:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownHasher, c.Hasher.Algorithm)
	}

	return nil
}
