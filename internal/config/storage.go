package config

import (
	"time"

	"taskmanager/pkg/retry"
)

// Поддерживаемые драйверы хранилища.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// StorageConfig выбирает реализацию постоянного хранилища.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"TASKS_STORAGE_DRIVER" env-default:"sqlite"`

	// Повторы подключения к PostgreSQL и Redis при старте.
	ConnectAttempts int           `yaml:"connect_attempts" env:"TASKS_CONNECT_ATTEMPTS" env-default:"3"`
	ConnectBackoff  time.Duration `yaml:"connect_backoff" env:"TASKS_CONNECT_BACKOFF" env-default:"200ms"`
}

// GetRetryPolicy возвращает политику повторов подключения.
func (s *StorageConfig) GetRetryPolicy() retry.Policy {
	p := retry.DefaultPolicy()
	p.Attempts = s.ConnectAttempts
	if s.ConnectBackoff > 0 {
		p.InitialBackoff = s.ConnectBackoff
	}
	return p
}

// SQLiteConfig содержит настройки встроенной базы SQLite.
type SQLiteConfig struct {
	Path        string `yaml:"path" env:"TASKS_SQLITE_PATH" env-default:"data/taskmanager.db"`
	BusyTimeout int    `yaml:"busy_timeout_ms" env:"TASKS_SQLITE_BUSY_TIMEOUT_MS" env-default:"5000"`
}
