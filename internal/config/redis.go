package config

import (
	"fmt"
	"time"
)

// RedisConfig содержит настройки кэша задач в Redis.
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" env:"TASKS_REDIS_ENABLED" env-default:"false"`
	Host         string        `yaml:"host" env:"TASKS_REDIS_HOST" env-default:"localhost"`
	Port         int           `yaml:"port" env:"TASKS_REDIS_PORT" env-default:"6379"`
	Password     string        `yaml:"password" env:"TASKS_REDIS_PASSWORD" env-default:""`
	DB           int           `yaml:"db" env:"TASKS_REDIS_DB" env-default:"0"`
	PoolSize     int           `yaml:"pool_size" env:"TASKS_REDIS_POOL_SIZE" env-default:"10"`
	Timeout      time.Duration `yaml:"timeout" env:"TASKS_REDIS_TIMEOUT" env-default:"3s"`
	TaskCacheTTL time.Duration `yaml:"task_cache_ttl" env:"TASKS_REDIS_TASK_TTL" env-default:"5m"`
}

// GetAddressString возвращает адрес Redis в формате host:port.
func (r *RedisConfig) GetAddressString() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GetHost возвращает хост Redis.
func (r RedisConfig) GetHost() string { return r.Host }

// GetPort возвращает порт Redis.
func (r RedisConfig) GetPort() int { return r.Port }

// GetPassword возвращает пароль Redis.
func (r RedisConfig) GetPassword() string { return r.Password }

// GetDB возвращает номер базы Redis.
func (r RedisConfig) GetDB() int { return r.DB }

// GetPoolSize возвращает размер пула соединений.
func (r RedisConfig) GetPoolSize() int { return r.PoolSize }

// GetTimeout возвращает таймаут операций.
func (r RedisConfig) GetTimeout() time.Duration { return r.Timeout }
