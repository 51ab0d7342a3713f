package redis

import (
	"fmt"
	"time"
)

// Значения по умолчанию для Redis.
const (
	DefaultHost        = "localhost"
	DefaultPort        = 6379
	DefaultPoolSize    = 10
	DefaultTimeout     = 3 * time.Second
	DefaultPingTimeout = 5 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// Addr возвращает адрес в формате host:port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DefaultConfig возвращает конфигурацию Redis по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		PoolSize: DefaultPoolSize,
		Timeout:  DefaultTimeout,
	}
}

// Source описывает конфигурацию сервиса, из которой собирается Config.
type Source interface {
	GetHost() string
	GetPort() int
	GetPassword() string
	GetDB() int
	GetPoolSize() int
	GetTimeout() time.Duration
}

// NewConfig создает конфигурацию Redis из конфигурации сервиса.
func NewConfig(src Source) *Config {
	cfg := &Config{
		Host:     src.GetHost(),
		Port:     src.GetPort(),
		Password: src.GetPassword(),
		DB:       src.GetDB(),
		PoolSize: src.GetPoolSize(),
		Timeout:  src.GetTimeout(),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultPoolSize
	}
	return cfg
}
