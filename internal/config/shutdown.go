package config

import (
	"time"
)

// ShutdownConfig содержит настройки освобождения ресурсов при завершении.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"TASKS_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout возвращает timeout как time.Duration.
func (s *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}
