package services

import (
	"errors"
	"fmt"

	"taskmanager/internal/config"
	svc "taskmanager/internal/identity/ports/services"
)

// ErrUnknownAlgorithm возвращается для неподдерживаемого алгоритма хэширования.
var ErrUnknownAlgorithm = errors.New("unknown password hashing algorithm")

// ServiceFactory создает сервисы, необходимые для работы с учетными записями.
type ServiceFactory struct {
	passwordHasher svc.PasswordHasher
}

// NewServiceFactory создает фабрику по конфигурации хэширования.
func NewServiceFactory(cfg config.HasherConfig) (*ServiceFactory, error) {
	var hasher svc.PasswordHasher

	switch cfg.Algorithm {
	case config.HasherArgon2id:
		hasher = NewArgon2(cfg.Argon2Time, cfg.Argon2Memory, cfg.Argon2Threads, uint32(max(cfg.KeyBytes, 0)), cfg.SaltBytes)
	case config.HasherScrypt:
		hasher = NewScrypt(cfg.ScryptN, cfg.ScryptR, cfg.ScryptP, cfg.KeyBytes, cfg.SaltBytes)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, cfg.Algorithm)
	}

	return &ServiceFactory{passwordHasher: hasher}, nil
}

// PasswordHasher возвращает хэшер паролей.
func (f *ServiceFactory) PasswordHasher() svc.PasswordHasher {
	return f.passwordHasher
}
