package api

import (
	"context"

	"taskmanager/internal/identity/domain/entities"
)

// IdentityUseCase определяет основной порт для регистрации и аутентификации.
type IdentityUseCase interface {
	Register(ctx context.Context, username, password string) error

	// Authenticate возвращает nil, nil для неизвестного имени или неверного пароля.
	Authenticate(ctx context.Context, username, password string) (*entities.IdentityRef, error)
}
