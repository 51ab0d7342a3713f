package repositories

import (
	"context"

	"taskmanager/internal/identity/domain/entities"
)

// IdentityRepository определяет операции хранения учетных записей.
type IdentityRepository interface {
	// Create сохраняет учетную запись; нарушение уникальности имени дает entities.ErrUsernameTaken.
	Create(ctx context.Context, identity *entities.Identity) (*entities.Identity, error)

	// FindByUsername возвращает entities.ErrIdentityNotFound, если записи нет.
	FindByUsername(ctx context.Context, username string) (*entities.Identity, error)
}
