// Package postgres содержит реализацию хранилища учетных записей на PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"taskmanager/internal/identity/domain/entities"
	"taskmanager/internal/identity/ports/repositories"
	"taskmanager/pkg/db/postgres"
	"taskmanager/pkg/logger"
)

// IdentityRepository реализует интерфейс repositories.IdentityRepository для работы с Postgres.
type IdentityRepository struct {
	pool postgres.Querier
}

// NewIdentityRepository создает новый экземпляр репозитория учетных записей.
func NewIdentityRepository(pool postgres.Querier) repositories.IdentityRepository {
	return &IdentityRepository{pool: pool}
}

// Create создает учетную запись.
func (r *IdentityRepository) Create(ctx context.Context, identity *entities.Identity) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("repository", "identity"), zap.String("method", "Create"))

	query := `
        INSERT INTO identities (username, salt, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, username, salt, password_hash, created_at
    `

	var created entities.Identity
	err := r.pool.QueryRow(ctx, query,
		identity.Username,
		identity.Salt,
		identity.PasswordHash,
	).Scan(
		&created.ID,
		&created.Username,
		&created.Salt,
		&created.PasswordHash,
		&created.CreatedAt,
	)

	if err != nil {
		if postgres.IsUniqueViolation(err) {
			log.Debug(ctx, "username already taken", zap.String("username", identity.Username))
			return nil, entities.ErrUsernameTaken
		}
		log.Error(ctx, "error creating identity", zap.Error(err))
		return nil, fmt.Errorf("error creating identity: %w", err)
	}

	return &created, nil
}

// FindByUsername находит учетную запись по имени пользователя.
func (r *IdentityRepository) FindByUsername(ctx context.Context, username string) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("repository", "identity"), zap.String("method", "FindByUsername"))

	query := `
        SELECT id, username, salt, password_hash, created_at
        FROM identities
        WHERE username = $1
    `

	var identity entities.Identity
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&identity.ID,
		&identity.Username,
		&identity.Salt,
		&identity.PasswordHash,
		&identity.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "identity not found", zap.String("username", username))
			return nil, entities.ErrIdentityNotFound
		}
		log.Error(ctx, "error finding identity by username", zap.Error(err))
		return nil, fmt.Errorf("error querying identity by username: %w", err)
	}

	return &identity, nil
}
