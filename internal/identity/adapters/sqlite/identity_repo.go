// Package sqlite содержит реализацию хранилища учетных записей на SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskmanager/internal/identity/domain/entities"
	"taskmanager/internal/identity/ports/repositories"
	"taskmanager/pkg/db/sqlite"
	"taskmanager/pkg/logger"
)

// IdentityRepository реализует интерфейс repositories.IdentityRepository для работы с SQLite.
type IdentityRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewIdentityRepository создает новый экземпляр репозитория учетных записей.
func NewIdentityRepository(db *sql.DB) repositories.IdentityRepository {
	return &IdentityRepository{db: db, now: time.Now}
}

// Create создает учетную запись.
func (r *IdentityRepository) Create(ctx context.Context, identity *entities.Identity) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("repository", "identity"), zap.String("method", "Create"))

	created := entities.Identity{
		ID:           uuid.NewString(),
		Username:     identity.Username,
		Salt:         identity.Salt,
		PasswordHash: identity.PasswordHash,
		CreatedAt:    r.now().UTC().Truncate(time.Millisecond),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO identities (id, username, salt, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		created.ID, created.Username, created.Salt, created.PasswordHash, created.CreatedAt.UnixMilli(),
	)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
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

	var (
		identity  entities.Identity
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, salt, password_hash, created_at FROM identities WHERE username = ?`,
		username,
	).Scan(&identity.ID, &identity.Username, &identity.Salt, &identity.PasswordHash, &createdAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug(ctx, "identity not found", zap.String("username", username))
			return nil, entities.ErrIdentityNotFound
		}
		log.Error(ctx, "error finding identity by username", zap.Error(err))
		return nil, fmt.Errorf("error querying identity by username: %w", err)
	}

	identity.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &identity, nil
}
