package services

import "context"

// PasswordHasher вычисляет детерминированный хэш пароля с солью.
type PasswordHasher interface {
	GenerateSalt(ctx context.Context) (string, error)

	Hash(ctx context.Context, password, salt string) (string, error)
}
