package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/scrypt"

	"taskmanager/internal/identity/domain/services"
	svc "taskmanager/internal/identity/ports/services"
)

// Параметры scrypt по умолчанию.
const (
	DefaultScryptN = 1 << 15
	DefaultScryptR = 8
	DefaultScryptP = 1
)

// ScryptHasher реализует PasswordHasher на основе scrypt.
type ScryptHasher struct {
	n, r, p  int
	keyLen   int
	saltSize int
}

// NewScrypt создает новый экземпляр хэшера scrypt. Нулевые параметры заменяются значениями по умолчанию.
func NewScrypt(n, r, p, keyLen, saltSize int) svc.PasswordHasher {
	if n <= 1 {
		n = DefaultScryptN
	}
	if r <= 0 {
		r = DefaultScryptR
	}
	if p <= 0 {
		p = DefaultScryptP
	}
	if keyLen <= 0 {
		keyLen = int(DefaultKeyLength)
	}
	return &ScryptHasher{n: n, r: r, p: p, keyLen: keyLen, saltSize: saltSize}
}

// GenerateSalt возвращает случайную соль в base64.
func (h *ScryptHasher) GenerateSalt(_ context.Context) (string, error) {
	return generateSalt(h.saltSize)
}

// Hash вычисляет scrypt(password, salt).
func (h *ScryptHasher) Hash(_ context.Context, password, salt string) (string, error) {
	rawSalt, err := decodeSalt(salt)
	if err != nil {
		return "", err
	}
	key, err := scrypt.Key([]byte(password), rawSalt, h.n, h.r, h.p, h.keyLen)
	if err != nil {
		return "", fmt.Errorf("%w: %w", services.ErrHashingFailed, err)
	}
	return encoding.EncodeToString(key), nil
}
