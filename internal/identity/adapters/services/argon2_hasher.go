package services

import (
	"context"

	"golang.org/x/crypto/argon2"

	svc "taskmanager/internal/identity/ports/services"
)

// Параметры argon2id по умолчанию.
const (
	DefaultArgon2Time    uint32 = 1
	DefaultArgon2Memory  uint32 = 64 * 1024
	DefaultArgon2Threads uint8  = 2
	DefaultKeyLength     uint32 = 32
)

// Argon2Hasher реализует PasswordHasher на основе argon2id.
type Argon2Hasher struct {
	time     uint32
	memory   uint32
	threads  uint8
	keyLen   uint32
	saltSize int
}

// NewArgon2 создает новый экземпляр хэшера argon2id. Нулевые параметры заменяются значениями по умолчанию.
func NewArgon2(time, memory uint32, threads uint8, keyLen uint32, saltSize int) svc.PasswordHasher {
	if time == 0 {
		time = DefaultArgon2Time
	}
	if memory == 0 {
		memory = DefaultArgon2Memory
	}
	if threads == 0 {
		threads = DefaultArgon2Threads
	}
	if keyLen == 0 {
		keyLen = DefaultKeyLength
	}
	return &Argon2Hasher{time: time, memory: memory, threads: threads, keyLen: keyLen, saltSize: saltSize}
}

// GenerateSalt возвращает случайную соль в base64.
func (h *Argon2Hasher) GenerateSalt(_ context.Context) (string, error) {
	return generateSalt(h.saltSize)
}

// Hash вычисляет argon2id(password, salt).
func (h *Argon2Hasher) Hash(_ context.Context, password, salt string) (string, error) {
	rawSalt, err := decodeSalt(salt)
	if err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), rawSalt, h.time, h.memory, h.threads, h.keyLen)
	return encoding.EncodeToString(key), nil
}
