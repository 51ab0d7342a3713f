package services

import (
	"errors"
)

// PasswordErrors содержит ошибки хэширования паролей.
var (
	ErrHashingFailed = errors.New("failed to hash password")
	ErrInvalidSalt   = errors.New("invalid password salt")
)

// SaltLength - длина соли по умолчанию в байтах.
const SaltLength = 16
