// Package services содержит реализации PasswordHasher на основе golang.org/x/crypto.
package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"taskmanager/internal/identity/domain/services"
)

const errMsgGenerateSalt = "failed to generate salt"

var encoding = base64.RawStdEncoding

func generateSalt(size int) (string, error) {
	if size <= 0 {
		size = services.SaltLength
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", errMsgGenerateSalt, err)
	}
	return encoding.EncodeToString(buf), nil
}

func decodeSalt(salt string) ([]byte, error) {
	raw, err := encoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrInvalidSalt, err)
	}
	return raw, nil
}
