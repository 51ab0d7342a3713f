package services_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/config"
	adapters "taskmanager/internal/identity/adapters/services"
	"taskmanager/internal/identity/domain/services"
	svc "taskmanager/internal/identity/ports/services"
)

func cheapHashers() map[string]svc.PasswordHasher {
	return map[string]svc.PasswordHasher{
		"argon2id": adapters.NewArgon2(1, 1024, 1, 32, 16),
		"scrypt":   adapters.NewScrypt(1024, 8, 1, 32, 16),
	}
}

func TestHashers(t *testing.T) {
	ctx := context.Background()

	for name, hasher := range cheapHashers() {
		t.Run(name, func(t *testing.T) {
			salt, err := hasher.GenerateSalt(ctx)
			require.NoError(t, err)
			raw, err := base64.RawStdEncoding.DecodeString(salt)
			require.NoError(t, err)
			assert.Len(t, raw, 16)

			otherSalt, err := hasher.GenerateSalt(ctx)
			require.NoError(t, err)
			assert.NotEqual(t, salt, otherSalt)

			first, err := hasher.Hash(ctx, "secret1", salt)
			require.NoError(t, err)
			second, err := hasher.Hash(ctx, "secret1", salt)
			require.NoError(t, err)
			assert.Equal(t, first, second, "hash must be deterministic for a fixed pair")
			assert.NotContains(t, first, "secret1")

			wrong, err := hasher.Hash(ctx, "secret2", salt)
			require.NoError(t, err)
			assert.NotEqual(t, first, wrong)

			salted, err := hasher.Hash(ctx, "secret1", otherSalt)
			require.NoError(t, err)
			assert.NotEqual(t, first, salted)

			empty, err := hasher.Hash(ctx, "", salt)
			require.NoError(t, err)
			assert.NotEmpty(t, empty)

			_, err = hasher.Hash(ctx, "secret1", "%%not-base64%%")
			require.ErrorIs(t, err, services.ErrInvalidSalt)
		})
	}
}

func TestDigestsEqual(t *testing.T) {
	assert.True(t, services.DigestsEqual("abc", "abc"))
	assert.False(t, services.DigestsEqual("abc", "abd"))
	assert.False(t, services.DigestsEqual("abc", "ab"))
}

func TestNewServiceFactory(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		wantErr   bool
	}{
		{name: "argon2id", algorithm: config.HasherArgon2id},
		{name: "scrypt", algorithm: config.HasherScrypt},
		{name: "unknown", algorithm: "md5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory, err := adapters.NewServiceFactory(config.HasherConfig{
				Algorithm:     tt.algorithm,
				SaltBytes:     8,
				KeyBytes:      16,
				Argon2Time:    1,
				Argon2Memory:  1024,
				Argon2Threads: 1,
				ScryptN:       1024,
				ScryptR:       8,
				ScryptP:       1,
			})
			if tt.wantErr {
				require.ErrorIs(t, err, adapters.ErrUnknownAlgorithm)
				assert.Nil(t, factory)
				return
			}
			require.NoError(t, err)

			hasher := factory.PasswordHasher()
			require.NotNil(t, hasher)

			salt, err := hasher.GenerateSalt(context.Background())
			require.NoError(t, err)
			digest, err := hasher.Hash(context.Background(), "abc123", salt)
			require.NoError(t, err)

			raw, err := base64.RawStdEncoding.DecodeString(digest)
			require.NoError(t, err)
			assert.Len(t, raw, 16)
		})
	}
}
