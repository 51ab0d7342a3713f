package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/tasks/domain/entities"
	"taskmanager/internal/validate"
)

func TestCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid", username: "alice", password: "secret1"},
		{name: "boundary lengths", username: "abcd", password: "a1b2c3"},
		{name: "max lengths", username: strings.Repeat("u", 20), password: strings.Repeat("a1", 10)},
		{name: "short username", username: "bob", password: "secret1", wantErr: validate.ErrUsernameLength},
		{name: "long username", username: strings.Repeat("u", 21), password: "secret1", wantErr: validate.ErrUsernameLength},
		{name: "short password", username: "alice", password: "a1", wantErr: validate.ErrPasswordLength},
		{name: "long password", username: "alice", password: strings.Repeat("a1", 11), wantErr: validate.ErrPasswordLength},
		{name: "letters only", username: "alice", password: "secretpw", wantErr: validate.ErrPasswordTooWeak},
		{name: "digits only", username: "alice", password: "123456", wantErr: validate.ErrPasswordTooWeak},
		{name: "symbols rejected", username: "alice", password: "secret1!", wantErr: validate.ErrPasswordTooWeak},
		{name: "non-ascii letters rejected", username: "alice", password: "пароль12", wantErr: validate.ErrPasswordTooWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Credentials(tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTaskTitle(t *testing.T) {
	require.NoError(t, validate.TaskTitle("buy milk"))
	require.ErrorIs(t, validate.TaskTitle(""), validate.ErrEmptyTitle)
	require.ErrorIs(t, validate.TaskTitle("   "), validate.ErrEmptyTitle)
}

func ptr(s string) *string { return &s }

func TestTaskFilter(t *testing.T) {
	filter, err := validate.TaskFilter(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, entities.TaskFilter{}, filter)

	filter, err = validate.TaskFilter(nil, ptr("milk"))
	require.NoError(t, err)
	assert.Nil(t, filter.Status)
	assert.Equal(t, "milk", filter.Search)

	filter, err = validate.TaskFilter(ptr(" done "), ptr("  "))
	require.NoError(t, err)
	require.NotNil(t, filter.Status)
	assert.Equal(t, entities.StatusDone, *filter.Status)
	assert.Equal(t, "  ", filter.Search)

	_, err = validate.TaskFilter(ptr("closed"), nil)
	require.ErrorIs(t, err, entities.ErrInvalidStatus)
	assert.EqualError(t, err, "CLOSED is invalid status")

	_, err = validate.TaskFilter(nil, ptr(""))
	require.ErrorIs(t, err, validate.ErrEmptySearch)

	_, err = validate.TaskFilter(ptr(" "), nil)
	require.ErrorIs(t, err, validate.ErrEmptyStatus)
}
