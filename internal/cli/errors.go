package cli

import (
	"errors"

	"taskmanager/internal/identity/domain/services"
	taskapp "taskmanager/internal/tasks/app"
)

// Ошибки, которые видит пользователь CLI.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
	ErrTaskNotFound       = errors.New("task not found")
	ErrMissingCredentials = errors.New("--username and --password are required (env: " + EnvUsername + ", " + EnvPassword + ")")
)

// describe сводит ошибки сценариев к коротким сообщениям для пользователя.
func describe(err error) error {
	switch {
	case errors.Is(err, services.ErrUsernameAlreadyExists):
		return ErrUsernameExists
	case errors.Is(err, taskapp.ErrNotFound):
		return ErrTaskNotFound
	default:
		return err
	}
}
