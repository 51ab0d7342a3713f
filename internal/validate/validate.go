// Package validate проверяет входные данные до вызова сценариев.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"taskmanager/internal/tasks/domain/entities"
)

// Ограничения учетных данных.
const (
	MinUsernameLength = 4
	MaxUsernameLength = 20
	MinPasswordLength = 6
	MaxPasswordLength = 20
)

// Ошибки валидации.
var (
	ErrUsernameLength  = errors.New("username must be between 4 and 20 characters")
	ErrPasswordLength  = errors.New("password must be between 6 and 20 characters")
	ErrPasswordTooWeak = errors.New("password too weak")
	ErrEmptyTitle      = errors.New("title should not be empty")
	ErrEmptyStatus     = errors.New("status should not be empty")
	ErrEmptySearch     = errors.New("search should not be empty")
)

var (
	passwordAlphabet = regexp.MustCompile(`^[A-Za-z\d]+$`)
	hasLetter        = regexp.MustCompile(`[A-Za-z]`)
	hasDigit         = regexp.MustCompile(`\d`)
)

// Credentials проверяет имя пользователя и пароль.
// Пароль состоит только из латинских букв и цифр и содержит хотя бы одну букву и одну цифру.
func Credentials(username, password string) error {
	if n := utf8.RuneCountInString(username); n < MinUsernameLength || n > MaxUsernameLength {
		return ErrUsernameLength
	}

	if n := len(password); n < MinPasswordLength || n > MaxPasswordLength {
		return ErrPasswordLength
	}

	if !passwordAlphabet.MatchString(password) || !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return ErrPasswordTooWeak
	}

	return nil
}

// TaskTitle проверяет заголовок новой задачи.
func TaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// TaskFilter собирает фильтр списка задач из внешних значений.
// nil означает, что условие не задано; явно переданная пустая строка отклоняется.
func TaskFilter(status, search *string) (entities.TaskFilter, error) {
	var filter entities.TaskFilter

	if status != nil {
		if strings.TrimSpace(*status) == "" {
			return entities.TaskFilter{}, ErrEmptyStatus
		}
		parsed, err := entities.ParseStatus(*status)
		if err != nil {
			return entities.TaskFilter{}, err
		}
		filter.Status = &parsed
	}

	if search != nil {
		if *search == "" {
			return entities.TaskFilter{}, ErrEmptySearch
		}
		filter.Search = *search
	}

	return filter, nil
}
