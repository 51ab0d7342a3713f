package services

import (
	"errors"
)

// Ошибки, которые видит вызывающая сторона регистрации.
var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrIdentityStoreFailure  = errors.New("identity store failure")
)
