package entities

import (
	"errors"
	"time"
)

// Ошибки домена учетных записей.
var (
	ErrIdentityNotFound = errors.New("identity not found")
	ErrUsernameTaken    = errors.New("username already taken")
)

// Identity представляет учетную запись с солью и хэшем пароля.
type Identity struct {
	ID           string
	Username     string
	Salt         string
	PasswordHash string
	CreatedAt    time.Time
}

// IdentityRef ссылается на аутентифицированную учетную запись.
type IdentityRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Ref возвращает ссылку на учетную запись.
func (i *Identity) Ref() *IdentityRef {
	return &IdentityRef{ID: i.ID, Username: i.Username}
}
