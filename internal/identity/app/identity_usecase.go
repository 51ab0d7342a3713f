// Package app содержит сценарии регистрации и аутентификации.
package app

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"taskmanager/internal/identity/domain/entities"
	"taskmanager/internal/identity/domain/services"
	"taskmanager/internal/identity/ports/api"
	"taskmanager/internal/identity/ports/repositories"
	svc "taskmanager/internal/identity/ports/services"
	"taskmanager/pkg/logger"
)

const (
	tracerName = "taskmanager/identity"

	methodRegister     = "Register"
	methodAuthenticate = "Authenticate"

	msgStartRegistration  = "starting identity registration"
	msgUsernameTaken      = "username already exists"
	msgIdentityRegistered = "identity registered successfully"
	msgAuthAttempt        = "authentication attempt"
	msgUnknownUsername    = "authentication attempt with unknown username"
	msgPasswordMismatch   = "invalid password provided"
	msgIdentityAuthorized = "identity authenticated successfully"
	msgErrGenerateSalt    = "failed to generate salt"
	msgErrHashPassword    = "failed to hash password"
	msgErrCreateIdentity  = "failed to create identity"
	msgErrFindingIdentity = "error finding identity by username"
	msgErrVerifyingDigest = "error computing candidate digest"
)

// IdentityUseCaseImpl реализует интерфейс IdentityUseCase.
type IdentityUseCaseImpl struct {
	identityRepo repositories.IdentityRepository
	hasher       svc.PasswordHasher
}

// NewIdentityUseCase создает новый экземпляр сервиса учетных записей.
func NewIdentityUseCase(identityRepo repositories.IdentityRepository, hasher svc.PasswordHasher) api.IdentityUseCase {
	return &IdentityUseCaseImpl{
		identityRepo: identityRepo,
		hasher:       hasher,
	}
}

// Register создает учетную запись со свежей солью.
// Возвращает services.ErrUsernameAlreadyExists или services.ErrIdentityStoreFailure.
func (a *IdentityUseCaseImpl) Register(ctx context.Context, username, password string) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, methodRegister)
	defer span.End()
	span.SetAttributes(attribute.String("identity.username", username))

	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("username", username))
	log.Debug(ctx, msgStartRegistration)

	salt, err := a.hasher.GenerateSalt(ctx)
	if err != nil {
		log.Error(ctx, msgErrGenerateSalt, zap.Error(err))
		return failSpan(span, services.ErrIdentityStoreFailure, err)
	}

	digest, err := a.hasher.Hash(ctx, password, salt)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return failSpan(span, services.ErrIdentityStoreFailure, err)
	}

	_, err = a.identityRepo.Create(ctx, &entities.Identity{
		Username:     username,
		Salt:         salt,
		PasswordHash: digest,
	})
	switch {
	case errors.Is(err, entities.ErrUsernameTaken):
		log.Debug(ctx, msgUsernameTaken)
		return failSpan(span, services.ErrUsernameAlreadyExists, err)
	case err != nil:
		log.Error(ctx, msgErrCreateIdentity, zap.Error(err))
		return failSpan(span, services.ErrIdentityStoreFailure, err)
	}

	log.Info(ctx, msgIdentityRegistered)
	return nil
}

// Authenticate проверяет пароль и возвращает ссылку на учетную запись.
// Неизвестное имя и неверный пароль дают nil, nil.
func (a *IdentityUseCaseImpl) Authenticate(ctx context.Context, username, password string) (*entities.IdentityRef, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, methodAuthenticate)
	defer span.End()
	span.SetAttributes(attribute.String("identity.username", username))

	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate), zap.String("username", username))
	log.Debug(ctx, msgAuthAttempt)

	identity, err := a.identityRepo.FindByUsername(ctx, username)
	if errors.Is(err, entities.ErrIdentityNotFound) {
		log.Debug(ctx, msgUnknownUsername)
		return nil, nil
	}
	if err != nil {
		log.Error(ctx, msgErrFindingIdentity, zap.Error(err))
		return nil, failSpan(span, services.ErrIdentityStoreFailure, err)
	}

	candidate, err := a.hasher.Hash(ctx, password, identity.Salt)
	if err != nil {
		log.Error(ctx, msgErrVerifyingDigest, zap.Error(err))
		return nil, failSpan(span, services.ErrIdentityStoreFailure, err)
	}

	if !services.DigestsEqual(candidate, identity.PasswordHash) {
		log.Debug(ctx, msgPasswordMismatch)
		return nil, nil
	}

	span.SetAttributes(attribute.String("identity.id", identity.ID))
	log.Info(ctx, msgIdentityAuthorized, zap.String("identity_id", identity.ID))
	return identity.Ref(), nil
}

// failSpan отмечает спан ошибкой cause и возвращает kind.
// Причина не оборачивается в возвращаемую ошибку.
func failSpan(span trace.Span, kind, cause error) error {
	span.RecordError(cause)
	span.SetStatus(codes.Error, kind.Error())
	return kind
}
