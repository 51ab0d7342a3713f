package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"taskmanager/internal/identity/domain/entities"
)

// fakeHasher детерминированно "хэширует" пароль без криптографии.
type fakeHasher struct {
	mu      sync.Mutex
	next    int
	saltErr error
	hashErr error
}

func (f *fakeHasher) GenerateSalt(_ context.Context) (string, error) {
	if f.saltErr != nil {
		return "", f.saltErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return fmt.Sprintf("salt-%d", f.next), nil
}

func (f *fakeHasher) Hash(_ context.Context, password, salt string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "digest(" + salt + "|" + password + ")", nil
}

type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) Create(ctx context.Context, identity *entities.Identity) (*entities.Identity, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Identity), args.Error(1)
}

func (m *MockIdentityRepository) FindByUsername(ctx context.Context, username string) (*entities.Identity, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Identity), args.Error(1)
}

// memoryIdentityRepository хранит учетные записи в памяти с ограничением уникальности имени.
type memoryIdentityRepository struct {
	mu    sync.Mutex
	byKey map[string]*entities.Identity
}

func newMemoryIdentityRepository() *memoryIdentityRepository {
	return &memoryIdentityRepository{byKey: make(map[string]*entities.Identity)}
}

func (r *memoryIdentityRepository) Create(_ context.Context, identity *entities.Identity) (*entities.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byKey[identity.Username]; ok {
		return nil, entities.ErrUsernameTaken
	}
	stored := *identity
	stored.ID = fmt.Sprintf("id-%d", len(r.byKey)+1)
	r.byKey[stored.Username] = &stored
	return &stored, nil
}

func (r *memoryIdentityRepository) FindByUsername(_ context.Context, username string) (*entities.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	identity, ok := r.byKey[username]
	if !ok {
		return nil, entities.ErrIdentityNotFound
	}
	found := *identity
	return &found, nil
}

func (r *memoryIdentityRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byKey)
}

var errDatabase = errors.New("database is down")
