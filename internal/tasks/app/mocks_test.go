package app_test

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"

	"taskmanager/internal/tasks/domain/entities"
)

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, ownerID string, filter entities.TaskFilter) iter.Seq2[*entities.Task, error] {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(iter.Seq2[*entities.Task, error])
}

func (m *MockTaskRepository) GetByID(ctx context.Context, ownerID, taskID string) (*entities.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, ownerID, taskID string, status entities.Status) (int64, error) {
	args := m.Called(ctx, ownerID, taskID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, ownerID, taskID string) (int64, error) {
	args := m.Called(ctx, ownerID, taskID)
	return args.Get(0).(int64), args.Error(1)
}
