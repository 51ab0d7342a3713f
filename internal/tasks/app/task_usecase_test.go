package app_test

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/tasks/app"
	"taskmanager/internal/tasks/domain/entities"
	"taskmanager/pkg/logger"
)

var errDatabase = errors.New("database is down")

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "error")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestGetTaskByID(t *testing.T) {
	ctx := testContext(t)
	task := &entities.Task{ID: "t1", OwnerID: "alice", Status: entities.StatusOpen}

	tests := []struct {
		name    string
		ownerID string
		found   *entities.Task
		findErr error
		wantErr error
	}{
		{name: "found", ownerID: "alice", found: task},
		{name: "absent or foreign", ownerID: "bob", wantErr: app.ErrNotFound},
		{name: "store failure", ownerID: "alice", findErr: errDatabase, wantErr: errDatabase},
		{name: "missing owner", ownerID: "", wantErr: app.ErrInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockTaskRepository)
			if tt.ownerID != "" {
				repo.On("GetByID", mock.Anything, tt.ownerID, "t1").Return(tt.found, tt.findErr)
			}

			got, err := app.NewTaskUseCase(repo).GetTaskByID(ctx, tt.ownerID, "t1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, task, got)
			repo.AssertExpectations(t)
		})
	}
}

func TestCreateTask(t *testing.T) {
	ctx := testContext(t)

	t.Run("new tasks start OPEN", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(task *entities.Task) bool {
			return task.OwnerID == "alice" && task.Title == "buy milk" && task.Description == "2l" && task.Status == entities.StatusOpen
		})).Return(&entities.Task{ID: "t1", OwnerID: "alice", Title: "buy milk", Status: entities.StatusOpen}, nil)

		task, err := app.NewTaskUseCase(repo).CreateTask(ctx, "alice", "buy milk", "2l")
		require.NoError(t, err)
		assert.Equal(t, entities.StatusOpen, task.Status)
		repo.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil, errDatabase)

		task, err := app.NewTaskUseCase(repo).CreateTask(ctx, "alice", "buy milk", "")
		require.ErrorIs(t, err, errDatabase)
		assert.Nil(t, task)
	})

	t.Run("missing owner", func(t *testing.T) {
		repo := new(MockTaskRepository)
		_, err := app.NewTaskUseCase(repo).CreateTask(ctx, "", "buy milk", "")
		require.ErrorIs(t, err, app.ErrInvalidParams)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestDeleteTaskByID(t *testing.T) {
	ctx := testContext(t)

	tests := []struct {
		name     string
		affected int64
		delErr   error
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "absent or foreign", affected: 0, wantErr: app.ErrNotFound},
		{name: "store failure", delErr: errDatabase, wantErr: errDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockTaskRepository)
			repo.On("Delete", mock.Anything, "alice", "t1").Return(tt.affected, tt.delErr)

			err := app.NewTaskUseCase(repo).DeleteTaskByID(ctx, "alice", "t1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestUpdateTaskStatusByID(t *testing.T) {
	ctx := testContext(t)
	updated := &entities.Task{ID: "t1", OwnerID: "alice", Status: entities.StatusDone}

	t.Run("updates then re-reads", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("UpdateStatus", mock.Anything, "alice", "t1", entities.StatusDone).Return(int64(1), nil).Once()
		repo.On("GetByID", mock.Anything, "alice", "t1").Return(updated, nil).Once()

		task, err := app.NewTaskUseCase(repo).UpdateTaskStatusByID(ctx, "alice", "t1", entities.StatusDone)
		require.NoError(t, err)
		assert.Equal(t, updated, task)
		repo.AssertExpectations(t)
	})

	t.Run("zero affected is NotFound without re-read", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("UpdateStatus", mock.Anything, "bob", "t1", entities.StatusDone).Return(int64(0), nil)

		task, err := app.NewTaskUseCase(repo).UpdateTaskStatusByID(ctx, "bob", "t1", entities.StatusDone)
		require.ErrorIs(t, err, app.ErrNotFound)
		assert.Nil(t, task)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deleted between update and re-read", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("UpdateStatus", mock.Anything, "alice", "t1", entities.StatusOpen).Return(int64(1), nil)
		repo.On("GetByID", mock.Anything, "alice", "t1").Return(nil, nil)

		task, err := app.NewTaskUseCase(repo).UpdateTaskStatusByID(ctx, "alice", "t1", entities.StatusOpen)
		require.ErrorIs(t, err, app.ErrNotFound)
		assert.Nil(t, task)
	})

	t.Run("re-read failure", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("UpdateStatus", mock.Anything, "alice", "t1", entities.StatusOpen).Return(int64(1), nil)
		repo.On("GetByID", mock.Anything, "alice", "t1").Return(nil, errDatabase)

		_, err := app.NewTaskUseCase(repo).UpdateTaskStatusByID(ctx, "alice", "t1", entities.StatusOpen)
		require.ErrorIs(t, err, errDatabase)
	})

	t.Run("update failure", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("UpdateStatus", mock.Anything, "alice", "t1", entities.StatusOpen).Return(int64(0), errDatabase)

		_, err := app.NewTaskUseCase(repo).UpdateTaskStatusByID(ctx, "alice", "t1", entities.StatusOpen)
		require.ErrorIs(t, err, errDatabase)
		assert.NotErrorIs(t, err, app.ErrNotFound)
	})

	t.Run("status outside the enum", func(t *testing.T) {
		repo := new(MockTaskRepository)

		_, err := app.NewTaskUseCase(repo).UpdateTaskStatusByID(ctx, "alice", "t1", entities.Status("CLOSED"))
		require.ErrorIs(t, err, entities.ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetTasks(t *testing.T) {
	ctx := testContext(t)
	done := entities.StatusDone
	filter := entities.TaskFilter{Status: &done, Search: "milk"}

	t.Run("delegates to the store", func(t *testing.T) {
		want := []*entities.Task{{ID: "t1"}, {ID: "t2"}}
		var seq iter.Seq2[*entities.Task, error] = func(yield func(*entities.Task, error) bool) {
			for _, task := range want {
				if !yield(task, nil) {
					return
				}
			}
		}
		repo := new(MockTaskRepository)
		repo.On("List", mock.Anything, "alice", filter).Return(seq)

		got, err := entities.CollectTasks(app.NewTaskUseCase(repo).GetTasks(ctx, "alice", filter))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing owner", func(t *testing.T) {
		repo := new(MockTaskRepository)
		_, err := entities.CollectTasks(app.NewTaskUseCase(repo).GetTasks(ctx, "", filter))
		require.ErrorIs(t, err, app.ErrInvalidParams)
	})
}
