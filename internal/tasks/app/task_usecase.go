// Package app implements application business logic for the tasks service.
package app

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"taskmanager/internal/tasks/domain/entities"
	"taskmanager/internal/tasks/ports/repositories"
	"taskmanager/pkg/logger"
)

const tracerName = "taskmanager/tasks"

// Ошибки уровня бизнес-логики.
var (
	ErrNotFound      = errors.New("task not found")
	ErrInvalidParams = errors.New("invalid parameters")
)

// TaskUseCase представляет собой бизнес-логику работы с задачами.
// Отсутствующая и чужая задача неразличимы: обе дают ErrNotFound.
type TaskUseCase struct {
	taskRepo repositories.TaskRepository
}

// NewTaskUseCase создает новый экземпляр TaskUseCase.
func NewTaskUseCase(taskRepo repositories.TaskRepository) *TaskUseCase {
	return &TaskUseCase{taskRepo: taskRepo}
}

// GetTaskByID возвращает задачу владельца по ID.
func (uc *TaskUseCase) GetTaskByID(ctx context.Context, ownerID, taskID string) (*entities.Task, error) {
	ctx, span := uc.start(ctx, "GetTaskByID", ownerID, attribute.String("task.id", taskID))
	defer span.End()

	if ownerID == "" {
		return nil, fail(span, ErrInvalidParams)
	}

	task, err := uc.taskRepo.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, fail(span, fmt.Errorf("failed to get task: %w", err))
	}
	if task == nil {
		return nil, fail(span, ErrNotFound)
	}

	return task, nil
}

// CreateTask создает новую задачу в состоянии OPEN.
func (uc *TaskUseCase) CreateTask(ctx context.Context, ownerID, title, description string) (*entities.Task, error) {
	ctx, span := uc.start(ctx, "CreateTask", ownerID)
	defer span.End()

	if ownerID == "" {
		return nil, fail(span, ErrInvalidParams)
	}

	task, err := uc.taskRepo.Create(ctx, entities.NewTask(ownerID, title, description))
	if err != nil {
		return nil, fail(span, fmt.Errorf("failed to create task: %w", err))
	}

	logger.Log(ctx).Info(ctx, "task created", zap.String("method", "CreateTask"), zap.String("taskID", task.ID))
	return task, nil
}

// DeleteTaskByID удаляет задачу владельца.
func (uc *TaskUseCase) DeleteTaskByID(ctx context.Context, ownerID, taskID string) error {
	ctx, span := uc.start(ctx, "DeleteTaskByID", ownerID, attribute.String("task.id", taskID))
	defer span.End()

	if ownerID == "" {
		return fail(span, ErrInvalidParams)
	}

	affected, err := uc.taskRepo.Delete(ctx, ownerID, taskID)
	if err != nil {
		return fail(span, fmt.Errorf("failed to delete task: %w", err))
	}
	if affected == 0 {
		return fail(span, ErrNotFound)
	}

	logger.Log(ctx).Info(ctx, "task deleted", zap.String("method", "DeleteTaskByID"), zap.String("taskID", taskID))
	return nil
}

// UpdateTaskStatusByID изменяет состояние задачи и возвращает ее актуальную версию.
// Разрешен переход из любого состояния в любое.
func (uc *TaskUseCase) UpdateTaskStatusByID(ctx context.Context, ownerID, taskID string, status entities.Status) (*entities.Task, error) {
	ctx, span := uc.start(ctx, "UpdateTaskStatusByID", ownerID,
		attribute.String("task.id", taskID), attribute.String("task.status", status.String()))
	defer span.End()

	if ownerID == "" {
		return nil, fail(span, ErrInvalidParams)
	}
	if !status.Valid() {
		return nil, fail(span, fmt.Errorf("%s is %w", status, entities.ErrInvalidStatus))
	}

	affected, err := uc.taskRepo.UpdateStatus(ctx, ownerID, taskID, status)
	if err != nil {
		return nil, fail(span, fmt.Errorf("failed to update task status: %w", err))
	}
	if affected == 0 {
		return nil, fail(span, ErrNotFound)
	}

	task, err := uc.taskRepo.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, fail(span, fmt.Errorf("failed to get task: %w", err))
	}
	if task == nil {
		return nil, fail(span, ErrNotFound)
	}

	logger.Log(ctx).Info(ctx, "task status updated",
		zap.String("method", "UpdateTaskStatusByID"), zap.String("taskID", taskID), zap.String("status", status.String()))
	return task, nil
}

// GetTasks возвращает задачи владельца, отобранные фильтром.
func (uc *TaskUseCase) GetTasks(ctx context.Context, ownerID string, filter entities.TaskFilter) iter.Seq2[*entities.Task, error] {
	if ownerID == "" {
		return func(yield func(*entities.Task, error) bool) {
			yield(nil, ErrInvalidParams)
		}
	}
	return uc.taskRepo.List(ctx, ownerID, filter)
}

func (uc *TaskUseCase) start(ctx context.Context, method, ownerID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, method)
	span.SetAttributes(append(attrs, attribute.String("task.owner_id", ownerID))...)
	logger.Log(ctx).Debug(ctx, "task operation", zap.String("method", method), zap.String("ownerID", ownerID))
	return ctx, span
}

func fail(span trace.Span, err error) error {
	if !errors.Is(err, ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
