// Package repositories defines repository interfaces for the tasks service.
package repositories

import (
	"context"
	"iter"

	"taskmanager/internal/tasks/domain/entities"
)

// TaskRepository определяет интерфейс для работы с хранилищем задач.
// Все операции ограничены задачами владельца ownerID.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) (*entities.Task, error)
	// List возвращает ленивую последовательность; каждый проход выполняет новый запрос.
	List(ctx context.Context, ownerID string, filter entities.TaskFilter) iter.Seq2[*entities.Task, error]
	// GetByID возвращает nil, nil для отсутствующей или чужой задачи.
	GetByID(ctx context.Context, ownerID, taskID string) (*entities.Task, error)
	UpdateStatus(ctx context.Context, ownerID, taskID string, status entities.Status) (int64, error)
	Delete(ctx context.Context, ownerID, taskID string) (int64, error)
}
