// Package postgres provides PostgreSQL implementations of task repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"taskmanager/internal/tasks/domain/entities"
	"taskmanager/internal/tasks/ports/repositories"
	"taskmanager/pkg/db/postgres"
	"taskmanager/pkg/logger"
)

const taskColumns = `id, title, description, status, owner_id, created_at, updated_at`

// ErrInvalidOwnerID возвращается при создании задачи с некорректным идентификатором владельца.
var ErrInvalidOwnerID = errors.New("owner id is not a valid UUID")

// TaskRepository реализует интерфейс repositories.TaskRepository.
type TaskRepository struct {
	pool                  postgres.Querier
	caseInsensitiveSearch bool
}

// NewTaskRepository создает новый репозиторий задач.
func NewTaskRepository(pool postgres.Querier, caseInsensitiveSearch bool) repositories.TaskRepository {
	return &TaskRepository{pool: pool, caseInsensitiveSearch: caseInsensitiveSearch}
}

// Create сохраняет новую задачу в состоянии OPEN.
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.Create"))
	log.Debug(ctx, "creating new task", zap.String("ownerID", task.OwnerID))

	if !isUUID(task.OwnerID) {
		return nil, fmt.Errorf("failed to create task: %w", ErrInvalidOwnerID)
	}

	created, err := scanTask(r.pool.QueryRow(ctx,
		`INSERT INTO tasks (title, description, status, owner_id) VALUES ($1, $2, $3, $4) RETURNING `+taskColumns,
		task.Title, task.Description, string(entities.StatusOpen), task.OwnerID,
	))
	if err != nil {
		log.Error(ctx, "failed to create task", zap.Error(err))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Debug(ctx, "task created", zap.String("taskID", created.ID))
	return created, nil
}

// List возвращает задачи владельца, отобранные фильтром, в порядке создания.
func (r *TaskRepository) List(ctx context.Context, ownerID string, filter entities.TaskFilter) iter.Seq2[*entities.Task, error] {
	return func(yield func(*entities.Task, error) bool) {
		log := logger.Log(ctx).With(zap.String("method", "TaskRepository.List"))
		log.Debug(ctx, "listing tasks", zap.String("ownerID", ownerID))

		if !isUUID(ownerID) {
			return
		}

		query, args := r.listQuery(ownerID, filter)
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			log.Error(ctx, "failed to list tasks", zap.Error(err))
			yield(nil, fmt.Errorf("failed to list tasks: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			task, err := scanTask(rows)
			if err != nil {
				log.Error(ctx, "failed to scan task", zap.Error(err))
				yield(nil, fmt.Errorf("failed to scan task: %w", err))
				return
			}
			if !yield(task, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			log.Error(ctx, "error iterating rows", zap.Error(err))
			yield(nil, fmt.Errorf("error iterating rows: %w", err))
		}
	}
}

func (r *TaskRepository) listQuery(ownerID string, filter entities.TaskFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1`)
	args := []any{ownerID}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		fmt.Fprintf(&sb, ` AND status = $%d`, len(args))
	}

	if filter.Search != "" {
		args = append(args, filter.Search)
		n := len(args)
		if r.caseInsensitiveSearch {
			fmt.Fprintf(&sb, ` AND (strpos(lower(title), lower($%d)) > 0 OR strpos(lower(description), lower($%d)) > 0)`, n, n)
		} else {
			fmt.Fprintf(&sb, ` AND (strpos(title, $%d) > 0 OR strpos(description, $%d) > 0)`, n, n)
		}
	}

	sb.WriteString(` ORDER BY created_at ASC, id ASC`)
	return sb.String(), args
}

// GetByID получает задачу по ID и ID владельца.
func (r *TaskRepository) GetByID(ctx context.Context, ownerID, taskID string) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.GetByID"))
	log.Debug(ctx, "getting task", zap.String("taskID", taskID), zap.String("ownerID", ownerID))

	if !isUUID(ownerID) || !isUUID(taskID) {
		log.Debug(ctx, "task not found", zap.String("taskID", taskID))
		return nil, nil
	}

	task, err := scanTask(r.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND owner_id = $2`,
		taskID, ownerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "task not found", zap.String("taskID", taskID))
			return nil, nil
		}
		log.Error(ctx, "failed to get task", zap.Error(err))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// UpdateStatus изменяет состояние задачи и возвращает число затронутых строк.
func (r *TaskRepository) UpdateStatus(ctx context.Context, ownerID, taskID string, status entities.Status) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.UpdateStatus"))
	log.Debug(ctx, "updating task status", zap.String("taskID", taskID), zap.String("status", status.String()))

	if !isUUID(ownerID) || !isUUID(taskID) {
		return 0, nil
	}

	result, err := r.pool.Exec(ctx,
		`UPDATE tasks SET status = $1, updated_at = NOW() WHERE id = $2 AND owner_id = $3`,
		string(status), taskID, ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to update task status", zap.Error(err))
		return 0, fmt.Errorf("failed to update task status: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "task not found or not owned by user")
	}
	return result.RowsAffected(), nil
}

// Delete удаляет задачу и возвращает число затронутых строк.
func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.Delete"))
	log.Debug(ctx, "deleting task", zap.String("taskID", taskID))

	if !isUUID(ownerID) || !isUUID(taskID) {
		return 0, nil
	}

	result, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND owner_id = $2`,
		taskID, ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete task", zap.Error(err))
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "task not found or not owned by user")
	}
	return result.RowsAffected(), nil
}

func scanTask(row pgx.Row) (*entities.Task, error) {
	var (
		task   entities.Task
		status string
	)
	if err := row.Scan(&task.ID, &task.Title, &task.Description, &status, &task.OwnerID, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}
	task.Status = entities.Status(status)
	return &task, nil
}

// isUUID принимает только канонический вид xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
func isUUID(id string) bool {
	return len(id) == 36 && uuid.Validate(id) == nil
}
