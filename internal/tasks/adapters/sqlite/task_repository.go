// Package sqlite provides SQLite implementations of task repositories.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskmanager/internal/tasks/domain/entities"
	"taskmanager/internal/tasks/ports/repositories"
	"taskmanager/pkg/logger"
)

const taskColumns = `id, title, description, status, owner_id, created_at, updated_at`

// TaskRepository реализует интерфейс repositories.TaskRepository поверх SQLite.
type TaskRepository struct {
	db                    *sql.DB
	caseInsensitiveSearch bool
	now                   func() time.Time
}

// NewTaskRepository создает новый репозиторий задач.
func NewTaskRepository(db *sql.DB, caseInsensitiveSearch bool) repositories.TaskRepository {
	return &TaskRepository{db: db, caseInsensitiveSearch: caseInsensitiveSearch, now: time.Now}
}

// Create сохраняет новую задачу в состоянии OPEN.
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.Create"))
	log.Debug(ctx, "creating new task", zap.String("ownerID", task.OwnerID))

	now := r.now().UTC().Truncate(time.Millisecond)
	created := &entities.Task{
		ID:          uuid.NewString(),
		Title:       task.Title,
		Description: task.Description,
		Status:      entities.StatusOpen,
		OwnerID:     task.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		created.ID, created.Title, created.Description, string(created.Status), created.OwnerID,
		now.UnixMilli(), now.UnixMilli(),
	)
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

		query, args := r.listQuery(ownerID, filter)
		rows, err := r.db.QueryContext(ctx, query, args...)
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
	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = ?1`)
	args := []any{ownerID}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		fmt.Fprintf(&sb, ` AND status = ?%d`, len(args))
	}

	if filter.Search != "" {
		args = append(args, filter.Search)
		n := len(args)
		if r.caseInsensitiveSearch {
			fmt.Fprintf(&sb, ` AND (instr(lower(title), lower(?%d)) > 0 OR instr(lower(description), lower(?%d)) > 0)`, n, n)
		} else {
			fmt.Fprintf(&sb, ` AND (instr(title, ?%d) > 0 OR instr(description, ?%d) > 0)`, n, n)
		}
	}

	sb.WriteString(` ORDER BY created_at ASC, rowid ASC`)
	return sb.String(), args
}

// GetByID получает задачу по ID и ID владельца.
func (r *TaskRepository) GetByID(ctx context.Context, ownerID, taskID string) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.GetByID"))
	log.Debug(ctx, "getting task", zap.String("taskID", taskID), zap.String("ownerID", ownerID))

	task, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND owner_id = ?`,
		taskID, ownerID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ? AND owner_id = ?`,
		string(status), r.now().UTC().UnixMilli(), taskID, ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to update task status", zap.Error(err))
		return 0, fmt.Errorf("failed to update task status: %w", err)
	}

	return rowsAffected(ctx, log, result)
}

// Delete удаляет задачу и возвращает число затронутых строк.
func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.Delete"))
	log.Debug(ctx, "deleting task", zap.String("taskID", taskID))

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND owner_id = ?`,
		taskID, ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete task", zap.Error(err))
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}

	return rowsAffected(ctx, log, result)
}

func rowsAffected(ctx context.Context, log *logger.Logger, result sql.Result) (int64, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		log.Error(ctx, "failed to read affected rows", zap.Error(err))
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		log.Debug(ctx, "task not found or not owned by user")
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*entities.Task, error) {
	var (
		task                 entities.Task
		status               string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&task.ID, &task.Title, &task.Description, &status, &task.OwnerID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	task.Status = entities.Status(status)
	task.CreatedAt = time.UnixMilli(createdAt).UTC()
	task.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &task, nil
}
