// Package cache содержит кэширующий декоратор хранилища задач на основе Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"time"

	"go.uber.org/zap"

	"taskmanager/internal/tasks/domain/entities"
	"taskmanager/internal/tasks/ports/cache"
	"taskmanager/internal/tasks/ports/repositories"
	"taskmanager/pkg/db/redis"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/retry"
)

// Константы для логирования.
const (
	KeyPrefix = "taskmanager:task:"

	LogCacheHit  = "task cache hit"
	LogCacheMiss = "task cache miss"

	ErrorFailedToGet    = "failed to read task from cache"
	ErrorFailedToSet    = "failed to write task to cache"
	ErrorFailedToDelete = "failed to invalidate cached task"
	ErrorFailedToDecode = "failed to decode cached task"
	LogStaleWriteSkip   = "task changed while loading, not cached"
)

// ErrInvalidation возвращается мутацией, если после изменения задачи не удалось сбросить ее запись в кэше.
var ErrInvalidation = errors.New("task cache invalidation failed")

// invalidationPolicy задает повторы сброса записи после изменения задачи.
var invalidationPolicy = retry.Policy{
	Attempts:       3,
	InitialBackoff: 20 * time.Millisecond,
	MaxBackoff:     100 * time.Millisecond,
	Factor:         2,
}

// CachedTaskRepository кэширует GetByID и делегирует остальные операции хранилищу.
// Ошибки чтения и записи кэша не прерывают операцию: запрос уходит в хранилище.
// Ошибка сброса после изменения возвращается как ErrInvalidation.
type CachedTaskRepository struct {
	next  repositories.TaskRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedTaskRepository оборачивает хранилище задач кэшем.
func NewCachedTaskRepository(next repositories.TaskRepository, c cache.Cache, ttl time.Duration) repositories.TaskRepository {
	return &CachedTaskRepository{next: next, cache: c, ttl: ttl}
}

// Key возвращает ключ кэша задачи владельца.
func Key(ownerID, taskID string) string {
	return KeyPrefix + ownerID + ":" + taskID
}

// Create сохраняет задачу и кладет ее в кэш.
func (r *CachedTaskRepository) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	created, err := r.next.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	if generation, ok := r.generation(ctx, created.OwnerID, created.ID); ok {
		r.store(ctx, created, generation)
	}
	return created, nil
}

// List не кэшируется.
func (r *CachedTaskRepository) List(ctx context.Context, ownerID string, filter entities.TaskFilter) iter.Seq2[*entities.Task, error] {
	return r.next.List(ctx, ownerID, filter)
}

// GetByID читает задачу из кэша, при промахе обращается к хранилищу.
func (r *CachedTaskRepository) GetByID(ctx context.Context, ownerID, taskID string) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "CachedTaskRepository.GetByID"), zap.String("taskID", taskID))
	key := Key(ownerID, taskID)

	raw, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		var task entities.Task
		if decodeErr := json.Unmarshal([]byte(raw), &task); decodeErr != nil {
			log.Warn(ctx, ErrorFailedToDecode, zap.Error(decodeErr))
			break
		}
		if task.OwnerID == ownerID {
			log.Debug(ctx, LogCacheHit)
			return &task, nil
		}
	case errors.Is(err, redis.ErrCacheMiss):
		log.Debug(ctx, LogCacheMiss)
	default:
		log.Warn(ctx, ErrorFailedToGet, zap.Error(err))
	}

	generation, cacheable := r.generation(ctx, ownerID, taskID)

	task, err := r.next.GetByID(ctx, ownerID, taskID)
	if err != nil || task == nil {
		return task, err
	}
	if cacheable {
		r.store(ctx, task, generation)
	}
	return task, nil
}

// UpdateStatus изменяет состояние задачи и сбрасывает запись кэша.
func (r *CachedTaskRepository) UpdateStatus(ctx context.Context, ownerID, taskID string, status entities.Status) (int64, error) {
	affected, err := r.next.UpdateStatus(ctx, ownerID, taskID, status)
	return affected, r.invalidate(ctx, ownerID, taskID, affected, err)
}

// Delete удаляет задачу и сбрасывает запись кэша.
func (r *CachedTaskRepository) Delete(ctx context.Context, ownerID, taskID string) (int64, error) {
	affected, err := r.next.Delete(ctx, ownerID, taskID)
	return affected, r.invalidate(ctx, ownerID, taskID, affected, err)
}

// generation читает поколение ключа до обращения к хранилищу.
// false означает, что поколение неизвестно и результат кэшировать нельзя.
func (r *CachedTaskRepository) generation(ctx context.Context, ownerID, taskID string) (string, bool) {
	generation, err := r.cache.Generation(ctx, Key(ownerID, taskID))
	if err != nil {
		logger.Log(ctx).Warn(ctx, ErrorFailedToGet,
			zap.String("method", "CachedTaskRepository.generation"), zap.String("taskID", taskID), zap.Error(err))
		return "", false
	}
	return generation, true
}

func (r *CachedTaskRepository) store(ctx context.Context, task *entities.Task, generation string) {
	log := logger.Log(ctx).With(zap.String("method", "CachedTaskRepository.store"), zap.String("taskID", task.ID))

	payload, err := json.Marshal(task)
	if err != nil {
		log.Warn(ctx, ErrorFailedToSet, zap.Error(fmt.Errorf("encode task: %w", err)))
		return
	}

	stored, err := r.cache.SetIfGeneration(ctx, Key(task.OwnerID, task.ID), generation, payload, r.ttl)
	switch {
	case err != nil:
		log.Warn(ctx, ErrorFailedToSet, zap.Error(err))
	case !stored:
		log.Debug(ctx, LogStaleWriteSkip)
	}
}

// invalidate сбрасывает запись после мутации. Мутация без затронутых строк кэш не меняет,
// а при ошибке хранилища состояние неизвестно, поэтому запись сбрасывается.
func (r *CachedTaskRepository) invalidate(ctx context.Context, ownerID, taskID string, affected int64, storeErr error) error {
	if storeErr == nil && affected == 0 {
		return nil
	}

	key := Key(ownerID, taskID)
	err := retry.Do(ctx, "task cache invalidate", invalidationPolicy, func(ctx context.Context) error {
		return r.cache.Invalidate(ctx, key, r.generationTTL())
	})
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToDelete,
			zap.String("method", "CachedTaskRepository.invalidate"), zap.String("taskID", taskID), zap.Error(err))
		return errors.Join(storeErr, fmt.Errorf("%w: %w", ErrInvalidation, err))
	}
	return storeErr
}

// generationTTL переживает любую запись, которая могла быть прочитана до сброса.
func (r *CachedTaskRepository) generationTTL() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	return 2 * r.ttl
}
