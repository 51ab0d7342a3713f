// Package cache defines the key-value cache port used by the task store decorator.
package cache

import (
	"context"
	"time"
)

// Cache определяет операции кэша с поколениями ключей.
// Запись с устаревшим поколением отклоняется, поэтому чтение, начатое до сброса ключа,
// не может вернуть в кэш старое значение.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Generation(ctx context.Context, key string) (string, error)
	SetIfGeneration(ctx context.Context, key, generation string, value any, ttl time.Duration) (bool, error)
	Invalidate(ctx context.Context, key string, generationTTL time.Duration) error
}
