// Package redis предоставляет общую реализацию клиента Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskmanager/pkg/logger"
)

// Константы для сообщений logger и ошибок.
const (
	LogConnecting   = "connecting to Redis"
	LogConnected    = "successfully connected to Redis"
	LogClosing      = "closing Redis client"
	ErrConnectRedis = "failed to connect to Redis"
)

// ErrCacheMiss возвращается Get, если ключ отсутствует.
var ErrCacheMiss = errors.New("cache miss")

// Client обертывает клиент Redis и предоставляет базовые операции.
type Client struct {
	client *redis.Client
}

// NewClient создает новый клиент Redis и проверяет соединение.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	log := logger.Log(ctx).With(zap.String("addr", cfg.Addr()))
	log.Info(ctx, LogConnecting)

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		log.Error(ctx, ErrConnectRedis, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrConnectRedis, err)
	}

	log.Info(ctx, LogConnected)
	return &Client{client: rdb}, nil
}

// Get получает значение по ключу. Отсутствующий ключ дает ErrCacheMiss.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

// GenerationSuffix добавляется к ключу записи, чтобы получить ключ ее поколения.
const GenerationSuffix = ":gen"

// setIfGeneration записывает значение, только если поколение ключа не изменилось с момента чтения.
// KEYS[1] - запись, KEYS[2] - поколение; ARGV: ожидаемое поколение, значение, TTL в миллисекундах.
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if current == false then current = '' end
if current ~= ARGV[1] then return 0 end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
  redis.call('SET', KEYS[1], ARGV[2], 'PX', ttl)
else
  redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// Generation возвращает текущее поколение ключа. Пустая строка означает, что ключ ни разу не сбрасывался.
func (c *Client) Generation(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key+GenerationSuffix).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

// SetIfGeneration атомарно записывает значение, если поколение ключа все еще равно generation.
// Возвращает false, если запись отклонена.
func (c *Client) SetIfGeneration(ctx context.Context, key, generation string, value any, ttl time.Duration) (bool, error) {
	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{key, key + GenerationSuffix}, generation, value, ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// Invalidate удаляет запись и в той же транзакции присваивает ключу новое поколение,
// так что записи, прочитанные до сброса, больше не попадут в кэш.
func (c *Client) Invalidate(ctx context.Context, key string, generationTTL time.Duration) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key+GenerationSuffix, uuid.NewString(), generationTTL)
		pipe.Del(ctx, key)
		return nil
	})
	return err
}

// Close закрывает соединение с Redis. Сигнатура подходит для shutdown-хуков.
func (c *Client) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	return c.client.Close()
}
