package redis_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/pkg/db/redis"
	"taskmanager/pkg/logger"
)

type sourceStub struct {
	host    string
	port    int
	timeout time.Duration
}

func (s sourceStub) GetHost() string           { return s.host }
func (s sourceStub) GetPort() int              { return s.port }
func (s sourceStub) GetPassword() string       { return "" }
func (s sourceStub) GetDB() int                { return 0 }
func (s sourceStub) GetPoolSize() int          { return 0 }
func (s sourceStub) GetTimeout() time.Duration { return s.timeout }

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "error"))

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := redis.NewClient(context.Background(), redis.NewConfig(sourceStub{host: mr.Host(), port: port}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	return client, mr
}

func TestNewConfig(t *testing.T) {
	cfg := redis.NewConfig(sourceStub{host: "cache", port: 6380})

	assert.Equal(t, "cache:6380", cfg.Addr())
	assert.Equal(t, redis.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, redis.DefaultPoolSize, cfg.PoolSize)
}

func TestClientGet(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	_, err := client.Get(ctx, "absent")
	require.ErrorIs(t, err, redis.ErrCacheMiss)

	require.NoError(t, mr.Set("k", "v"))
	val, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestClientGenerations(t *testing.T) {
	ctx := context.Background()

	t.Run("запись без сброса", func(t *testing.T) {
		client, mr := newTestClient(t)

		gen, err := client.Generation(ctx, "k")
		require.NoError(t, err)
		assert.Empty(t, gen)

		stored, err := client.SetIfGeneration(ctx, "k", gen, "v", time.Minute)
		require.NoError(t, err)
		assert.True(t, stored)

		val, err := client.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", val)
		assert.Equal(t, time.Minute, mr.TTL("k"))

		mr.FastForward(2 * time.Minute)
		_, err = client.Get(ctx, "k")
		require.ErrorIs(t, err, redis.ErrCacheMiss)
	})

	t.Run("без TTL", func(t *testing.T) {
		client, mr := newTestClient(t)

		stored, err := client.SetIfGeneration(ctx, "k", "", "v", 0)
		require.NoError(t, err)
		assert.True(t, stored)
		assert.Zero(t, mr.TTL("k"))
	})

	t.Run("сброс между чтением и записью", func(t *testing.T) {
		client, mr := newTestClient(t)
		require.NoError(t, mr.Set("k", "old"))

		gen, err := client.Generation(ctx, "k")
		require.NoError(t, err)

		require.NoError(t, client.Invalidate(ctx, "k", time.Hour))
		assert.False(t, mr.Exists("k"))
		assert.Equal(t, time.Hour, mr.TTL("k"+redis.GenerationSuffix))

		stored, err := client.SetIfGeneration(ctx, "k", gen, "stale", time.Minute)
		require.NoError(t, err)
		assert.False(t, stored)
		assert.False(t, mr.Exists("k"))

		fresh, err := client.Generation(ctx, "k")
		require.NoError(t, err)
		assert.NotEqual(t, gen, fresh)

		stored, err = client.SetIfGeneration(ctx, "k", fresh, "new", time.Minute)
		require.NoError(t, err)
		assert.True(t, stored)
	})

	t.Run("поколения не повторяются", func(t *testing.T) {
		client, _ := newTestClient(t)

		require.NoError(t, client.Invalidate(ctx, "k", time.Hour))
		first, err := client.Generation(ctx, "k")
		require.NoError(t, err)

		require.NoError(t, client.Invalidate(ctx, "k", time.Hour))
		second, err := client.Generation(ctx, "k")
		require.NoError(t, err)

		assert.NotEmpty(t, first)
		assert.NotEqual(t, first, second)
	})
}

func TestNewClientUnreachable(t *testing.T) {
	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "error"))

	cfg := redis.DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1
	cfg.Timeout = 100 * time.Millisecond

	client, err := redis.NewClient(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, client)
}
