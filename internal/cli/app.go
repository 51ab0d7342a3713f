package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"taskmanager/internal/config"
	"taskmanager/internal/db"
	hashers "taskmanager/internal/identity/adapters/services"
	identityapp "taskmanager/internal/identity/app"
	identityapi "taskmanager/internal/identity/ports/api"
	taskcache "taskmanager/internal/tasks/adapters/cache"
	taskapp "taskmanager/internal/tasks/app"
	"taskmanager/pkg/db/redis"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/retry"
	"taskmanager/pkg/shutdown"
	"taskmanager/pkg/tracing"
)

// Константы для сообщений логгера.
const (
	LogAppStarting = "starting taskmanager command"
	LogAppStopped  = "taskmanager resources released"
	LogCacheOn     = "task cache enabled"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger  = "failed to initialize logger"
	ErrInitTracing = "failed to initialize tracing"
	ErrInitStorage = "failed to initialize storage"
	ErrInitCache   = "failed to initialize task cache"
	ErrInitHasher  = "failed to initialize password hasher"
	ErrRelease     = "failed to release resources"
)

// application связывает хранилище, кэш и хэшер со сценариями для одного вызова CLI.
type application struct {
	cfg      *config.Config
	store    *db.DB
	identity identityapi.IdentityUseCase
	tasks    *taskapp.TaskUseCase
	hooks    []shutdown.Hook
}

func bootstrap(ctx context.Context, configPath string) (context.Context, *application, error) {
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return ctx, nil, err
	}

	log, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		return ctx, nil, fmt.Errorf("%s: %w", ErrInitLogger, err)
	}
	logger.SetGlobalLogger(log)
	ctx = logger.NewContext(ctx, log)
	ctx = logger.NewRequestIDContext(ctx, "")
	log.Debug(ctx, LogAppStarting, zap.String("driver", cfg.Storage.Driver))

	a := &application{cfg: cfg}
	a.hooks = append(a.hooks, func(context.Context) error {
		_ = log.Sync()
		return nil
	})

	shutdownTracing, err := tracing.Setup(ctx, config.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	if err != nil {
		return ctx, nil, a.abort(fmt.Errorf("%s: %w", ErrInitTracing, err))
	}
	a.hooks = append(a.hooks, shutdown.Hook(shutdownTracing))

	store, err := db.New(ctx, cfg)
	if err != nil {
		return ctx, nil, a.abort(fmt.Errorf("%s: %w", ErrInitStorage, err))
	}
	a.store = store
	a.hooks = append(a.hooks, store.Close)

	taskRepo := store.TaskRepository()
	if cfg.Redis.Enabled {
		var client *redis.Client
		err := retry.Do(ctx, "redis connect", cfg.Storage.GetRetryPolicy(), func(ctx context.Context) error {
			var err error
			client, err = redis.NewClient(ctx, redis.NewConfig(cfg.Redis))
			return err
		})
		if err != nil {
			return ctx, nil, a.abort(fmt.Errorf("%s: %w", ErrInitCache, err))
		}
		a.hooks = append(a.hooks, client.Close)
		taskRepo = taskcache.NewCachedTaskRepository(taskRepo, client, cfg.Redis.TaskCacheTTL)
		log.Debug(ctx, LogCacheOn, zap.Duration("ttl", cfg.Redis.TaskCacheTTL))
	}

	factory, err := hashers.NewServiceFactory(cfg.Hasher)
	if err != nil {
		return ctx, nil, a.abort(fmt.Errorf("%s: %w", ErrInitHasher, err))
	}

	a.identity = identityapp.NewIdentityUseCase(store.IdentityRepository(), factory.PasswordHasher())
	a.tasks = taskapp.NewTaskUseCase(taskRepo)

	return ctx, a, nil
}

func (a *application) abort(cause error) error {
	if err := a.close(); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (a *application) close() error {
	if err := shutdown.Run(a.cfg.Shutdown.GetTimeout(), a.hooks...); err != nil {
		return fmt.Errorf("%s: %w", ErrRelease, err)
	}
	return nil
}

// withApp собирает приложение, выполняет fn и освобождает ресурсы.
func withApp(ctx context.Context, configPath string, fn func(context.Context, *application) error) (err error) {
	ctx, a, err := bootstrap(ctx, configPath)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := a.close()
		if closeErr != nil {
			logger.Log(ctx).Warn(ctx, ErrRelease, zap.Error(closeErr))
			if err == nil {
				err = closeErr
			}
			return
		}
		logger.Log(ctx).Debug(ctx, LogAppStopped)
	}()

	return fn(ctx, a)
}
