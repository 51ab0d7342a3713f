// Package db открывает хранилище, выбранное конфигурацией, и собирает репозитории.
package db

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"taskmanager/internal/config"
	identitypg "taskmanager/internal/identity/adapters/postgres"
	identitysqlite "taskmanager/internal/identity/adapters/sqlite"
	identityrepo "taskmanager/internal/identity/ports/repositories"
	taskpg "taskmanager/internal/tasks/adapters/postgres"
	tasksqlite "taskmanager/internal/tasks/adapters/sqlite"
	taskrepo "taskmanager/internal/tasks/ports/repositories"
	"taskmanager/migrations"
	"taskmanager/pkg/db/postgres"
	"taskmanager/pkg/db/sqlite"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/retry"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing task database"
	LogDBInitialized     = "task database initialized successfully"
	LogMigrationStarting = "starting database migrations"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply task database migrations"
	ErrDBConnection = "failed to connect to task database"
)

// DB представляет открытое хранилище одного из поддерживаемых драйверов.
type DB struct {
	driver   string
	cfg      *config.Config
	postgres *postgres.Database
	sqlite   *sqlite.Database
}

// New открывает хранилище, указанное в cfg.Storage.Driver.
func New(ctx context.Context, cfg *config.Config) (*DB, error) {
	log := logger.Log(ctx).With(zap.String("driver", cfg.Storage.Driver))
	log.Info(ctx, LogDBInitializing)

	db := &DB{driver: cfg.Storage.Driver, cfg: cfg}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		policy := cfg.Storage.GetRetryPolicy()
		policy.Retryable = func(err error) bool { return !errors.Is(err, postgres.ErrInvalidPoolSize) }

		var database *postgres.Database
		err := retry.Do(ctx, "postgres connect", policy, func(ctx context.Context) error {
			var err error
			database, err = postgres.New(ctx, cfg.Postgres.GetDSN(), postgres.PoolSize{Min: cfg.Postgres.MinConn, Max: cfg.Postgres.MaxConn})
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
		}
		db.postgres = database
	case config.DriverSQLite:
		database, err := sqlite.Open(ctx, cfg.SQLite.Path, cfg.SQLite.BusyTimeout)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
		}
		db.sqlite = database
	default:
		return nil, fmt.Errorf("%s: %w: %q", ErrDBConnection, config.ErrUnknownStorageDriver, cfg.Storage.Driver)
	}

	log.Info(ctx, LogDBInitialized)
	return db, nil
}

// Migrate применяет встроенные миграции схемы.
func (db *DB) Migrate(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogMigrationStarting, zap.String("driver", db.driver))

	var err error
	switch db.driver {
	case config.DriverPostgres:
		err = postgres.MigrateFS(ctx, db.cfg.Postgres.GetConnectionURL(), migrations.FS, migrations.PostgresDir)
	case config.DriverSQLite:
		err = db.sqlite.Migrate(ctx, migrations.FS, migrations.SQLiteDir)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}
	return nil
}

// IdentityRepository возвращает репозиторий учетных записей.
func (db *DB) IdentityRepository() identityrepo.IdentityRepository {
	if db.postgres != nil {
		return identitypg.NewIdentityRepository(db.postgres.Pool())
	}
	return identitysqlite.NewIdentityRepository(db.sqlite.DB())
}

// TaskRepository возвращает репозиторий задач.
func (db *DB) TaskRepository() taskrepo.TaskRepository {
	caseInsensitive := db.cfg.Search.CaseInsensitive
	if db.postgres != nil {
		return taskpg.NewTaskRepository(db.postgres.Pool(), caseInsensitive)
	}
	return tasksqlite.NewTaskRepository(db.sqlite.DB(), caseInsensitive)
}

// Driver возвращает имя используемого драйвера.
func (db *DB) Driver() string {
	return db.driver
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) error {
	if db.postgres != nil {
		return db.postgres.Close(ctx)
	}
	return db.sqlite.Close(ctx)
}
