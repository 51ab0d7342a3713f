// Package sqlite содержит общий код открытия встроенной базы SQLite и применения миграций.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"taskmanager/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogOpening           = "opening SQLite database"
	LogOpened            = "SQLite database ready"
	LogClosing           = "closing SQLite database"
	LogMigrationsApplied = "database migrations successfully applied"
)

// Константы для сообщений об ошибках.
const (
	ErrCreateDir               = "failed to create database directory"
	ErrOpenDatabase            = "failed to open sqlite database"
	ErrPingDatabase            = "failed to ping sqlite database"
	ErrForeignKeys             = "sqlite foreign keys are disabled"
	ErrOpenMigrationSource     = "failed to open migration source"
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
)

// ErrEmptyPath возвращается, если путь к файлу базы не задан.
var ErrEmptyPath = errors.New("sqlite path is required")

// Database представляет соединение с SQLite.
type Database struct {
	db *sql.DB
}

// DSN собирает строку подключения modernc.org/sqlite с нужными pragma.
func DSN(path string, busyTimeoutMS int) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		filepath.Clean(path), busyTimeoutMS)
}

// Open открывает файл базы, создавая каталог при необходимости.
func Open(ctx context.Context, path string, busyTimeoutMS int) (*Database, error) {
	log := logger.Log(ctx).With(zap.String("path", path))

	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}

	log.Info(ctx, LogOpening)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error(ctx, ErrCreateDir, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrCreateDir, err)
		}
	}

	db, err := sql.Open("sqlite", DSN(path, busyTimeoutMS))
	if err != nil {
		log.Error(ctx, ErrOpenDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrOpenDatabase, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	var enabled int
	if err := db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil || enabled != 1 {
		_ = db.Close()
		log.Error(ctx, ErrForeignKeys, zap.Error(err))
		return nil, errors.New(ErrForeignKeys)
	}

	log.Info(ctx, LogOpened)
	return &Database{db: db}, nil
}

// DB возвращает пул соединений database/sql.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Close закрывает базу. Сигнатура подходит для shutdown-хуков.
func (d *Database) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	return d.db.Close()
}

// Migrate применяет миграции из каталога dir файловой системы fsys.
func (d *Database) Migrate(ctx context.Context, fsys fs.FS, dir string) error {
	log := logger.Log(ctx).With(zap.String("migrations_dir", dir))

	src, err := iofs.New(fsys, dir)
	if err != nil {
		log.Error(ctx, ErrOpenMigrationSource, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrOpenMigrationSource, err)
	}

	driver, err := migratesqlite.WithInstance(d.db, &migratesqlite.Config{})
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied)
	return nil
}
