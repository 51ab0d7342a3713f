// Package migrations содержит SQL-миграции схемы для поддерживаемых хранилищ.
package migrations

import "embed"

// Каталоги миграций внутри FS.
const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)

// FS содержит встроенные файлы миграций.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
