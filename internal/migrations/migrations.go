// Package migrations embeds the goose SQL migrations for every SQL backend.
package migrations

import "embed"

// Directories inside FS, one per goose dialect.
const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
