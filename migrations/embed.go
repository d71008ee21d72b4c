// Package migrations embeds the SQL migration files for all supported
// database backends. Each backend has its own directory because placeholder
// syntax and type affinities differ between SQLite and PostgreSQL.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
