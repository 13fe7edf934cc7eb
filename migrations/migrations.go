// Package migrations embeds the SQL migration files applied by goose at
// server startup.
package migrations

import "embed"

//go:embed *.sql
var fs embed.FS

// FS returns the embedded migration filesystem.
func FS() embed.FS {
	return fs
}
