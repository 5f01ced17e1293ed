// Package migrations embeds the schema migration files so the binary can
// migrate itself on startup without a checkout of the repository.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
