package migrations

import "embed"

// FS contains embedded SQLite migrations for pass report storage.
//
//go:embed *.sql
var FS embed.FS
