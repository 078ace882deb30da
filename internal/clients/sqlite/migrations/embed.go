package migrations

import "embed"

// FS contains embedded SQLite migrations for note storage.
//
//go:embed *.sql
var FS embed.FS
