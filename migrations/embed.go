// Package migrations embeds the SQLite schema applied at startup.
package migrations

import "embed"

// FS contains the embedded schema files.
//
//go:embed *.sql
var FS embed.FS

// InitialSchema is the file name of the base schema.
const InitialSchema = "001_initial_schema.up.sql"
