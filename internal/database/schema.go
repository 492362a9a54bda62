package database

import _ "embed"

// Schema is the full SQL schema generated from the migration files.
// Tests apply it directly to in-memory databases.
//
//go:embed sqlc/schema.sql
var Schema string
