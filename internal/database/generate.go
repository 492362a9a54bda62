package database

// Schema and query code are generated from the migration files:
//
//	go generate ./internal/database
//
// The first step rebuilds sqlc/schema.sql from a freshly migrated in-memory
// database; the second regenerates the sqlc package from sqlc/query.sql.

//go:generate sh -c "cd ../.. && go run internal/database/tools/generate_schema.go"
//go:generate sh -c "cd ../.. && sqlc generate -f internal/database/sqlc/sqlc.yaml"
