package testutil

import (
	"testing"

	"ruddit-go/internal/database"
	"ruddit-go/internal/ruddit"
)

// NewTestDatabase returns an in-memory store built from the embedded schema.
// It is closed when the test completes.
func NewTestDatabase(t *testing.T) ruddit.Database {
	t.Helper()

	sqlDB, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if _, err := sqlDB.Exec(database.Schema); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	db := database.NewSQLiteDatabaseFromDB(sqlDB)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
