package database

import (
	"fmt"
	"os"
	"path/filepath"

	"ruddit-go/internal/config"
	"ruddit-go/internal/ruddit"
)

// NewDatabaseFromConfig creates a Database implementation based on the database config type.
func NewDatabaseFromConfig(cfg config.DatabaseConfig) (ruddit.Database, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return open(FilePath(cfg))
	case "memory":
		return open(":memory:")
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}

// open keeps a failed open from returning a non-nil interface around a nil pointer.
func open(path string) (ruddit.Database, error) {
	db, err := NewSQLiteDatabase(path)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// FilePath returns where a sqlite database lives for cfg.
func FilePath(cfg config.DatabaseConfig) string {
	name := cfg.FileName
	if name == "" {
		name = "ruddit.db"
	}
	return filepath.Join(cfg.DataDir, name)
}
