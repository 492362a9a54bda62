package encryption

import (
	"fmt"

	"ruddit-go/internal/config"
	"ruddit-go/internal/ruddit"
)

// NewEncryptorFromConfig returns nil, nil when encryption is disabled (empty type).
// Snapshots are then uploaded as plain SQLite files.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (ruddit.Encryptor, error) {
	switch cfg.Type {
	case "":
		return nil, nil
	case "age":
		return NewAgeEncryptor(cfg), nil
	case "test":
		return NewTestEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}
