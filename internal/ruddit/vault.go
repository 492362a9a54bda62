package ruddit

import (
	"context"
	"errors"
	"io"
)

// ErrSnapshotNotFound is returned by GetSnapshot when nothing is stored under the name.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Vault stores versioned database snapshots off the local machine.
type Vault interface {
	// Name identifies the vault in logs and CLI output.
	Name() string

	// PutSnapshot stores a named snapshot for an install. size is the number of
	// bytes that will be read from r; version is recorded alongside it.
	PutSnapshot(ctx context.Context, installID, name string, r io.Reader, size int64, version int64) error

	// GetSnapshot writes a stored snapshot to w.
	GetSnapshot(ctx context.Context, installID, name string, w io.Writer) error

	// GetSnapshotVersion returns 0 when nothing has been stored.
	GetSnapshotVersion(ctx context.Context, installID, name string) (int64, error)

	// ValidateSetup verifies that the vault is reachable and writable.
	ValidateSetup(ctx context.Context) error
}
