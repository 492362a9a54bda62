package vault

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"ruddit-go/internal/ruddit"
)

// MemoryVault keeps snapshots in memory. Useful for tests and dry runs.
// It is safe for concurrent use.
type MemoryVault struct {
	name      string
	snapshots map[string][]byte // "installID/name" -> bytes
	versions  map[string]int64
	mu        sync.RWMutex
}

var _ ruddit.Vault = (*MemoryVault)(nil)

// NewMemoryVault creates an empty in-memory vault with the given name.
func NewMemoryVault(name string) *MemoryVault {
	return &MemoryVault{
		name:      name,
		snapshots: make(map[string][]byte),
		versions:  make(map[string]int64),
	}
}

func (m *MemoryVault) Name() string { return m.name }

// PutSnapshot replaces any snapshot stored under the same key.
func (m *MemoryVault) PutSnapshot(ctx context.Context, installID, name string, r io.Reader, size int64, version int64) error {
	key, err := snapshotKey(installID, name)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[key] = data
	m.versions[key] = version
	return nil
}

func (m *MemoryVault) GetSnapshot(ctx context.Context, installID, name string, w io.Writer) error {
	key, err := snapshotKey(installID, name)
	if err != nil {
		return err
	}

	m.mu.RLock()
	data, ok := m.snapshots[key]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s: %w", key, ruddit.ErrSnapshotNotFound)
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

func (m *MemoryVault) GetSnapshotVersion(ctx context.Context, installID, name string) (int64, error) {
	key, err := snapshotKey(installID, name)
	if err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.versions[key], nil
}

// ValidateSetup always succeeds.
func (m *MemoryVault) ValidateSetup(ctx context.Context) error {
	return nil
}
