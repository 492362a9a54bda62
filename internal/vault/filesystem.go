package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ruddit-go/internal/ruddit"
)

// FileSystemVault stores snapshots under a local or mounted directory:
//
//	<root>/
//	  snapshots/
//	    <installID>/
//	      <name>           (snapshot bytes)
//	      <name>.version   (decimal version)
type FileSystemVault struct {
	name string
	root string
	dir  string
}

var _ ruddit.Vault = (*FileSystemVault)(nil)

// NewFileSystemVault creates the directory layout under root if needed.
func NewFileSystemVault(name, root string) (*FileSystemVault, error) {
	dir := filepath.Join(root, "snapshots")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	return &FileSystemVault{name: name, root: root, dir: dir}, nil
}

func (v *FileSystemVault) Name() string { return v.name }

// PutSnapshot writes the snapshot and then its version file, each atomically.
// A reader never sees a version newer than the bytes next to it.
func (v *FileSystemVault) PutSnapshot(ctx context.Context, installID, name string, r io.Reader, size int64, version int64) error {
	dest, err := v.path(installID, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0700); err != nil {
		return fmt.Errorf("creating install directory: %w", err)
	}
	if err := writeFile(dest, r, size); err != nil {
		return err
	}
	data := strconv.FormatInt(version, 10)
	return writeFile(dest+".version", strings.NewReader(data), int64(len(data)))
}

func (v *FileSystemVault) GetSnapshot(ctx context.Context, installID, name string, w io.Writer) error {
	src, err := v.path(installID, name)
	if err != nil {
		return err
	}
	f, err := os.Open(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s/%s: %w", installID, name, ruddit.ErrSnapshotNotFound)
		}
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	return nil
}

// GetSnapshotVersion returns 0 if no version file exists.
func (v *FileSystemVault) GetSnapshotVersion(ctx context.Context, installID, name string) (int64, error) {
	src, err := v.path(installID, name)
	if err != nil {
		return 0, err
	}
	data, err := os.ReadFile(src + ".version")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading version file: %w", err)
	}
	version, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing version: %w", err)
	}
	return version, nil
}

// ValidateSetup checks that the snapshot directory exists and accepts writes.
func (v *FileSystemVault) ValidateSetup(ctx context.Context) error {
	info, err := os.Stat(v.dir)
	if err != nil {
		return fmt.Errorf("vault directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault path is not a directory: %s", v.dir)
	}
	check, err := os.CreateTemp(v.dir, ".write-check-*")
	if err != nil {
		return fmt.Errorf("vault directory not writable: %w", err)
	}
	check.Close()
	return os.Remove(check.Name())
}

func (v *FileSystemVault) path(installID, name string) (string, error) {
	key, err := snapshotKey(installID, name)
	if err != nil {
		return "", err
	}
	return filepath.Join(v.dir, filepath.FromSlash(key)), nil
}

// writeFile copies r to destPath through a temp file in the same directory
// and renames it into place once the expected number of bytes has been written.
func writeFile(destPath string, r io.Reader, expectedSize int64) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing data: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}
