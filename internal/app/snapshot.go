package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ruddit-go/internal/config"
	"ruddit-go/internal/database"
	"ruddit-go/internal/encryption"
	"ruddit-go/internal/ruddit"
	"ruddit-go/internal/vault"
)

const snapshotName = "ruddit.db"

// checkpoint finishes op and, when a vault is configured, uploads a snapshot
// of the database with version = op.ID.
func (a *RudditApp) checkpoint(ctx context.Context, op *Operation) error {
	a.snapMu.Lock()
	defer a.snapMu.Unlock()
	if err := a.db.FinishOperation(op.ID, op.Status); err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	if a.vault == nil {
		return nil
	}

	dir, err := os.MkdirTemp("", "ruddit-snapshot-*")
	if err != nil {
		return fmt.Errorf("creating temp dir for snapshot: %w", err)
	}
	defer os.RemoveAll(dir)

	plain := filepath.Join(dir, "plain.db")
	if err := a.db.BackupTo(plain); err != nil {
		return err
	}
	upload := plain
	if a.encryptor != nil {
		if !a.encryptor.IsConfigured() {
			return fmt.Errorf("encryption type %q has no keys: run `ruddit encryption setup`", a.cfg.Encryption.Type)
		}
		upload = filepath.Join(dir, "snapshot.age")
		if err := encryptFile(a.encryptor, plain, upload); err != nil {
			return err
		}
	}
	if err := uploadFile(ctx, a.vault, a.cfg.InstallID, upload, op.ID); err != nil {
		return err
	}
	a.log.Info("snapshot uploaded", "vault", a.vault.Name(), "version", op.ID)
	return nil
}

func encryptFile(enc ruddit.Encryptor, src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating encrypted snapshot: %w", err)
	}
	if err := enc.Encrypt(in, out); err != nil {
		out.Close()
		return fmt.Errorf("encrypting snapshot: %w", err)
	}
	return out.Close()
}

// uploadFile opens the snapshot at path and puts it in v with the given version.
func uploadFile(ctx context.Context, v ruddit.Vault, installID, path string, version int64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening snapshot for upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat snapshot: %w", err)
	}
	if err := v.PutSnapshot(ctx, installID, snapshotName, f, info.Size(), version); err != nil {
		return fmt.Errorf("uploading snapshot to vault %s: %w", v.Name(), err)
	}
	return nil
}

// RestoreOptions controls RestoreDatabase.
type RestoreOptions struct {
	// Passphrase is asked for only when the snapshot is encrypted.
	Passphrase func() (string, error)
	// Force replaces a local database that is newer than the snapshot.
	Force bool
}

// RestoreDatabase downloads the newest snapshot from the first vault and
// replaces the local sqlite database with it. It returns the restored version.
func RestoreDatabase(ctx context.Context, cfg *config.Config, opts RestoreOptions) (int64, error) {
	if len(cfg.Vaults) == 0 {
		return 0, fmt.Errorf("no vaults configured")
	}
	if cfg.Database.Type != "sqlite" {
		return 0, fmt.Errorf("restore needs a sqlite database, have %q", cfg.Database.Type)
	}
	v, err := vault.NewVaultFromConfig(ctx, cfg.Vaults[0])
	if err != nil {
		return 0, fmt.Errorf("creating vault: %w", err)
	}
	version, err := v.GetSnapshotVersion(ctx, cfg.InstallID, snapshotName)
	if err != nil {
		return 0, fmt.Errorf("checking snapshot version: %w", err)
	}
	if version == 0 {
		return 0, fmt.Errorf("vault %s has no snapshot for %s: %w", v.Name(), cfg.InstallID, ruddit.ErrSnapshotNotFound)
	}

	dest := database.FilePath(cfg.Database)
	if !opts.Force {
		local, err := localVersion(dest)
		if err != nil {
			return 0, err
		}
		if local > version {
			return 0, fmt.Errorf("local database (version %d) is newer than the snapshot (version %d): use --force to replace it", local, version)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, fmt.Errorf("creating data directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".restore-*.db")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := download(ctx, cfg, v, tmp, opts.Passphrase); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("writing snapshot: %w", err)
	}

	// Opening migrates an older snapshot forward and proves the file is a database.
	check, err := database.NewSQLiteDatabase(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("snapshot is not a usable database: %w", err)
	}
	if err := check.Close(); err != nil {
		return 0, err
	}

	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(dest + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("removing %s: %w", dest+suffix, err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return 0, fmt.Errorf("replacing database: %w", err)
	}
	return version, nil
}

// download writes the snapshot to w, decrypting it when encryption is configured.
func download(ctx context.Context, cfg *config.Config, v ruddit.Vault, w io.Writer, passphrase func() (string, error)) error {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if enc == nil {
		if err := v.GetSnapshot(ctx, cfg.InstallID, snapshotName, w); err != nil {
			return fmt.Errorf("downloading snapshot: %w", err)
		}
		return nil
	}

	if passphrase == nil {
		return fmt.Errorf("snapshot is encrypted and no passphrase was given")
	}
	pass, err := passphrase()
	if err != nil {
		return fmt.Errorf("reading passphrase: %w", err)
	}
	dc, err := enc.Unlock(pass)
	if err != nil {
		return fmt.Errorf("unlocking private key: %w", err)
	}

	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(v.GetSnapshot(ctx, cfg.InstallID, snapshotName, pw))
	}()
	if err := dc.Decrypt(pr, w); err != nil {
		pr.CloseWithError(err)
		return fmt.Errorf("decrypting snapshot: %w", err)
	}
	return nil
}

// localVersion returns the newest operation id in the database at path, or 0 when it does not exist.
func localVersion(path string) (int64, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	db, err := database.NewSQLiteDatabase(path)
	if err != nil {
		return 0, fmt.Errorf("opening local database: %w", err)
	}
	defer db.Close()
	return db.MaxOperationID()
}

// SetupEncryption generates a key pair protected by passphrase and switches
// the config file at cfgPath to age encryption.
func SetupEncryption(cfg *config.Config, cfgPath, passphrase string) error {
	ec := cfg.Encryption
	ec.Type = "age"
	if ec.PublicKeyPath == "" || ec.PrivateKeyPath == "" {
		keys := filepath.Join(cfg.BaseDir, "keys")
		ec.PublicKeyPath = filepath.Join(keys, "ruddit.pub")
		ec.PrivateKeyPath = filepath.Join(keys, "ruddit.key")
	}
	enc, err := encryption.NewEncryptorFromConfig(ec)
	if err != nil {
		return err
	}
	if err := enc.Setup(passphrase); err != nil {
		return err
	}
	cfg.Encryption = ec
	return config.Update(cfgPath, func(c *config.Config) { c.Encryption = ec })
}
