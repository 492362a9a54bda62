package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ruddit-go/internal/auth"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := NewConfig("install-abc", "/home/user/.local/share/ruddit")
	original.Reddit.ClientID = "cid"
	original.Reddit.ClientSecret = "secret"
	original.Vaults = []VaultConfig{
		{Type: "filesystem", Name: "local", FSVaultRoot: "/backup/vault"},
	}
	original.Watches = []WatchConfig{
		{Name: "hiring", Query: "r/golang", Schedule: "*/15 * * * *", Facets: []string{"new"}, MinIntent: "High", FetchComments: true},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.InstallID != original.InstallID {
		t.Errorf("InstallID = %q, want %q", got.InstallID, original.InstallID)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Reddit.ClientID != "cid" {
		t.Errorf("Reddit.ClientID = %q, want %q", got.Reddit.ClientID, "cid")
	}
	if len(got.Vaults) != 1 || got.Vaults[0].FSVaultRoot != "/backup/vault" {
		t.Errorf("Vaults = %+v, want one filesystem vault", got.Vaults)
	}
	if len(got.Watches) != 1 {
		t.Fatalf("len(Watches) = %d, want 1", len(got.Watches))
	}
	if w := got.Watches[0]; w.Schedule != "*/15 * * * *" || !w.FetchComments || w.MinIntent != "High" {
		t.Errorf("Watch = %+v, want round-tripped values", w)
	}
	if strings.Join(got.Query.Facets, ",") != "hot,new,top" {
		t.Errorf("Query.Facets = %v, want [hot new top]", got.Query.Facets)
	}
	if len(got.Intent.High) != len(original.Intent.High) {
		t.Errorf("len(Intent.High) = %d, want %d", len(got.Intent.High), len(original.Intent.High))
	}
}

func TestManager_Read_FillsDefaults(t *testing.T) {
	m := &Manager{}
	cfg, err := m.Read(strings.NewReader(`
install_id = "x"
base_dir = "/tmp/ruddit"

[reddit]
client_id = "abc"
`))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if cfg.Query.PageSize != 100 {
		t.Errorf("Query.PageSize = %d, want 100", cfg.Query.PageSize)
	}
	if cfg.Query.CommentSort != "best" {
		t.Errorf("Query.CommentSort = %q, want %q", cfg.Query.CommentSort, "best")
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
	if len(cfg.Intent.High) == 0 {
		t.Error("Intent.High is empty, want default patterns")
	}
	if cfg.Reddit.UserAgent != DefaultUserAgent {
		t.Errorf("Reddit.UserAgent = %q, want %q", cfg.Reddit.UserAgent, DefaultUserAgent)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("install-1", "/data/ruddit")

	if cfg.InstallID != "install-1" {
		t.Errorf("InstallID = %q, want %q", cfg.InstallID, "install-1")
	}
	if cfg.LogDir != "/data/ruddit/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/ruddit/log")
	}
	if cfg.Database.DataDir != "/data/ruddit/db" {
		t.Errorf("Database.DataDir = %q, want %q", cfg.Database.DataDir, "/data/ruddit/db")
	}
	if cfg.Encryption.PublicKeyPath != "/data/ruddit/keys/ruddit.pub" {
		t.Errorf("Encryption.PublicKeyPath = %q, want %q", cfg.Encryption.PublicKeyPath, "/data/ruddit/keys/ruddit.pub")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(NewConfig()) error = %v", err)
	}
}

func TestConfig_Credentials(t *testing.T) {
	cfg := NewConfig("i", "/tmp")

	if cfg.ClientCredentials() != nil {
		t.Error("ClientCredentials() with blank values should be nil")
	}
	if cfg.UserCredentials() != nil {
		t.Error("UserCredentials() with blank values should be nil")
	}

	cfg.Reddit.ClientID = "id"
	if cfg.ClientCredentials() != nil {
		t.Error("ClientCredentials() with blank secret should be nil")
	}

	cfg.Reddit.ClientSecret = "secret"
	cfg.Reddit.Username = "alice"
	cfg.Reddit.Password = "pw"

	cc := cfg.ClientCredentials()
	if cc == nil || cc.ID != "id" || cc.Secret != "secret" {
		t.Errorf("ClientCredentials() = %+v, want id/secret", cc)
	}
	uc := cfg.UserCredentials()
	if uc == nil || uc.Username != "alice" {
		t.Errorf("UserCredentials() = %+v, want alice", uc)
	}
}

func TestConfig_RetryPolicy(t *testing.T) {
	cfg := NewConfig("i", "/tmp")
	cfg.Retry = RetryConfig{MaxAttempts: 5, BackoffMS: 250}

	p := cfg.RetryPolicy()
	if p.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", p.MaxAttempts)
	}
	if p.Backoff != 250*time.Millisecond {
		t.Errorf("Backoff = %v, want 250ms", p.Backoff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"unknown database type", func(c *Config) { c.Database.Type = "postgres" }, "database.type"},
		{"sqlite needs data dir", func(c *Config) { c.Database.DataDir = "" }, "database.data_dir"},
		{"page size too large", func(c *Config) { c.Query.PageSize = 500 }, "query.page_size"},
		{"no facets", func(c *Config) { c.Query.Facets = nil }, "query.facets"},
		{"too many attempts", func(c *Config) { c.Retry.MaxAttempts = 50 }, "retry.max_attempts"},
		{"bad vault type", func(c *Config) {
			c.Vaults = []VaultConfig{{Type: "ftp", Name: "v"}}
		}, "vaults[0].type"},
		{"s3 vault needs bucket", func(c *Config) {
			c.Vaults = []VaultConfig{{Type: "s3", Name: "v"}}
		}, "vaults[0].s3_bucket"},
		{"bad cron schedule", func(c *Config) {
			c.Watches = []WatchConfig{{Name: "w", Query: "go", Schedule: "every tuesday"}}
		}, "watch[0].schedule"},
		{"bad intent threshold", func(c *Config) {
			c.Watches = []WatchConfig{{Name: "w", Query: "go", Schedule: "@hourly", MinIntent: "urgent"}}
		}, "watch[0].min_intent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("install", "/data")
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := NewConfig("i", "/tmp")
	cfg.Reddit.ClientID = "from-file"
	cfg.Reddit.Username = "file-user"

	env := map[string]string{
		EnvClientID:     "from-env",
		EnvClientSecret: "env-secret",
	}
	applied := ApplyEnv(cfg, func(k string) string { return env[k] })

	if len(applied) != 2 {
		t.Errorf("applied = %v, want 2 variables", applied)
	}
	if cfg.Reddit.ClientID != "from-env" {
		t.Errorf("ClientID = %q, want %q", cfg.Reddit.ClientID, "from-env")
	}
	if cfg.Reddit.Username != "file-user" {
		t.Errorf("Username = %q, want file value kept", cfg.Reddit.Username)
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "ruddit.toml")
		cfg := NewConfig("h1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("config file not created: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("mode = %v, want 0600", info.Mode().Perm())
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "ruddit.toml")
		cfg := NewConfig("h1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		err := Init(path, cfg)
		if err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "ruddit.toml")
		cfg := NewConfig("read-test", dir)
		cfg.Database = DatabaseConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.InstallID != "read-test" {
			t.Errorf("InstallID = %q, want %q", got.InstallID, "read-test")
		}
		if got.Database.Type != "memory" {
			t.Errorf("Database.Type = %q, want %q", got.Database.Type, "memory")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/ruddit.toml")
		if err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}

func TestTokenStore(t *testing.T) {
	t.Run("in memory only", func(t *testing.T) {
		cfg := NewConfig("i", "/tmp")
		store := NewTokenStore("", cfg)

		expiry := time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC)
		if err := store.Store(auth.Token{AccessToken: "tok", Expiry: expiry}); err != nil {
			t.Fatalf("Store() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got.AccessToken != "tok" || !got.Expiry.Equal(expiry) {
			t.Errorf("Load() = %+v, want tok expiring %v", got, expiry)
		}
		if cfg.Reddit.TokenExpiresAt != expiry.Unix() {
			t.Errorf("TokenExpiresAt = %d, want %d", cfg.Reddit.TokenExpiresAt, expiry.Unix())
		}
	})

	t.Run("empty cache loads zero token", func(t *testing.T) {
		store := NewTokenStore("", NewConfig("i", "/tmp"))
		got, _ := store.Load()
		if got.AccessToken != "" || !got.Expiry.IsZero() {
			t.Errorf("Load() = %+v, want zero token", got)
		}
	})

	t.Run("writes back tokens but not env secrets", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "ruddit.toml")
		if err := Init(path, NewConfig("i", dir)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		cfg, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		ApplyEnv(cfg, func(k string) string {
			if k == EnvPassword {
				return "env-only-password"
			}
			return ""
		})

		store := NewTokenStore(path, cfg)
		expiry := time.Unix(1705318200, 0)
		if err := store.StoreUser(auth.Token{AccessToken: "user-tok", Expiry: expiry, RefreshToken: "refresh"}); err != nil {
			t.Fatalf("StoreUser() error = %v", err)
		}

		onDisk, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if onDisk.Reddit.UserAccessToken != "user-tok" {
			t.Errorf("UserAccessToken = %q, want %q", onDisk.Reddit.UserAccessToken, "user-tok")
		}
		if onDisk.Reddit.RefreshToken != "refresh" {
			t.Errorf("RefreshToken = %q, want %q", onDisk.Reddit.RefreshToken, "refresh")
		}
		if onDisk.Reddit.Password != "" {
			t.Errorf("Password = %q, env value must not be written to disk", onDisk.Reddit.Password)
		}

		loaded, _ := store.LoadUser()
		if loaded.RefreshToken != "refresh" || !loaded.Expiry.Equal(expiry) {
			t.Errorf("LoadUser() = %+v, want stored user token", loaded)
		}
	})
}

func TestUpdate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ruddit.toml")
	if err := Init(path, NewConfig("h1", dir)); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	inMemory, err := ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile() error = %v", err)
	}
	inMemory.Reddit.Password = "from-env"

	if err := Update(path, func(c *Config) { c.Encryption.Type = "age" }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile() error = %v", err)
	}
	if got.Encryption.Type != "age" {
		t.Errorf("Encryption.Type = %q, want age", got.Encryption.Type)
	}
	if got.Reddit.Password != "" {
		t.Errorf("Reddit.Password = %q, in-memory values must not be written", got.Reddit.Password)
	}

	if err := Update(filepath.Join(dir, "missing.toml"), func(*Config) {}); err == nil {
		t.Error("Update() on a missing file should return error")
	}
}

func TestUpdateKeepsDefaultsOutOfFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ruddit.toml")
	minimal := "install_id = \"h1\"\nbase_dir = \"" + filepath.ToSlash(dir) + "\"\n\n[reddit]\nclient_id = \"abc\"\n"
	if err := os.WriteFile(path, []byte(minimal), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := Update(path, func(c *Config) { c.Reddit.AccessToken = "tok" }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, def := range []string{"facets", "user_agent = \"" + DefaultUserAgent + "\"", "high ="} {
		if strings.Contains(string(raw), def) {
			t.Errorf("Update() wrote default %q into the file:\n%s", def, raw)
		}
	}

	got, err := ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile() error = %v", err)
	}
	if got.Reddit.AccessToken != "tok" || got.Reddit.ClientID != "abc" {
		t.Errorf("Reddit = %+v, want access token and client id kept", got.Reddit)
	}
	if want := defaultQuery().Facets; strings.Join(got.Query.Facets, ",") != strings.Join(want, ",") {
		t.Errorf("Query.Facets = %v, want defaults %v", got.Query.Facets, want)
	}
}
