package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		t.Setenv("RUDDIT_CONFIG_PATH", "/custom/config.toml")
		t.Setenv("RUDDIT_HOME", "/custom/ruddit")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		if defaults["config_path"] != "/custom/config.toml" {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], "/custom/config.toml")
		}
		if defaults["base_dir"] != "/custom/ruddit" {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], "/custom/ruddit")
		}
		if defaults["log_dir"] != "/custom/ruddit/log" {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], "/custom/ruddit/log")
		}
	})

	t.Run("falls back to home dir defaults", func(t *testing.T) {
		t.Setenv("RUDDIT_CONFIG_PATH", "")
		t.Setenv("RUDDIT_HOME", "")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		homeDir, _ := os.UserHomeDir()
		wantConfig := filepath.Join(homeDir, ".config", "ruddit.toml")
		if defaults["config_path"] != wantConfig {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], wantConfig)
		}
		wantBase := filepath.Join(homeDir, ".local", "share", "ruddit")
		if defaults["base_dir"] != wantBase {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], wantBase)
		}
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ruddit.env")
		if err := os.WriteFile(path, []byte("RUDDIT_TEST_ENV_A=from-file\n"), 0600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("RUDDIT_ENV_FILE", path)
		t.Setenv("RUDDIT_TEST_ENV_A", "")
		os.Unsetenv("RUDDIT_TEST_ENV_A")

		if err := LoadEnv(); err != nil {
			t.Fatalf("LoadEnv() error = %v", err)
		}
		if got := os.Getenv("RUDDIT_TEST_ENV_A"); got != "from-file" {
			t.Errorf("RUDDIT_TEST_ENV_A = %q, want %q", got, "from-file")
		}
	})

	t.Run("existing variables win", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ruddit.env")
		if err := os.WriteFile(path, []byte("RUDDIT_TEST_ENV_B=from-file\n"), 0600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("RUDDIT_ENV_FILE", path)
		t.Setenv("RUDDIT_TEST_ENV_B", "from-shell")

		if err := LoadEnv(); err != nil {
			t.Fatalf("LoadEnv() error = %v", err)
		}
		if got := os.Getenv("RUDDIT_TEST_ENV_B"); got != "from-shell" {
			t.Errorf("RUDDIT_TEST_ENV_B = %q, want %q", got, "from-shell")
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		t.Setenv("RUDDIT_ENV_FILE", filepath.Join(t.TempDir(), "nope.env"))
		if err := LoadEnv(); err == nil {
			t.Error("LoadEnv() with a missing RUDDIT_ENV_FILE should return error")
		}
	})
}
