package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"ruddit-go/internal/auth"
	"ruddit-go/internal/model"
	"ruddit-go/internal/retry"

	"github.com/BurntSushi/toml"
)

const DefaultUserAgent = "ruddit-go/0.1"

// Config represents the main configuration for ruddit.
type Config struct {
	InstallID  string           `toml:"install_id" validate:"required"`
	BaseDir    string           `toml:"base_dir" validate:"required"`
	LogDir     string           `toml:"log_dir"`
	Reddit     RedditConfig     `toml:"reddit"`
	Intent     IntentConfig     `toml:"intent"`
	Query      QueryConfig      `toml:"query"`
	Retry      RetryConfig      `toml:"retry"`
	Database   DatabaseConfig   `toml:"database"`
	Vaults     []VaultConfig    `toml:"vaults" validate:"dive"`
	Encryption EncryptionConfig `toml:"encryption"`
	Watches    []WatchConfig    `toml:"watch" validate:"unique=Name,dive"`
}

// RedditConfig holds API credentials, client tuning and the token write-back fields.
// Blank credentials mean "not configured".
type RedditConfig struct {
	ClientID          string `toml:"client_id"`
	ClientSecret      string `toml:"client_secret"`
	Username          string `toml:"username"`
	Password          string `toml:"password"`
	UserAgent         string `toml:"user_agent"`
	RedirectURL       string `toml:"redirect_url" validate:"omitempty,url"`
	RequestTimeout    int    `toml:"request_timeout" validate:"gte=0"` // seconds
	RequestsPerMinute int    `toml:"requests_per_minute" validate:"gte=0"`

	AccessToken        string `toml:"access_token,omitempty"`
	TokenExpiresAt     int64  `toml:"token_expires_at,omitempty"` // unix seconds
	UserAccessToken    string `toml:"user_access_token,omitempty"`
	UserTokenExpiresAt int64  `toml:"user_token_expires_at,omitempty"`
	RefreshToken       string `toml:"refresh_token,omitempty"`
}

// IntentConfig lists the lower-case patterns for each intent tier.
type IntentConfig struct {
	High   []string `toml:"high"`
	Medium []string `toml:"medium"`
}

type QueryConfig struct {
	Facets          []string `toml:"facets" validate:"min=1,dive,required"`
	MaxPages        int      `toml:"max_pages" validate:"gte=1,lte=20"`
	PageSize        int      `toml:"page_size" validate:"gte=1,lte=100"`
	CommentSort     string   `toml:"comment_sort" validate:"oneof=confidence top new controversial old random qa live best"`
	CommentLimit    int      `toml:"comment_limit" validate:"gte=1,lte=500"`
	MaxCommentDepth int      `toml:"max_comment_depth" validate:"gte=1"`
	Concurrency     int      `toml:"concurrency" validate:"gte=1,lte=16"`
}

type RetryConfig struct {
	MaxAttempts int `toml:"max_attempts" validate:"gte=1,lte=10"`
	BackoffMS   int `toml:"backoff_ms" validate:"gte=0"`
}

// EncryptionConfig holds paths to the age key pair used for snapshot encryption.
type EncryptionConfig struct {
	Type           string `toml:"type" validate:"omitempty,oneof=age test"` // empty uploads snapshots unencrypted
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// VaultConfig represents configuration for a snapshot vault backend.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type VaultConfig struct {
	Type string `toml:"type" validate:"oneof=memory s3 filesystem"`
	Name string `toml:"name" validate:"required"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket   string `toml:"s3_bucket,omitempty" validate:"required_if=Type s3"`
	S3Prefix   string `toml:"s3_prefix,omitempty"`
	S3Region   string `toml:"s3_region,omitempty"`
	S3Endpoint string `toml:"s3_endpoint,omitempty" validate:"omitempty,url"`
	// Static keys override the default AWS credential chain when both are set.
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty" validate:"required_with=S3SecretAccessKey"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty" validate:"required_with=S3AccessKeyID"`

	// FileSystem-specific fields (only used when Type == "filesystem")
	FSVaultRoot string `toml:"fs_vault_root,omitempty" validate:"required_if=Type filesystem"`
}

// DatabaseConfig represents configuration for the local store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type     string `toml:"type" validate:"oneof=sqlite memory"`
	DataDir  string `toml:"data_dir,omitempty" validate:"required_if=Type sqlite"`
	FileName string `toml:"file_name,omitempty"`
}

// WatchConfig is a saved query run on a cron schedule.
type WatchConfig struct {
	Name          string   `toml:"name" validate:"required"`
	Query         string   `toml:"query" validate:"required"`
	Schedule      string   `toml:"schedule" validate:"required,cron"`
	Facets        []string `toml:"facets,omitempty"`
	MaxPages      int      `toml:"max_pages,omitempty" validate:"gte=0,lte=20"`
	MinIntent     string   `toml:"min_intent,omitempty" validate:"omitempty,oneof=High Medium Low"`
	FetchComments bool     `toml:"fetch_comments"`
}

// NewConfig creates a Config with every section at its default.
func NewConfig(installID, baseDir string) *Config {
	rules := model.DefaultIntentRules()
	return &Config{
		InstallID: installID,
		BaseDir:   baseDir,
		LogDir:    filepath.Join(baseDir, "log"),
		Reddit: RedditConfig{
			UserAgent:         DefaultUserAgent,
			RedirectURL:       "http://localhost:8765/callback",
			RequestTimeout:    30,
			RequestsPerMinute: 60,
		},
		Intent: IntentConfig{High: rules.High, Medium: rules.Medium},
		Query:  defaultQuery(),
		Retry:  RetryConfig{MaxAttempts: 3, BackoffMS: 500},
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Encryption: EncryptionConfig{
			PublicKeyPath:  filepath.Join(baseDir, "keys", "ruddit.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "ruddit.key"),
		},
	}
}

func defaultQuery() QueryConfig {
	return QueryConfig{
		Facets:          []string{"hot", "new", "top"},
		MaxPages:        1,
		PageSize:        100,
		CommentSort:     "best",
		CommentLimit:    500,
		MaxCommentDepth: 64,
		Concurrency:     4,
	}
}

// fillDefaults sets zero-valued tuning fields so hand-edited files may omit sections.
func (c *Config) fillDefaults() {
	d := defaultQuery()
	if len(c.Query.Facets) == 0 {
		c.Query.Facets = d.Facets
	}
	if c.Query.MaxPages == 0 {
		c.Query.MaxPages = d.MaxPages
	}
	if c.Query.PageSize == 0 {
		c.Query.PageSize = d.PageSize
	}
	if c.Query.CommentSort == "" {
		c.Query.CommentSort = d.CommentSort
	}
	if c.Query.CommentLimit == 0 {
		c.Query.CommentLimit = d.CommentLimit
	}
	if c.Query.MaxCommentDepth == 0 {
		c.Query.MaxCommentDepth = d.MaxCommentDepth
	}
	if c.Query.Concurrency == 0 {
		c.Query.Concurrency = d.Concurrency
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Reddit.UserAgent == "" {
		c.Reddit.UserAgent = DefaultUserAgent
	}
	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}
	if len(c.Intent.High) == 0 && len(c.Intent.Medium) == 0 {
		rules := model.DefaultIntentRules()
		c.Intent = IntentConfig{High: rules.High, Medium: rules.Medium}
	}
}

// ClientCredentials returns the application credentials, or nil when either is blank.
func (c *Config) ClientCredentials() *auth.ClientCredentials {
	if c.Reddit.ClientID == "" || c.Reddit.ClientSecret == "" {
		return nil
	}
	return &auth.ClientCredentials{ID: c.Reddit.ClientID, Secret: c.Reddit.ClientSecret}
}

// UserCredentials returns the account credentials, or nil when either is blank.
func (c *Config) UserCredentials() *auth.UserCredentials {
	if c.Reddit.Username == "" || c.Reddit.Password == "" {
		return nil
	}
	return &auth.UserCredentials{Username: c.Reddit.Username, Password: c.Reddit.Password}
}

func (c *Config) IntentRules() model.IntentRules {
	return model.IntentRules{High: c.Intent.High, Medium: c.Intent.Medium}
}

func (c *Config) RetryPolicy() retry.Policy {
	p := retry.Default()
	p.MaxAttempts = c.Retry.MaxAttempts
	p.Backoff = time.Duration(c.Retry.BackoffMS) * time.Millisecond
	return p
}

// RequestTimeout is the uniform per-request timeout for upstream calls.
func (c *Config) RequestTimeout() time.Duration {
	if c.Reddit.RequestTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Reddit.RequestTimeout) * time.Second
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg, err := m.decode(r)
	if err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (m *Manager) decode(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	cfg, err := readRaw(path)
	if err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

// readRaw decodes the file without filling defaults.
func readRaw(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path atomically: a temp file in the same directory is renamed over it.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ruddit-config-*")
	if err != nil {
		return fmt.Errorf("failed to create temp config file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	m := &Manager{}
	if err := m.Write(tmp, cfg); err != nil {
		tmp.Close()
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting config permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing config file: %w", err)
	}
	return nil
}

// Update re-reads the file at path, applies fn and saves the result. Values that
// only exist in memory, such as secrets taken from the environment or filled-in
// defaults, are never written.
func Update(path string, fn func(*Config)) error {
	onDisk, err := readRaw(path)
	if err != nil {
		return err
	}
	fn(onDisk)
	return Save(path, onDisk)
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := Save(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
