package config

// Environment variables that override secrets from the config file.
const (
	EnvClientID     = "RUDDIT_CLIENT_ID"
	EnvClientSecret = "RUDDIT_CLIENT_SECRET"
	EnvUsername     = "RUDDIT_USERNAME"
	EnvPassword     = "RUDDIT_PASSWORD"
)

// ApplyEnv overrides credentials with non-empty values from getenv.
// It returns the names of the variables that were applied.
func ApplyEnv(cfg *Config, getenv func(string) string) []string {
	var applied []string
	set := func(name string, dst *string) {
		if v := getenv(name); v != "" {
			*dst = v
			applied = append(applied, name)
		}
	}
	set(EnvClientID, &cfg.Reddit.ClientID)
	set(EnvClientSecret, &cfg.Reddit.ClientSecret)
	set(EnvUsername, &cfg.Reddit.Username)
	set(EnvPassword, &cfg.Reddit.Password)
	return applied
}
