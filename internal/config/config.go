// Package config loads and saves the paisa configuration file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Session store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Environment overrides.
const (
	EnvAPIURL       = "PAISA_API_URL"
	EnvSessionStore = "PAISA_SESSION_STORE"
	EnvRedisURL     = "PAISA_REDIS_URL"
	EnvLogLevel     = "PAISA_LOG_LEVEL"
)

// Config holds all paisa configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	Session    SessionConfig    `toml:"session"`
	Client     ClientConfig     `toml:"client"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// APIConfig points at the backend.
type APIConfig struct {
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// SessionConfig selects where the login token is kept.
type SessionConfig struct {
	Store    string `toml:"store"`
	DBPath   string `toml:"db_path,omitempty"`
	RedisURL string `toml:"redis_url,omitempty"`
}

// ClientConfig holds controller behaviour switches.
type ClientConfig struct {
	LenientAmounts bool `toml:"lenient_amounts"`
	RecentLimit    int  `toml:"recent_limit"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:    "http://localhost:8080/api",
			TimeoutSec: 10,
		},
		Session: SessionConfig{
			Store: StoreSQLite,
		},
		Client: ClientConfig{
			RecentLimit: 5,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "paisa")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "paisa")
}

// ConfigPath returns the full path to the default config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG data directory holding the session database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "paisa")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "paisa")
}

// SessionDBPath returns the configured token database, or the default one.
func (c Config) SessionDBPath() string {
	if c.Session.DBPath != "" {
		return c.Session.DBPath
	}
	return filepath.Join(DataDir(), "session.db")
}

// Load reads the default config file. See LoadFrom.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at path, returning defaults if it doesn't exist.
// A .env file in the working directory and PAISA_* variables are applied on top.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user-chosen config path
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	_ = godotenv.Load()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvSessionStore); v != "" {
		c.Session.Store = strings.ToLower(v)
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Session.RedisURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-chosen config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid api.base_url %q: must be an absolute URL", c.API.BaseURL))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("invalid api.base_url scheme %q: must be http or https", u.Scheme))
	}

	if c.API.TimeoutSec <= 0 {
		problems = append(problems, fmt.Sprintf("invalid api.timeout_sec %d: must be positive", c.API.TimeoutSec))
	}

	switch c.Session.Store {
	case StoreSQLite:
	case StoreRedis:
		if c.Session.RedisURL == "" {
			problems = append(problems, "session.redis_url is required when session.store is redis")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid session.store %q: must be %s or %s", c.Session.Store, StoreSQLite, StoreRedis))
	}

	if c.Client.RecentLimit < 1 {
		problems = append(problems, fmt.Sprintf("invalid client.recent_limit %d: must be at least 1", c.Client.RecentLimit))
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log.level %q", c.Log.Level))
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed:\n  - " + strings.Join(problems, "\n  - "))
	}
	return nil
}
