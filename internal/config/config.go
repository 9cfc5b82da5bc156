// Package config handles the XDG configuration directory, file paths and
// the optional config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional settings file inside Dir.
	ConfigFile = "config.toml"

	// DefaultBaseURL is the to-do service the client talks to.
	DefaultBaseURL = "https://todoapp-backend-ycgo.onrender.com"

	// BaseURLEnv overrides base_url from the config file.
	BaseURLEnv = "TODO_API_URL"
)

// Storage backends for durable local state.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the root of the REST API.
	BaseURL string

	// Storage selects the local storage backend ("file" or "sqlite").
	Storage string

	// Timeout bounds each API call. Zero leaves the transport default.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	BaseURL        string `toml:"base_url"`
	Storage        string `toml:"storage"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// New creates a Config for the default or specified config directory and
// applies config.toml (if present) and the environment on top of defaults.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:     dir,
		BaseURL: DefaultBaseURL,
		Storage: StorageFile,
	}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	if env := strings.TrimSpace(os.Getenv(BaseURLEnv)); env != "" {
		cfg.BaseURL = env
	}
	return cfg, nil
}

func (c *Config) load() error {
	var fc fileConfig
	_, err := toml.DecodeFile(c.FilePath(), &fc)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	switch fc.Storage {
	case "":
	case StorageFile, StorageSQLite:
		c.Storage = fc.Storage
	default:
		return fmt.Errorf("invalid %s: unknown storage %q", ConfigFile, fc.Storage)
	}
	if fc.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid %s: timeout_seconds must not be negative", ConfigFile)
	}
	c.Timeout = time.Duration(fc.TimeoutSeconds) * time.Second
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// StoragePath returns where the selected storage backend keeps its data:
// a directory for "file", a database file for "sqlite".
func (c *Config) StoragePath() string {
	if c.Storage == StorageSQLite {
		return filepath.Join(c.Dir, "storage.sqlite")
	}
	return filepath.Join(c.Dir, "storage")
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
