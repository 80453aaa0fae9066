package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the planner application
type Config struct {
	Remote      RemoteConfig
	Legacy      LegacyConfig
	Sync        SyncConfig
	Identity    IdentityConfig
	Application ApplicationConfig
}

// RemoteConfig holds remote document store configuration
type RemoteConfig struct {
	Dir          string        `env:"SCHOLARSYNC_REMOTE_DIR"`
	Filename     string        `env:"SCHOLARSYNC_REMOTE_FILENAME"`
	WriteTimeout time.Duration `env:"SCHOLARSYNC_REMOTE_WRITE_TIMEOUT"`
}

// LegacyConfig holds legacy local snapshot configuration
type LegacyConfig struct {
	Dir string `env:"SCHOLARSYNC_LEGACY_DIR"`
}

// SyncConfig holds sync reconciler configuration
type SyncConfig struct {
	DebounceWindow time.Duration `env:"SCHOLARSYNC_SYNC_DEBOUNCE"`
}

// IdentityConfig holds local identity provider configuration
type IdentityConfig struct {
	SessionFile string `env:"SCHOLARSYNC_IDENTITY_FILE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"SCHOLARSYNC_APP_TIMEOUT"`
	Verbose bool          `env:"SCHOLARSYNC_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDir := filepath.Join(homeDir, ".scholarsync")

	return &Config{
		Remote: RemoteConfig{
			Dir:          defaultDir,
			Filename:     "planner.db",
			WriteTimeout: 5 * time.Second,
		},
		Legacy: LegacyConfig{
			Dir: defaultDir,
		},
		Sync: SyncConfig{
			DebounceWindow: time.Second,
		},
		Identity: IdentityConfig{
			SessionFile: filepath.Join(defaultDir, "session.json"),
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
	}
}

// GetDocumentStorePath returns the full path to the remote document database file
func (c *Config) GetDocumentStorePath() string {
	return filepath.Join(c.Remote.Dir, c.Remote.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Remote store configuration
	if dir := os.Getenv("SCHOLARSYNC_REMOTE_DIR"); dir != "" {
		c.Remote.Dir = dir
	}
	if filename := os.Getenv("SCHOLARSYNC_REMOTE_FILENAME"); filename != "" {
		c.Remote.Filename = filename
	}
	if timeout := os.Getenv("SCHOLARSYNC_REMOTE_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Remote.WriteTimeout = d
		}
	}

	// Legacy snapshot configuration
	if dir := os.Getenv("SCHOLARSYNC_LEGACY_DIR"); dir != "" {
		c.Legacy.Dir = dir
	}

	// Sync configuration
	if window := os.Getenv("SCHOLARSYNC_SYNC_DEBOUNCE"); window != "" {
		if d, err := time.ParseDuration(window); err == nil {
			c.Sync.DebounceWindow = d
		}
	}

	// Identity configuration
	if file := os.Getenv("SCHOLARSYNC_IDENTITY_FILE"); file != "" {
		c.Identity.SessionFile = file
	}

	// Application configuration
	if timeout := os.Getenv("SCHOLARSYNC_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("SCHOLARSYNC_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Remote.Dir == "" {
		return &ConfigError{Field: "remote.dir", Message: "remote store directory cannot be empty"}
	}
	if c.Remote.Filename == "" {
		return &ConfigError{Field: "remote.filename", Message: "remote store filename cannot be empty"}
	}
	if c.Remote.WriteTimeout <= 0 {
		return &ConfigError{Field: "remote.write_timeout", Message: "write timeout must be positive"}
	}
	if c.Legacy.Dir == "" {
		return &ConfigError{Field: "legacy.dir", Message: "legacy snapshot directory cannot be empty"}
	}
	if c.Sync.DebounceWindow <= 0 {
		return &ConfigError{Field: "sync.debounce_window", Message: "debounce window must be positive"}
	}
	if c.Identity.SessionFile == "" {
		return &ConfigError{Field: "identity.session_file", Message: "identity session file cannot be empty"}
	}
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
