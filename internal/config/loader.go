package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	RemoteDir      *string
	RemoteFilename *string
	DebounceWindow *time.Duration
	LegacyDir      *string
	SessionFile    *string
	Timeout        *time.Duration
	Verbose        *bool
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.RemoteDir != nil {
		config.Remote.Dir = *overrides.RemoteDir
	}
	if overrides.RemoteFilename != nil {
		config.Remote.Filename = *overrides.RemoteFilename
	}
	if overrides.DebounceWindow != nil {
		config.Sync.DebounceWindow = *overrides.DebounceWindow
	}
	if overrides.LegacyDir != nil {
		config.Legacy.Dir = *overrides.LegacyDir
	}
	if overrides.SessionFile != nil {
		config.Identity.SessionFile = *overrides.SessionFile
	}
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
