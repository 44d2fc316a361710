// Package config defines the repository configuration stored as YAML in
// .caf/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"

	"caf/logging"

	"gopkg.in/yaml.v3"
)

const FileName = "config.yaml"

type Objects struct {
	BlockCacheMiB  int `yaml:"blockCacheMiB,omitempty"`
	WriteBufferMiB int `yaml:"writeBufferMiB,omitempty"`
}

type Config struct {
	Author   string  `yaml:"author,omitempty"`   // used when a commit names no author
	Branch   string  `yaml:"branch,omitempty"`   // branch HEAD points at
	LogLevel string  `yaml:"logLevel,omitempty"` // zerolog level name
	Objects  Objects `yaml:"objects,omitempty"`
}

// Default returns a config with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	cfg.sanitize()
	return cfg
}

// WithDefaults returns a copy of c with zero fields set to their defaults.
func (c *Config) WithDefaults() *Config {
	cfg := *c
	cfg.sanitize()
	return &cfg
}

// sanitize fills zero fields with defaults.
func (c *Config) sanitize() {
	if c.Author == "" {
		c.Author = "unknown"
	}
	if c.Branch == "" {
		c.Branch = "main"
	}
	if c.LogLevel == "" {
		c.LogLevel = logging.DefaultLevel
	}
	if c.Objects.BlockCacheMiB == 0 {
		c.Objects.BlockCacheMiB = 8
	}
	if c.Objects.WriteBufferMiB == 0 {
		c.Objects.WriteBufferMiB = 4
	}
}

// Validate checks values that sanitize cannot repair.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Objects.BlockCacheMiB < 0 || c.Objects.WriteBufferMiB < 0 {
		return fmt.Errorf("object store sizes must not be negative")
	}
	return nil
}

// Load reads the config at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	cfg.sanitize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %q: %w", path, err)
	}
	return nil
}
