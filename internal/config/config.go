package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDatabase = "db.json"
	DefaultTable    = "todos"
)

type Config struct {
	Database     string `yaml:"database,omitempty"`
	DefaultTable string `yaml:"default_table,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
}

// Keys lists the settings accepted by Set.
var Keys = []string{"database", "default_table", "log_level"}

func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func Save(dataDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dataDir, "config.yaml")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// DatabasePath resolves the database file. A relative database setting is
// taken relative to dataDir.
func (c *Config) DatabasePath(dataDir string) string {
	name := c.Database
	if name == "" {
		name = DefaultDatabase
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dataDir, name)
}

// Table returns the configured default table.
func (c *Config) Table() string {
	if c.DefaultTable == "" {
		return DefaultTable
	}
	return c.DefaultTable
}

// Set assigns one setting by its YAML key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "database":
		c.Database = value
	case "default_table":
		c.DefaultTable = value
	case "log_level":
		switch value {
		case "", "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", value)
		}
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown config key %q (valid keys: database, default_table, log_level)", key)
	}
	return nil
}
