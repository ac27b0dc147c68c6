// Package config loads the agent configuration from YAML and the
// environment. Every setting has a default; a missing config file is
// not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StorageConfig points the agent at its on-disk root. The config/ and
// memory/ subtrees live underneath it.
type StorageConfig struct {
	Root string `yaml:"root" mapstructure:"root"`
}

type SearchConfig struct {
	Provider       string `yaml:"provider" mapstructure:"provider"`
	MaxResults     int    `yaml:"max_results" mapstructure:"max_results"`
	FetchSummaries bool   `yaml:"fetch_summaries" mapstructure:"fetch_summaries"`
}

type LogConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Development bool   `yaml:"development" mapstructure:"development"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{Root: defaultStorageRoot()},
		Search: SearchConfig{
			Provider:   "mock",
			MaxResults: 3,
		},
		Log: LogConfig{Level: "info"},
	}
}

func defaultStorageRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".axon"
	}
	return filepath.Join(home, ".axon")
}

// Path returns the location of the config file itself.
func Path() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "axon", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "axon", "config.yaml")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Search paths
	v.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "axon"))
	}
	home, _ := os.UserHomeDir()
	v.AddConfigPath(filepath.Join(home, ".config", "axon"))

	// Environment variables
	v.SetEnvPrefix("AXON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Registered defaults make the env bindings visible to Unmarshal.
	v.SetDefault("storage.root", cfg.Storage.Root)
	v.SetDefault("search.provider", cfg.Search.Provider)
	v.SetDefault("search.max_results", cfg.Search.MaxResults)
	v.SetDefault("search.fetch_summaries", cfg.Search.FetchSummaries)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.development", cfg.Log.Development)

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error produced
			return nil, err
		}
		// Config file not found; ignore and use defaults
	}

	// Unmarshal
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Manual expansion for keys in config file
	cfg.Storage.Root = expandEnv(cfg.Storage.Root)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteDefault writes the default configuration to path, creating
// parent directories. Refuses to clobber an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("config: marshal defaults: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Storage.Root == "" {
		return fmt.Errorf("config: storage.root is required")
	}
	validProviders := map[string]bool{"mock": true, "duckduckgo": true}
	if !validProviders[c.Search.Provider] {
		return fmt.Errorf("config: search.provider %q is invalid (must be mock or duckduckgo)", c.Search.Provider)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("config: log.level %q is invalid (must be debug, info, warn, or error)", c.Log.Level)
	}
	if c.Search.MaxResults < 1 {
		c.Search.MaxResults = 3
	}
	return nil
}
