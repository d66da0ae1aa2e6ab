// Package config loads pipeboard's YAML configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thenoetrevino/pipeboard/internal/config/colors"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file locations
const (
	EnvConfigFile = "PIPEBOARD_CONFIG"
	EnvThemeFile  = "PIPEBOARD_THEME_FILE"
)

// Config represents the application configuration
type Config struct {
	Board       BoardConfig        `yaml:"board"`
	Stages      []StageConfig      `yaml:"stages,omitempty"`
	KeyMappings KeyMappings        `yaml:"key_mappings"`
	ColorScheme colors.ColorScheme `yaml:"theme"`

	path string
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Path returns the file the configuration was loaded from (or will be saved to)
func (c *Config) Path() string {
	return c.path
}

// loadThemeFile loads and merges theme from PIPEBOARD_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load loads config from PIPEBOARD_CONFIG or the user's config directory.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		// Return default config if we can't determine config path
		config := Default()
		loadThemeFile(config)
		return config, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from an explicit path. A missing file yields the
// defaults, remembered against that path for Save.
func LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		config := Default()
		config.path = configPath
		loadThemeFile(config)
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configPath, err)
	}
	config.path = configPath

	// Fill in any missing values with defaults
	config.applyDefaults()

	loadThemeFile(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return &config, nil
}

// Save writes the config back to its path
func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		p, err := getConfigPath()
		if err != nil {
			return err
		}
		configPath = p
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return err
	}
	c.path = configPath
	return nil
}

// Validate reports values that cannot be defaulted away
func (c *Config) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Stages))
	for _, s := range c.Stages {
		if s.ID == "" {
			return ErrEmptyStageID
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateStage, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "pipeboard", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "pipeboard", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	c.Board.applyDefaults()
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
	if len(c.Stages) == 0 {
		c.Stages = DefaultStages()
	}
	for i := range c.Stages {
		if c.Stages[i].Title == "" {
			c.Stages[i].Title = c.Stages[i].ID
		}
	}
}
