package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// Theme is the color theme to use (mocha, macchiato, frappe, latte)
	Theme string `yaml:"theme"`

	// ProjectsDir overrides the default ~/.claude/projects location
	ProjectsDir string `yaml:"projects_dir"`

	// ExtraRoots lists additional directories to scan for session files
	ExtraRoots []string `yaml:"extra_roots"`

	// ShowAgentSessions includes agent-spawned sessions in the listing
	ShowAgentSessions bool `yaml:"show_agent_sessions"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Theme: "mocha",
	}
}

// Load reads the config from a YAML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDefaultPath attempts to load config from standard locations
func LoadFromDefaultPath() (*Config, error) {
	// Check in order: current dir, ~/.config/ccsessions/, XDG_CONFIG_HOME
	paths := []string{
		"config.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "ccsessions", "config.yaml"),
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "ccsessions", "config.yaml"))
	}

	for _, path := range paths {
		cleanPath := filepath.Clean(path)
		if _, err := os.Stat(cleanPath); err == nil {
			return Load(cleanPath)
		}
	}

	return DefaultConfig(), nil
}

// global config instance
var globalConfig *Config

// Global returns the global config instance, loading it if necessary
func Global() *Config {
	if globalConfig == nil {
		cfg, err := LoadFromDefaultPath()
		if err != nil {
			cfg = DefaultConfig()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal sets the global config instance (useful for testing)
func SetGlobal(cfg *Config) {
	globalConfig = cfg
}
