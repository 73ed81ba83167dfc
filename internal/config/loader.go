package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a configuration from the given YAML file path,
// then fills in defaults for anything the file leaves unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault searches standard locations and loads the first config
// found: ./covgate.yaml, ./.covgate.yaml, ~/.covgate/config.yaml. Every
// setting has a usable default, so a missing file is not an error; the
// built-in defaults are returned instead.
func LoadDefault() (*Config, error) {
	candidates := []string{"covgate.yaml", ".covgate.yaml"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".covgate", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return Default(), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Project.Dir == "" {
		cfg.Project.Dir = "."
	}
	if cfg.Project.SourceRoot == "" {
		cfg.Project.SourceRoot = filepath.Join("src", "main", "java")
	}
	if cfg.Project.TestRoot == "" {
		cfg.Project.TestRoot = filepath.Join("src", "test", "java")
	}
	if cfg.Git.Remote == "" {
		cfg.Git.Remote = "origin"
	}
	if cfg.Git.Base == "" {
		cfg.Git.Base = "main"
	}
	if cfg.Maven.Command == "" {
		cfg.Maven.Command = "mvn"
	}
	if len(cfg.Maven.Goals) == 0 {
		cfg.Maven.Goals = []string{"test"}
	}
}
