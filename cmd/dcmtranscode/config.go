package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the dcmtranscode configuration, loadable from a YAML file and
// overridable by flags.
type Config struct {
	Input struct {
		// Dir is the directory holding the slice files to normalize
		Dir string `yaml:"dir"`
	} `yaml:"input"`

	Output struct {
		// Dir receives the normalized copies; created if missing
		Dir string `yaml:"dir"`
	} `yaml:"output"`

	Logging struct {
		// Verbose enables debug-level logging, including per-file progress
		Verbose bool `yaml:"verbose"`
	} `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no file and no flags
// are given
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads the configuration from a YAML file. A missing file is
// not an error: the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}
