package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCommand is the serial command used when none is configured.
const DefaultCommand = "uniqueksetkey"

// Config holds defaults for a generator run, read from an optional YAML file.
// Command line flags take precedence over every field.
type Config struct {
	// Command is the serial command prefixed to every key assignment.
	Command string `yaml:"command"`
	// Filter keeps only layout sections with this tag.
	Filter string `yaml:"filter"`
	// Reverse mirrors the columns of every layer.
	Reverse bool `yaml:"reverse"`
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path. Empty means stderr.
	Path string `yaml:"path"`
}

// Load reads and decodes the YAML file at path. Unknown fields are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyDefaults sets default values for fields left empty.
func ApplyDefaults(cfg *Config) {
	if cfg.Command == "" {
		cfg.Command = DefaultCommand
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
}

// Validate checks the configuration for errors.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Command) == "" {
		return fmt.Errorf("command cannot be empty")
	}
	if strings.ContainsAny(cfg.Command, " \t\r\n") {
		return fmt.Errorf("command %q must not contain whitespace", cfg.Command)
	}

	if cfg.Logging.Level != "" {
		switch strings.ToLower(cfg.Logging.Level) {
		case "debug", "info", "warn", "error":
			// ok
		default:
			return fmt.Errorf("invalid logging level: %s (allowed: debug, info, warn, error)", cfg.Logging.Level)
		}
	}

	return nil
}
