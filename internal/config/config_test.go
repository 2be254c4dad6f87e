package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantError string
	}{
		{
			name: "defaults",
			cfg:  Config{Command: DefaultCommand, Logging: LoggingConfig{Level: "warn"}},
		},
		{
			name: "upper case level",
			cfg:  Config{Command: "setkey", Logging: LoggingConfig{Level: "DEBUG"}},
		},
		{
			name:      "empty command",
			cfg:       Config{Command: "  "},
			wantError: "command cannot be empty",
		},
		{
			name:      "command with space",
			cfg:       Config{Command: "set key"},
			wantError: "must not contain whitespace",
		},
		{
			name:      "bad level",
			cfg:       Config{Command: "setkey", Logging: LoggingConfig{Level: "trace"}},
			wantError: "invalid logging level: trace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			if tt.wantError != "" {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantError)
				} else if !strings.Contains(err.Error(), tt.wantError) {
					t.Errorf("Validate() error = %v, want substring %q", err, tt.wantError)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Command != DefaultCommand {
		t.Errorf("Command = %q, want %q", cfg.Command, DefaultCommand)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}

	cfg = &Config{Command: "setkey", Logging: LoggingConfig{Level: "debug"}}
	ApplyDefaults(cfg)
	if cfg.Command != "setkey" || cfg.Logging.Level != "debug" {
		t.Errorf("ApplyDefaults overwrote explicit values: %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "layout.yaml")
	data := "command: setkey\nfilter: left\nreverse: true\nlogging:\n  level: debug\n  path: gen.log\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := Config{Command: "setkey", Filter: "left", Reverse: true, Logging: LoggingConfig{Level: "debug", Path: "gen.log"}}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); err != nil {
		t.Errorf("Load(empty) error: %v", err)
	}

	unknown := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("colums: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(unknown); err == nil {
		t.Error("Load() accepted unknown field")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of missing file returned nil error")
	}
}
