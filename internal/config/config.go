// Package config loads taskware's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Storage StorageConfig `yaml:"storage"`
	Export  ExportConfig  `yaml:"export"`
	Salt    SaltConfig    `yaml:"salt"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
	File    string `yaml:"file,omitempty"`
}

type StorageConfig struct {
	// Path to the SQLite job database.
	Path string `yaml:"path"`

	// BusyTimeout is a Go duration string (e.g. "500ms", "5s").
	BusyTimeout string `yaml:"busy_timeout,omitempty"`
}

type ExportConfig struct {
	// Dir is the default output directory for generated artifacts.
	Dir string `yaml:"dir"`

	// Format is one of "salt", "crontab", "systemd".
	Format string `yaml:"format"`

	// User is the account cron entries are generated for.
	User string `yaml:"user"`
}

// SaltConfig carries the Salt master settings embedded into push tooling
// around the generated SLS files. Generation itself only needs Target and
// the user; the rest rides along for the external push collaborator.
type SaltConfig struct {
	MasterURL  string `yaml:"master_url"`
	EAuth      string `yaml:"eauth"`
	Username   string `yaml:"username,omitempty"`
	VerifyTLS  bool   `yaml:"verify_tls"`
	TargetType string `yaml:"target_type"`
	Target     string `yaml:"target"`
	PushMode   string `yaml:"push_mode"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Logging: LoggingConfig{Level: "info", Console: true},
		Storage: StorageConfig{Path: filepath.Join(home, ".local", "share", "taskware", "jobs.db")},
		Export: ExportConfig{
			Dir:    filepath.Join(home, ".local", "share", "taskware", "export"),
			Format: "crontab",
			User:   os.Getenv("USER"),
		},
		Salt: SaltConfig{
			MasterURL:  "https://localhost:8000",
			EAuth:      "pam",
			VerifyTLS:  true,
			TargetType: "glob",
			Target:     "*",
			PushMode:   "generate",
		},
	}
}

// DefaultPath is the conventional config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "taskware", "config.yaml")
}

// Load reads the config at path, layering it over defaults. A missing file is
// not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Export.Format {
	case "salt", "crontab", "systemd":
	default:
		return fmt.Errorf("export.format: unknown format %q", c.Export.Format)
	}
	if _, err := ParseDurationField("storage.busy_timeout", c.Storage.BusyTimeout); err != nil {
		return err
	}
	return nil
}
