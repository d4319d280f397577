package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// ClientConfig configures the careerctl CLI.
type ClientConfig struct {
	ServerURL    string        `json:"serverUrl" yaml:"serverUrl"`
	StateDir     string        `json:"stateDir" yaml:"stateDir"`
	PollInterval time.Duration `json:"pollInterval" yaml:"pollInterval"`
}

// NewClientConfig loads the CLI configuration from the given yaml file.
// A missing file is fine; defaults apply.
func NewClientConfig(path string) (*ClientConfig, error) {
	cfg := &ClientConfig{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			koanfInstance := koanf.New(".")
			if err := koanfInstance.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "read client config %s", path)
			}
			if err := koanfInstance.Unmarshal("", cfg); err != nil {
				return nil, errors.Wrapf(err, "unmarshal client config %s", path)
			}
		}
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:8080"
	}
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolve home dir")
		}
		cfg.StateDir = filepath.Join(home, ".careerconnect")
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 5 * time.Second
	}

	return cfg, nil
}
