package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds appdock configuration loaded from the YAML config file.
// Every field is optional; unset fields fall back to the defaults from
// DefaultPaths.
type Config struct {
	// AppDir is the directory holding installed AppImages and icons.
	AppDir string `yaml:"app_dir"`

	// ApplicationsDir is the desktop-entry directory.
	ApplicationsDir string `yaml:"applications_dir"`

	// StopTokens are extra filename tokens stripped during name cleaning,
	// on top of the built-in set.
	StopTokens []string `yaml:"stop_tokens"`

	// Debug enables verbose output.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a configuration populated from the default paths.
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return &Config{
		AppDir:          paths.Apps,
		ApplicationsDir: paths.Applications,
	}, nil
}

// LoadConfig loads configuration from the given file. An empty path uses
// APPDOCK_CONFIG or the default location. A missing file is not an error:
// defaults are returned.
func LoadConfig(path string) (*Config, error) {
	defaults, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = os.Getenv("APPDOCK_CONFIG")
	}
	if path == "" {
		paths, err := DefaultPaths()
		if err != nil {
			return nil, err
		}
		path = paths.Config
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.AppDir == "" {
		cfg.AppDir = defaults.AppDir
	}
	if cfg.ApplicationsDir == "" {
		cfg.ApplicationsDir = defaults.ApplicationsDir
	}

	return &cfg, nil
}
