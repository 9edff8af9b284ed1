// Package config manages appdock configuration and filesystem paths.
//
// Configuration includes the application directory holding installed
// AppImages and their icons, and the desktop-entry directory used by the
// desktop environment. Defaults can be customized via environment variables
// and an optional YAML config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by appdock.
type Paths struct {
	// Apps is the directory holding installed AppImages, the launch
	// dispatcher's search directory (default: ~/AppImage)
	Apps string

	// Applications is the desktop-entry directory scanned by desktop
	// environments (default: ~/.local/share/applications)
	Applications string

	// Config is the path to the config file
	Config string
}

// DefaultPaths returns the default paths for appdock.
// Paths can be overridden with environment variables:
// - APPDOCK_ROOT: Override the application directory
func DefaultPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	apps := os.Getenv("APPDOCK_ROOT")
	if apps == "" {
		apps = filepath.Join(home, "AppImage")
	}

	return &Paths{
		Apps:         apps,
		Applications: filepath.Join(home, ".local", "share", "applications"),
		Config:       filepath.Join(home, ".config", "appdock", "config.yaml"),
	}, nil
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Apps,
		p.Applications,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
