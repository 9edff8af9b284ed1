// Package engine provides the core logic for appdock operations.
//
// The engine package acts as the orchestration layer between CLI commands
// and lower-level operations. It coordinates package extraction, desktop
// entry projection, icon resolution, and launcher dispatch.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Extract: Pulls an icon and desktop entry out of a package
//   - Dispatch: Locates an installed executable and launches it once
package engine

import (
	"github.com/danieljhkim/appdock/internal/appimage"
	"github.com/danieljhkim/appdock/internal/appname"
	"github.com/danieljhkim/appdock/internal/config"
	"github.com/danieljhkim/appdock/internal/fsops"
	"github.com/danieljhkim/appdock/internal/procs"
)

// Engine orchestrates all appdock operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs        fsops.FS
	extractor appimage.Extractor
	table     procs.ProcessTable
	runner    procs.Runner
	cleaner   *appname.Cleaner
	cfg       *config.Config
}

// New creates a new Engine with the given dependencies.
func New(
	fs fsops.FS,
	extractor appimage.Extractor,
	table procs.ProcessTable,
	runner procs.Runner,
	cfg *config.Config,
) *Engine {
	return &Engine{
		fs:        fs,
		extractor: extractor,
		table:     table,
		runner:    runner,
		cleaner:   appname.NewCleaner(cfg.StopTokens...),
		cfg:       cfg,
	}
}

// ApplicationsDir returns the configured desktop-entry directory.
func (e *Engine) ApplicationsDir() string {
	return e.cfg.ApplicationsDir
}
