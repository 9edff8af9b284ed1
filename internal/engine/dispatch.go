package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dispatch finds an executable matching the request prefix and starts it
// unless an instance is already running.
//
// The search is a flat scan of the search directory: regular files with an
// execute bit whose name starts with the prefix, compared
// case-insensitively. With several matches the lexicographically first one
// wins, so dispatch is deterministic. The running-instance check is a
// best-effort scan of the process table; two dispatches racing each other
// can both launch, which is accepted behavior.
func (e *Engine) Dispatch(_ context.Context, req *DispatchRequest) (*DispatchResult, error) {
	searchDir := req.SearchDir
	if searchDir == "" {
		searchDir = e.cfg.AppDir
	}

	path, err := findExecutable(searchDir, req.Prefix)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &DispatchResult{Status: StatusNotFound}, nil
	}

	name := filepath.Base(path)
	running, err := e.table.Running(name)
	if err != nil {
		return nil, fmt.Errorf("failed to check process table: %w", err)
	}
	if running {
		return &DispatchResult{
			Status:     StatusAlreadyRunning,
			Executable: name,
			Path:       path,
		}, nil
	}

	pid, err := e.runner.Start(path, req.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", name, err)
	}

	return &DispatchResult{
		Status:     StatusLaunched,
		Executable: name,
		Path:       path,
		PID:        pid,
	}, nil
}

// findExecutable returns the first executable file in dir whose name starts
// with prefix, ignoring case. Directory entries come back sorted, so the
// first match is the lexicographically smallest. Returns "" when nothing
// matches.
func findExecutable(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing search directory simply has nothing to match.
			return "", nil
		}
		return "", fmt.Errorf("failed to read search directory: %w", err)
	}

	want := strings.ToLower(prefix)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(entry.Name()), want) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		if info.Mode()&0111 == 0 {
			continue
		}
		return filepath.Join(dir, entry.Name()), nil
	}
	return "", nil
}
