package integration

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/appdock/internal/appimage"
	"github.com/danieljhkim/appdock/internal/config"
	"github.com/danieljhkim/appdock/internal/engine"
	"github.com/danieljhkim/appdock/internal/fsops"
	"github.com/danieljhkim/appdock/internal/procs"
)

// setupEngine builds an engine over the real filesystem and extractor, with
// fake process inspection so nothing is actually launched.
func setupEngine(t *testing.T) (*engine.Engine, *procs.FakeTable, *procs.FakeRunner, *config.Config) {
	t.Helper()

	appDir := filepath.Join(t.TempDir(), "AppImage")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		AppDir:          appDir,
		ApplicationsDir: filepath.Join(t.TempDir(), "applications"),
	}

	table := procs.NewFakeTable()
	runner := &procs.FakeRunner{}
	eng := engine.New(fsops.NewRealFS(), appimage.NewPackageExtractor(), table, runner, cfg)
	return eng, table, runner, cfg
}

// tarEntry is a single file inside a generated package.
type tarEntry struct {
	name string
	data []byte
	mode int64
}

// buildPackage writes a gzipped tar package containing the given entries and
// returns its path.
func buildPackage(t *testing.T, name string, entries []tarEntry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	for _, e := range entries {
		mode := e.mode
		if mode == 0 {
			mode = 0644
		}
		hdr := &tar.Header{Name: e.name, Mode: mode, Size: int64(len(e.data))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write(e.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeExecutable drops an executable file into dir.
func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}
