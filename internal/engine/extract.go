package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/appdock/internal/desktop"
	"github.com/danieljhkim/appdock/internal/icon"
)

// entry keys rewritten or dropped during projection (original package
// entries point at paths that only exist inside the package).
var droppedEntryKeys = []string{"Actions", "TryExec", "X-AppImage-Version"}

// Extract pulls the application icon and desktop entry out of a package and
// writes both to the output directory. The extraction scratch directory is
// removed on every return path, and no output file is written until every
// fallible resolution step has succeeded.
func (e *Engine) Extract(ctx context.Context, req *ExtractRequest) (*ExtractResult, error) {
	exists, err := e.fs.Exists(req.PackagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check package file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, req.PackagePath)
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = "."
	}

	scratch, err := e.fs.TempDir("appdock-extract-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = e.fs.RemoveAll(scratch)
	}()

	root, err := e.extractor.Extract(ctx, req.PackagePath, scratch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	entry, err := e.loadEntry(root)
	if err != nil {
		return nil, err
	}
	iconName, _ := entry.Get("Icon")

	cand, err := icon.Resolve(root, iconName)
	if err != nil {
		if errors.Is(err, icon.ErrNotFound) {
			return nil, fmt.Errorf("%w: no candidate for %q", ErrIconNotFound, iconName)
		}
		return nil, fmt.Errorf("failed to resolve icon: %w", err)
	}

	appName := e.cleaner.Clean(packageStem(req.PackagePath))
	slug := strings.ReplaceAll(appName, " ", "")

	iconOut := filepath.Join(outputDir, slug+cand.Ext)
	desktopOut := filepath.Join(outputDir, slug+".desktop")

	e.project(entry, appName, slug, cand.Ext)

	if err := e.fs.CopyFile(cand.Path, iconOut); err != nil {
		return nil, fmt.Errorf("failed to copy icon: %w", err)
	}
	if err := e.fs.AtomicWrite(desktopOut, entry.Encode(), 0644); err != nil {
		// Don't leave a lone icon behind when the entry cannot be written.
		_ = e.fs.Remove(iconOut)
		return nil, fmt.Errorf("failed to write desktop entry: %w", err)
	}

	return &ExtractResult{
		AppName:     appName,
		Slug:        slug,
		IconPath:    iconOut,
		DesktopPath: desktopOut,
		InstallDir:  e.cfg.AppDir,
	}, nil
}

// loadEntry locates and parses the package's desktop entry, enforcing the
// mandatory Name and Icon fields.
func (e *Engine) loadEntry(root string) (*desktop.Entry, error) {
	entryPath, err := desktop.FindEntryFile(root)
	if err != nil {
		if errors.Is(err, desktop.ErrNoEntry) {
			return nil, fmt.Errorf("%w: package contains no desktop entry", ErrMalformedEntry)
		}
		return nil, err
	}

	data, err := e.fs.ReadFile(entryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read desktop entry: %w", err)
	}

	entry := desktop.Parse(data)
	for _, key := range []string{"Name", "Icon"} {
		if v, ok := entry.Get(key); !ok || v == "" {
			return nil, fmt.Errorf("%w: mandatory field %s= is absent", ErrMalformedEntry, key)
		}
	}
	return entry, nil
}

// project rewrites the parsed entry for the installed application: cleaned
// name, installed icon path, and an Exec line that goes through the launch
// dispatcher. All other declared fields pass through unmodified.
func (e *Engine) project(entry *desktop.Entry, appName, slug, iconExt string) {
	entry.Set("Name", appName)
	entry.Set("Icon", filepath.Join(e.cfg.AppDir, slug+iconExt))
	entry.Set("Exec", fmt.Sprintf("appdock launch %s %%U", slug))
	for _, key := range droppedEntryKeys {
		entry.Delete(key)
	}
}

// packageStem strips the package extension from the filename.
func packageStem(packagePath string) string {
	base := filepath.Base(packagePath)
	lower := strings.ToLower(base)
	for _, suffix := range []string{".appimage", ".tar.gz", ".tar.xz", ".tgz", ".txz", ".tar"} {
		if strings.HasSuffix(lower, suffix) {
			return base[:len(base)-len(suffix)]
		}
	}
	return base
}
