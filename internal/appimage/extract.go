// Package appimage unpacks application packages into a scratch directory.
//
// AppImages carry their own extractor: running the image with
// --appimage-extract unpacks the embedded squashfs into ./squashfs-root.
// Plain tar archives (optionally gzip- or xz-compressed) are unpacked
// directly. Either way the result is an ephemeral directory tree owned by
// the caller, who must remove it when the run ends.
package appimage

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// squashfsRoot is the directory name an AppImage's self-extractor produces.
const squashfsRoot = "squashfs-root"

// Extractor unpacks a package into destDir and returns the root of the
// extracted tree.
type Extractor interface {
	Extract(ctx context.Context, packagePath, destDir string) (string, error)
}

// PackageExtractor implements Extractor for AppImages and tar archives.
type PackageExtractor struct{}

// NewPackageExtractor creates a new PackageExtractor.
func NewPackageExtractor() *PackageExtractor {
	return &PackageExtractor{}
}

// Extract unpacks the package at packagePath into destDir. Tar archives
// (.tar, .tar.gz, .tgz, .tar.xz, .txz) are unpacked in place; anything else
// is treated as an AppImage and asked to extract itself.
func (e *PackageExtractor) Extract(ctx context.Context, packagePath, destDir string) (string, error) {
	if isArchive(packagePath) {
		if err := extractArchive(packagePath, destDir); err != nil {
			return "", err
		}
		return destDir, nil
	}
	return selfExtract(ctx, packagePath, destDir)
}

func isArchive(path string) bool {
	for _, suffix := range []string{".tar", ".tar.gz", ".tgz", ".tar.xz", ".txz"} {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// selfExtract runs the AppImage's built-in extractor with destDir as the
// working directory. The package path is made absolute first so extraction
// works regardless of the caller's working directory.
func selfExtract(ctx context.Context, packagePath, destDir string) (string, error) {
	absPath, err := filepath.Abs(packagePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve package path: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, absPath, "--appimage-extract")
	cmd.Dir = destDir
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("appimage self-extraction failed: %s", msg)
	}

	root := filepath.Join(destDir, squashfsRoot)
	if _, err := os.Stat(root); err != nil {
		return "", fmt.Errorf("appimage extraction produced no %s directory: %w", squashfsRoot, err)
	}
	return root, nil
}

// extractArchive unpacks a tar archive into destDir, decompressing gzip or
// xz layers as indicated by the filename.
func extractArchive(packagePath, destDir string) error {
	f, err := os.Open(packagePath)
	if err != nil {
		return fmt.Errorf("failed to open package: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(packagePath, ".gz") || strings.HasSuffix(packagePath, ".tgz"):
		gzReader, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("creating gzip reader: %w", err)
		}
		defer func() {
			_ = gzReader.Close()
		}()
		reader = gzReader
	case strings.HasSuffix(packagePath, ".xz") || strings.HasSuffix(packagePath, ".txz"):
		xzReader, err := xz.NewReader(f)
		if err != nil {
			return fmt.Errorf("creating xz reader: %w", err)
		}
		reader = xzReader
	}

	tarReader := tar.NewReader(reader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		cleanPath := strings.TrimPrefix(header.Name, "./")
		if cleanPath == "" || cleanPath == "." {
			continue
		}

		targetPath, err := secureJoin(destDir, cleanPath)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", cleanPath, err)
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}
			outFile, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("creating file %s: %w", cleanPath, err)
			}
			_, err = io.Copy(outFile, tarReader)
			closeErr := outFile.Close()
			if err != nil {
				return fmt.Errorf("writing file %s: %w", cleanPath, err)
			}
			if closeErr != nil {
				return fmt.Errorf("closing file %s: %w", cleanPath, closeErr)
			}

		default:
			// Symlinks, devices and the like are irrelevant to icon and
			// desktop-entry resolution.
			continue
		}
	}

	return nil
}

// secureJoin joins name under root and rejects entries that would escape it.
func secureJoin(root, name string) (string, error) {
	target := filepath.Join(root, name)
	if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction directory", name)
	}
	return target, nil
}

// FakeExtractor implements Extractor by materializing a fixed file tree,
// for testing.
type FakeExtractor struct {
	// Files maps tree-relative paths (slash-separated) to file contents.
	Files map[string][]byte

	// Err, when set, is returned instead of extracting.
	Err error
}

// Extract writes the configured files under destDir and returns destDir.
func (e *FakeExtractor) Extract(_ context.Context, _, destDir string) (string, error) {
	if e.Err != nil {
		return "", e.Err
	}
	for rel, data := range e.Files {
		path := filepath.Join(destDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return "", err
		}
	}
	return destDir, nil
}
