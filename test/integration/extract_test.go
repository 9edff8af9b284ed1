package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/appdock/internal/engine"
)

var ciderDesktop = []byte(`[Desktop Entry]
Name=Cider
Exec=AppRun --no-sandbox %U
Icon=cider
Type=Application
Categories=AudioVideo;Audio;
Actions=new-window;
TryExec=cider
X-AppImage-Version=2.3.1
`)

func ciderEntries() []tarEntry {
	return []tarEntry{
		{name: "cider.desktop", data: ciderDesktop},
		{name: "cider.png", data: []byte("\x89PNG\r\n\x1a\nfakedata")},
		{name: "usr/share/icons/hicolor/scalable/apps/cider.svg", data: []byte("<svg></svg>")},
	}
}

func TestExtract_FromTarball(t *testing.T) {
	eng, _, _, cfg := setupEngine(t)
	pkg := buildPackage(t, "Cider-linux-x64_2.3.1.tar.gz", ciderEntries())
	outDir := t.TempDir()

	result, err := eng.Extract(context.Background(), &engine.ExtractRequest{
		PackagePath: pkg,
		OutputDir:   outDir,
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if result.AppName != "Cider" {
		t.Errorf("AppName = %q, want %q", result.AppName, "Cider")
	}
	if result.Slug != "Cider" {
		t.Errorf("Slug = %q, want %q", result.Slug, "Cider")
	}
	if result.IconPath != filepath.Join(outDir, "Cider.svg") {
		t.Errorf("IconPath = %q, expected the vector icon to win", result.IconPath)
	}

	data, err := os.ReadFile(result.DesktopPath)
	if err != nil {
		t.Fatalf("reading desktop entry: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "Exec=appdock launch Cider %U\n") {
		t.Errorf("desktop entry missing rewritten Exec line:\n%s", text)
	}
	if !strings.Contains(text, "Icon="+filepath.Join(cfg.AppDir, "Cider.svg")+"\n") {
		t.Errorf("desktop entry missing installed icon path:\n%s", text)
	}
	if !strings.Contains(text, "Categories=AudioVideo;Audio;\n") {
		t.Errorf("desktop entry lost pass-through field:\n%s", text)
	}
	for _, dropped := range []string{"Actions=", "TryExec=", "X-AppImage-Version="} {
		if strings.Contains(text, dropped) {
			t.Errorf("desktop entry still contains %s:\n%s", dropped, text)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	eng, _, _, _ := setupEngine(t)
	pkg := buildPackage(t, "Cider-linux-x64_2.3.1.tar.gz", ciderEntries())
	outDir := t.TempDir()

	req := &engine.ExtractRequest{PackagePath: pkg, OutputDir: outDir}
	first, err := eng.Extract(context.Background(), req)
	if err != nil {
		t.Fatalf("first Extract() error = %v", err)
	}
	firstData, err := os.ReadFile(first.DesktopPath)
	if err != nil {
		t.Fatal(err)
	}

	second, err := eng.Extract(context.Background(), req)
	if err != nil {
		t.Fatalf("second Extract() error = %v", err)
	}
	secondData, err := os.ReadFile(second.DesktopPath)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(firstData, secondData) {
		t.Errorf("repeated extraction produced different desktop entries:\n%s\n---\n%s", firstData, secondData)
	}
}

func TestExtract_MissingPackage(t *testing.T) {
	eng, _, _, _ := setupEngine(t)

	_, err := eng.Extract(context.Background(), &engine.ExtractRequest{
		PackagePath: filepath.Join(t.TempDir(), "nope.AppImage"),
		OutputDir:   t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing package")
	}
}

func TestExtract_NoIconInPackage(t *testing.T) {
	eng, _, _, _ := setupEngine(t)
	pkg := buildPackage(t, "bare-1.0.tar.gz", []tarEntry{
		{name: "bare.desktop", data: []byte("[Desktop Entry]\nName=Bare\nIcon=bare\nExec=bare\n")},
	})
	outDir := t.TempDir()

	_, err := eng.Extract(context.Background(), &engine.ExtractRequest{
		PackagePath: pkg,
		OutputDir:   outDir,
	})
	if err == nil {
		t.Fatal("expected error when the package has no icon")
	}

	// Nothing should be left behind in the output directory.
	entries, readErr := os.ReadDir(outDir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("output directory not empty after failed extraction: %v", entries)
	}
}
