package icon

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile creates a file with parent directories, filled to the given size.
func writeFile(t *testing.T, root, rel string, size int) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent dirs: %v", err)
	}
	data := make([]byte, size)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}

// resolvePath resolves and returns the chosen path, failing the test on error.
func resolvePath(t *testing.T, root, baseName string) string {
	t.Helper()
	cand, err := Resolve(root, baseName)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return cand.Path
}

func TestResolve_SingleCandidate(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "usr/share/pixmaps/myapp.png", 100)

	if got := resolvePath(t, root, "myapp"); got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolve_PrefersVector(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "myapp.png", 50000)
	want := writeFile(t, root, "usr/share/icons/hicolor/scalable/apps/myapp.svg", 100)

	if got := resolvePath(t, root, "myapp"); got != want {
		t.Errorf("Resolve = %q, want svg %q even when png is larger and shallower", got, want)
	}
}

func TestResolve_PrefersShallowerRaster(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "myapp.png", 100)
	writeFile(t, root, "usr/share/icons/hicolor/512x512/apps/myapp.png", 100)

	if got := resolvePath(t, root, "myapp"); got != want {
		t.Errorf("Resolve = %q, want top-level %q", got, want)
	}
}

func TestResolve_PrefersLargerAtEqualDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "icons/myapp.png", 100)
	want := writeFile(t, root, "other/myapp.png", 5000)

	if got := resolvePath(t, root, "myapp"); got != want {
		t.Errorf("Resolve = %q, want larger file %q", got, want)
	}
}

func TestResolve_LexicographicFinalTieBreak(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "a/myapp.png", 100)
	writeFile(t, root, "b/myapp.png", 100)

	if got := resolvePath(t, root, "myapp"); got != want {
		t.Errorf("Resolve = %q, want lexicographically first %q", got, want)
	}
}

func TestResolve_CaseInsensitiveMatch(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "MyApp.PNG", 100)

	cand, err := Resolve(root, "myapp")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cand.Path != want {
		t.Errorf("Resolve = %q, want %q", cand.Path, want)
	}
	if cand.Ext != ".png" {
		t.Errorf("Ext = %q, want normalized %q", cand.Ext, ".png")
	}
}

func TestResolve_ExactBeatsLoose(t *testing.T) {
	root := t.TempDir()
	// The loose match is a vector at the root, but the exact stem match
	// must still win.
	writeFile(t, root, "myapp-symbolic.svg", 100)
	want := writeFile(t, root, "deep/nested/dir/myapp.png", 100)

	if got := resolvePath(t, root, "myapp"); got != want {
		t.Errorf("Resolve = %q, want exact match %q", got, want)
	}
}

func TestResolve_FallbackNames(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "icon.png", 100)
	writeFile(t, root, "README.txt", 10)

	if got := resolvePath(t, root, "myapp"); got != want {
		t.Errorf("Resolve = %q, want generic fallback %q", got, want)
	}
}

func TestResolve_DirIconSniffing(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".DirIcon")
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	if err := os.WriteFile(path, png, 0644); err != nil {
		t.Fatalf("failed to write .DirIcon: %v", err)
	}

	cand, err := Resolve(root, "myapp")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cand.Path != path {
		t.Errorf("Resolve = %q, want .DirIcon %q", cand.Path, path)
	}
	if cand.Ext != ".png" {
		t.Errorf("Ext = %q, want sniffed %q", cand.Ext, ".png")
	}
}

func TestResolve_UnsniffableDirIconIgnored(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".DirIcon"), []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write .DirIcon: %v", err)
	}

	_, err := Resolve(root, "myapp")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve error = %v, want ErrNotFound", err)
	}
}

func TestResolve_NoCandidates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "AppRun", 100)
	writeFile(t, root, "usr/share/doc/readme.md", 100)

	_, err := Resolve(root, "myapp")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve error = %v, want ErrNotFound", err)
	}
}

func TestResolve_NonIconExtensionsIgnored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "myapp.desktop", 100)
	writeFile(t, root, "myapp.so", 100)
	want := writeFile(t, root, "sub/myapp.png", 100)

	if got := resolvePath(t, root, "myapp"); got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"x/myapp.png", "y/myapp.png", "z/myapp.png"} {
		writeFile(t, root, rel, 256)
	}

	first := resolvePath(t, root, "myapp")
	for i := 0; i < 5; i++ {
		if got := resolvePath(t, root, "myapp"); got != first {
			t.Fatalf("Resolve not deterministic: run %d returned %q, first run %q", i, got, first)
		}
	}
	if !strings.HasSuffix(first, filepath.FromSlash("x/myapp.png")) {
		t.Errorf("Resolve = %q, want the lexicographically first candidate", first)
	}
}
