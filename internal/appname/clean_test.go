package appname

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"version and platform stripped", "Cider-linux-x64_2.3.1", "Cider"},
		{"appimage suffix stripped", "MyApp-1.0.0.AppImage", "MyApp"},
		{"date stripped", "nightly-editor-20240115", "Nightly Editor"},
		{"arch tokens stripped", "tool-aarch64-portable", "Tool"},
		{"v-prefixed version stripped", "Editor-v12", "Editor"},
		{"rc token stripped", "Studio-2.0-rc1", "Studio"},
		{"already clean", "Cider", "Cider"},
		{"multi word", "my-cool-app", "My Cool App"},
		{"case preserved after first letter", "GIMP-2.10-x86_64", "GIMP"},
		{"digits inside word kept", "86Box-4.0-linux", "86Box"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Cider-linux-x64_2.3.1",
		"my-cool-app",
		"GIMP-2.10-x86_64",
		"2.3.1",
		"Plain",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := Clean(input)
			twice := Clean(once)
			if once != twice {
				t.Errorf("Clean not idempotent: Clean(%q) = %q, Clean again = %q", input, once, twice)
			}
		})
	}
}

func TestClean_AllTokensFiltered(t *testing.T) {
	// When every token is filtered the original name comes back unmodified
	// so output filenames are never empty.
	input := "2.3.1"
	got := Clean(input)
	if got != input {
		t.Errorf("Clean(%q) = %q, want original name back", input, got)
	}
}

func TestCleaner_ExtraStopTokens(t *testing.T) {
	c := NewCleaner("nightly", "canary")

	got := c.Clean("Browser-nightly-2.0")
	if got != "Browser" {
		t.Errorf("Clean with extra tokens = %q, want %q", got, "Browser")
	}

	// Extra tokens must not affect the default behavior for other names.
	got = c.Clean("my-cool-app")
	if got != "My Cool App" {
		t.Errorf("Clean = %q, want %q", got, "My Cool App")
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"my-cool-app-1.2.3", "MyCoolApp"},
		{"Cider-linux-x64_2.3.1", "Cider"},
	}

	for _, tt := range tests {
		got := Slug(tt.input)
		if got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
