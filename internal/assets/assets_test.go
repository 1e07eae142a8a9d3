package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestLoadStyle - Embedded stylesheets and name validation
// ---------------------------------------------------------------------------

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		styleName string
		wantErr   error
	}{
		{"default style", DefaultStyleName, nil},
		{"github style", GitHubStyleName, nil},
		{"nonexistent style", "nonexistent", ErrStyleNotFound},
		{"empty name", "", ErrInvalidAssetName},
		{"traversal with slash", "../secret", ErrInvalidAssetName},
		{"traversal with backslash", `..\secret`, ErrInvalidAssetName},
		{"dotted name", "style.name", ErrInvalidAssetName},
		{"drive letter", "C:x", ErrInvalidAssetName},
		{"valid name not found", "my-style", ErrStyleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, err := LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(content, ".markdown-body") {
				t.Errorf("LoadStyle(%q) does not style .markdown-body", tt.styleName)
			}
		})
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	got := strings.Join(StyleNames(), ",")
	if got != "default,github" {
		t.Errorf("StyleNames() = %q, want %q", got, "default,github")
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader - User style directory
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		dir     string
		wantErr error
	}{
		{"valid directory", dir, nil},
		{"empty path", "", ErrInvalidBasePath},
		{"missing directory", filepath.Join(dir, "missing"), ErrInvalidBasePath},
		{"file instead of directory", file, ErrInvalidBasePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewFilesystemLoader(tt.dir)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewFilesystemLoader(%q) error = %v, want %v", tt.dir, err, tt.wantErr)
			}
		})
	}
}

func TestFilesystemLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatal(err)
	}

	got, err := loader.LoadStyle("mine")
	if err != nil || got != "body{}" {
		t.Errorf("LoadStyle(mine) = %q, %v; want body{}, nil", got, err)
	}
	if _, err := loader.LoadStyle("absent"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(absent) error = %v, want %v", err, ErrStyleNotFound)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	target := filepath.Join(outside, "secret.css")
	if err := os.WriteFile(target, []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := os.Symlink(target, filepath.Join(dir, "link.css")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loader.LoadStyle("link"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle(link) error = %v, want %v", err, ErrPathTraversal)
	}
}

// ---------------------------------------------------------------------------
// TestAssetResolver - Custom first, embedded fallback
// ---------------------------------------------------------------------------

func TestAssetResolver(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "default.css"), []byte("custom"), 0o644); err != nil {
		t.Fatal(err)
	}

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !resolver.HasCustomLoader() {
		t.Error("HasCustomLoader() = false, want true")
	}

	if got, err := resolver.LoadStyle("default"); err != nil || got != "custom" {
		t.Errorf("LoadStyle(default) = %q, %v; want custom override", got, err)
	}

	got, err := resolver.LoadStyle("github")
	if err != nil || !strings.Contains(got, ".markdown-body") {
		t.Errorf("LoadStyle(github) = %v; want embedded fallback", err)
	}

	if _, err := resolver.LoadStyle("../x"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle(../x) error = %v, want %v", err, ErrInvalidAssetName)
	}
}

func TestNewAssetResolver_EmbeddedOnly(t *testing.T) {
	t.Parallel()

	resolver, err := NewAssetResolver("")
	if err != nil {
		t.Fatal(err)
	}
	if resolver.HasCustomLoader() {
		t.Error("HasCustomLoader() = true, want false")
	}
	if _, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewAssetResolver(missing) error = %v, want %v", err, ErrInvalidBasePath)
	}
}
