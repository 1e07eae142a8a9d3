package main

// Notes:
// - discoverFiles: single files, directory walks, preview mode.
// - resolveOutputPath: table of input/output combinations.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output path rules
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		output  string
		baseDir string
		want    string
	}{
		{"next to source", "/docs/a.md", "", "", "/docs/a.html"},
		{"markdown extension", "/docs/a.markdown", "", "", "/docs/a.html"},
		{"explicit html file", "/docs/a.md", "/out/page.html", "", "/out/page.html"},
		{"explicit html upper", "/docs/a.md", "/out/PAGE.HTML", "", "/out/PAGE.HTML"},
		{"output directory", "/docs/a.md", "/out", "", "/out/a.html"},
		{"directory keeps layout", "/docs/sub/a.md", "/out", "/docs", "/out/sub/a.html"},
		{"directory html name is a dir", "/docs/a.md", "/out/site.html", "/docs", "/out/site.html/a.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(filepath.FromSlash(tt.input), filepath.FromSlash(tt.output), filepath.FromSlash(tt.baseDir))
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("resolveOutputPath() = %q, want %q", got, filepath.FromSlash(tt.want))
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverFiles - File and directory inputs
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	t.Run("single file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := filepath.Join(dir, "doc.md")
		writeFile(t, input, "# Doc")

		files, err := discoverFiles(input, "", false)
		if err != nil {
			t.Fatalf("discoverFiles: %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("got %d files, want 1", len(files))
		}
		if files[0].OutputPath != filepath.Join(dir, "doc.html") {
			t.Errorf("OutputPath = %q", files[0].OutputPath)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.md"), "a")
		writeFile(t, filepath.Join(dir, "sub", "b.markdown"), "b")
		writeFile(t, filepath.Join(dir, "notes.txt"), "skip")
		out := filepath.Join(dir, "out")

		files, err := discoverFiles(dir, out, false)
		if err != nil {
			t.Fatalf("discoverFiles: %v", err)
		}

		var outputs []string
		for _, f := range files {
			outputs = append(outputs, f.OutputPath)
		}
		sort.Strings(outputs)
		want := []string{filepath.Join(out, "a.html"), filepath.Join(out, "sub", "b.html")}
		if strings.Join(outputs, ",") != strings.Join(want, ",") {
			t.Errorf("outputs = %v, want %v", outputs, want)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()

		input := filepath.Join(t.TempDir(), "doc.txt")
		writeFile(t, input, "x")

		_, err := discoverFiles(input, "", false)
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(t.TempDir(), "none.md"), "", false)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("preview", func(t *testing.T) {
		t.Parallel()

		input := filepath.Join(t.TempDir(), "doc.md")
		writeFile(t, input, "# Doc")

		first, err := discoverFiles(input, "/ignored", true)
		if err != nil {
			t.Fatalf("discoverFiles: %v", err)
		}
		second, err := discoverFiles(input, "", true)
		if err != nil {
			t.Fatalf("discoverFiles: %v", err)
		}

		got := first[0].OutputPath
		if !strings.HasPrefix(got, os.TempDir()) {
			t.Errorf("preview path %q should be under %q", got, os.TempDir())
		}
		if !strings.HasSuffix(got, ".html") {
			t.Errorf("preview path %q should end in .html", got)
		}
		if got != second[0].OutputPath {
			t.Errorf("preview path not stable: %q != %q", got, second[0].OutputPath)
		}
	})
}

// ---------------------------------------------------------------------------
// TestDiscoverFiles_PreviewSameNames - Distinct previews per source
// ---------------------------------------------------------------------------

func TestDiscoverFiles_PreviewSameNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "readme.md"), "# A")
	writeFile(t, filepath.Join(dir, "b", "readme.md"), "# B")

	files, err := discoverFiles(dir, "", true)
	if err != nil {
		t.Fatalf("discoverFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].OutputPath == files[1].OutputPath {
		t.Errorf("both sources preview to %q, want distinct paths", files[0].OutputPath)
	}
}
