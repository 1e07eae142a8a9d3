// Package fileutil provides the read-only filesystem access used by the
// HTML post-processing stages, plus small path helpers.
package fileutil

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// FS is the read-only filesystem collaborator of the post-processing stages.
// Paths use forward slashes; implementations convert as needed.
type FS interface {
	// Exists reports whether path names an existing file or directory.
	Exists(path string) bool
	// ReadFile returns the whole content of the file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FS on top of the operating system.
type OSFS struct{}

// Compile-time interface check.
var _ FS = OSFS{}

// Exists reports whether path exists.
func (OSFS) Exists(path string) bool {
	_, err := os.Stat(filepath.FromSlash(path))
	return err == nil
}

// ReadFile reads the file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.FromSlash(path)) // #nosec G304 -- path resolved from document links
}

// PreviewPath returns a stable path in the system temp directory for the
// rendered preview of sourcePath. The same source always maps to the same
// preview file, so re-rendering overwrites the previous preview. The name
// carries a hash of the absolute source path: same-named sources in
// different directories get different files.
func PreviewPath(sourcePath, extension string) (string, error) {
	if err := ValidateExtension(extension); err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "untitled"
	}
	name := fmt.Sprintf("mdpreview-%s-%08x.%s", base, sourceHash(sourcePath), extension)
	return filepath.Join(os.TempDir(), name), nil
}

// sourceHash returns the FNV-1a hash of the absolute form of sourcePath.
func sourceHash(sourcePath string) uint32 {
	if abs, err := filepath.Abs(sourcePath); err == nil && sourcePath != "" {
		sourcePath = abs
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(filepath.Clean(sourcePath)))
	return h.Sum32()
}

// ValidateExtension checks that the extension is safe for use in file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "default" -> false (name)
//   - "./custom.css" -> true (relative path)
//   - "/absolute/path.css" -> true (absolute)
//   - "C:\windows\path.css" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ExpandHome replaces a leading "~" with the user's home directory.
// The path is returned unchanged when the home directory is unknown.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
