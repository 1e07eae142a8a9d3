package main

// Notes:
// - Test helpers shared across the CLI tests; not functions under test.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-mdpreview"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and files
// ---------------------------------------------------------------------------

// testEnv returns an Environment writing to buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// writeFile creates a file and its parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

// readFile returns the content of a file or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock converter
// ---------------------------------------------------------------------------

// mockConverter records inputs and returns canned output.
type mockConverter struct {
	err    error
	inputs chan mdpreview.Input
}

func newMockConverter(err error) *mockConverter {
	return &mockConverter{err: err, inputs: make(chan mdpreview.Input, 64)}
}

func (m *mockConverter) Convert(_ context.Context, input mdpreview.Input) (*mdpreview.Result, error) {
	m.inputs <- input
	if m.err != nil {
		return nil, m.err
	}
	return &mdpreview.Result{HTML: []byte("<p>" + input.Markdown + "</p>")}, nil
}
