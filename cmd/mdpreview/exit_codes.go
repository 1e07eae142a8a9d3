package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/config"
)

// Exit codes for mdpreview CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBackend = 4 // Markdown renderer errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Backend errors (exit 4)
	if errors.Is(err, mdpreview.ErrHTMLConversion) ||
		errors.Is(err, mdpreview.ErrRemoteAuth) ||
		errors.Is(err, mdpreview.ErrRemoteRateLimit) ||
		errors.Is(err, mdpreview.ErrRemoteStatus) ||
		errors.Is(err, mdpreview.ErrBinaryNotFound) ||
		errors.Is(err, mdpreview.ErrExternalFailed) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBackend
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadTemplate) ||
		errors.Is(err, ErrReadReference) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, mdpreview.ErrEmptyMarkdown) ||
		errors.Is(err, mdpreview.ErrInvalidPathMode) ||
		errors.Is(err, mdpreview.ErrInvalidCriticMode) ||
		errors.Is(err, mdpreview.ErrInvalidBackend) ||
		errors.Is(err, mdpreview.ErrInvalidStyleDir) ||
		errors.Is(err, mdpreview.ErrStyleNotFound) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrTooManyInput) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
