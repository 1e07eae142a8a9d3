package mdpreview

import (
	"errors"

	"github.com/alnah/go-mdpreview/internal/assets"
	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown     = errors.New("markdown content cannot be empty")
	ErrInvalidPathMode   = errors.New("invalid path conversion mode")
	ErrInvalidCriticMode = errors.New("invalid critic mode")
	ErrInvalidBackend    = errors.New("invalid backend")
	ErrInvalidStyleDir   = errors.New("invalid style directory")

	// Backend errors, shared with the conversion pipeline so errors.Is
	// matches whichever layer wrapped them.
	ErrHTMLConversion  = pipeline.ErrHTMLConversion
	ErrRemoteAuth      = pipeline.ErrRemoteAuth
	ErrRemoteRateLimit = pipeline.ErrRemoteRateLimit
	ErrRemoteStatus    = pipeline.ErrRemoteStatus
	ErrBinaryNotFound  = pipeline.ErrBinaryNotFound
	ErrExternalFailed  = pipeline.ErrExternalFailed

	// Asset loading errors.
	ErrStyleNotFound = assets.ErrStyleNotFound
)
