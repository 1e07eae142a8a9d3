package mdpreview

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdpreview/internal/pathclass"
	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// PathMode selects how local references in the rendered HTML are written.
type PathMode string

// Path conversion modes. PathBase64 only applies to images.
const (
	PathNone     PathMode = "none"
	PathAbsolute PathMode = "absolute"
	PathRelative PathMode = "relative"
	PathBase64   PathMode = "base64"
)

// CriticMode selects how CriticMarkup in the source is resolved.
type CriticMode string

// CriticMarkup modes.
const (
	CriticNone   CriticMode = "none"
	CriticAccept CriticMode = "accept"
	CriticReject CriticMode = "reject"
)

// Platform selects the path syntax used to interpret link targets.
type Platform = pathclass.Platform

// Supported platforms.
const (
	PlatformPosix   = pathclass.Posix
	PlatformWindows = pathclass.Windows
)

// PostProcess configures the HTML stages run after the backend.
// The zero value disables every stage.
type PostProcess struct {
	ImagePaths PathMode // img src: none, absolute, relative or base64
	FilePaths  PathMode // a/link/script href and src: none, absolute or relative
	HeaderIDs  bool     // add slug ids to headers without one
	Simple     bool     // strip id/class/style/on* attributes and comments, skip page assembly
}

// DefaultPostProcess returns the settings used when WithPostProcess is not given.
func DefaultPostProcess() PostProcess {
	return PostProcess{
		ImagePaths: PathAbsolute,
		FilePaths:  PathAbsolute,
	}
}

// Validate checks that the path modes are known.
// Empty modes are treated as PathNone.
func (p PostProcess) Validate() error {
	switch normalizeMode(p.ImagePaths) {
	case PathNone, PathAbsolute, PathRelative, PathBase64:
	default:
		return fmt.Errorf("%w: image %q (must be none, absolute, relative or base64)", ErrInvalidPathMode, p.ImagePaths)
	}
	switch normalizeMode(p.FilePaths) {
	case PathNone, PathAbsolute, PathRelative:
	default:
		return fmt.Errorf("%w: file %q (must be none, absolute or relative)", ErrInvalidPathMode, p.FilePaths)
	}
	return nil
}

func normalizeMode(m PathMode) PathMode {
	if m == "" {
		return PathNone
	}
	return PathMode(strings.ToLower(string(m)))
}

// Preprocess configures the Markdown stages run before the backend.
type Preprocess struct {
	StripFrontMatter bool
	Critic           CriticMode
}

// Validate checks that the critic mode is known. Empty means CriticNone.
func (p Preprocess) Validate() error {
	if _, ok := criticAction(p.Critic); !ok {
		return fmt.Errorf("%w: %q (must be none, accept or reject)", ErrInvalidCriticMode, p.Critic)
	}
	return nil
}

func criticAction(m CriticMode) (pipeline.CriticAction, bool) {
	switch strings.ToLower(string(m)) {
	case "", string(CriticNone):
		return pipeline.CriticKeep, true
	case string(CriticAccept):
		return pipeline.CriticAccept, true
	case string(CriticReject):
		return pipeline.CriticReject, true
	}
	return pipeline.CriticKeep, false
}

// Page configures the document wrapped around the converted body.
// Ignored when PostProcess.Simple is set.
type Page struct {
	// Styles lists stylesheets in order. Each entry is "default" (the
	// backend's default stylesheet), an http(s) URL (linked), a file path
	// (inlined) or the name of a style (inlined).
	Styles []string

	// AllowOverrides inlines <source>.css after Styles when it exists.
	AllowOverrides bool

	// Scripts lists scripts in order. Absolute paths to existing files are
	// inlined, anything else becomes a script src.
	Scripts []string

	// Template is a custom document holding {{ HEAD }} and {{ BODY }}.
	Template string

	// SkipDefaultStylesheet drops Styles when a custom Template is used.
	SkipDefaultStylesheet bool

	// Meta is emitted as <meta name content> tags. Front matter keys win.
	Meta map[string]string

	// MathJax loads MathJax after Scripts to typeset TeX math.
	MathJax bool
}

// DefaultPage returns the page used when WithPage is not given.
func DefaultPage() Page {
	return Page{Styles: []string{DefaultStyle}}
}

// DefaultStyle names the backend's default stylesheet in Page.Styles.
const DefaultStyle = "default"

// Input contains the source and the locations used to resolve references.
type Input struct {
	Markdown string // required

	// SourcePath is the path of the Markdown file, if any. It provides the
	// default BasePath, the default title and the override stylesheet.
	SourcePath string

	// BasePath is the directory relative references are resolved against.
	// Defaults to the directory of SourcePath.
	BasePath string

	// DestinationPath is where the HTML will be written. Relative path
	// conversion is computed from its directory; defaults to SourcePath's.
	DestinationPath string

	// Title is used when the front matter has no title.
	Title string

	// References are Markdown snippets appended to the source, in order.
	References []string
}

// Result holds the converted document.
type Result struct {
	HTML  []byte
	Title string
}
