package mdpreview

import (
	"time"

	"github.com/alnah/go-mdpreview/internal/fileutil"
)

// FS is the read-only filesystem used to resolve references, stylesheets
// and scripts. Paths use forward slashes.
type FS interface {
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout  time.Duration
	backend  Backend
	post     PostProcess
	pre      Preprocess
	page     Page
	platform Platform
	styleDir string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpreview: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithBackend selects the Markdown-to-HTML engine (default BuiltIn).
func WithBackend(b Backend) Option {
	return func(c *Converter) {
		c.cfg.backend = b
	}
}

// WithPostProcess configures the HTML stages (default DefaultPostProcess).
func WithPostProcess(p PostProcess) Option {
	return func(c *Converter) {
		c.cfg.post = p
	}
}

// WithPreprocess configures the Markdown stages (default: everything off).
func WithPreprocess(p Preprocess) Option {
	return func(c *Converter) {
		c.cfg.pre = p
	}
}

// WithPage configures page assembly (default DefaultPage).
func WithPage(p Page) Option {
	return func(c *Converter) {
		c.cfg.page = p
	}
}

// WithFS replaces the filesystem used to resolve local files.
func WithFS(fsys FS) Option {
	return func(c *Converter) {
		c.fs = fsys
	}
}

// WithPlatform sets the path syntax of link targets (default: the host's).
func WithPlatform(p Platform) Option {
	return func(c *Converter) {
		c.cfg.platform = p
	}
}

// WithStyleDir adds a directory of <name>.css stylesheets searched before
// the embedded ones.
func WithStyleDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.styleDir = fileutil.ExpandHome(dir)
	}
}
