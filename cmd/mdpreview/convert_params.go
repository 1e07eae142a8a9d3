package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/assets"
	"github.com/alnah/go-mdpreview/internal/config"
	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/hints"
)

// Sentinel errors for settings resolution.
var (
	ErrInvalidFlags       = errors.New("invalid flags")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrReadTemplate       = errors.New("failed to read HTML template")
	ErrReadReference      = errors.New("failed to read reference file")
)

// Worker bounds for batch conversion.
const (
	minWorkers = 1
	maxWorkers = 16
)

// settings is everything a conversion run needs, resolved once per run.
type settings struct {
	cfg        *config.Config
	timeout    time.Duration
	workers    int
	template   string   // template file content
	references []string // reference file contents
}

// loadSettings resolves configuration in priority order:
// CLI flags > environment > config file > defaults.
func loadSettings(flags *convertFlags, env *Environment) (*settings, error) {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg := config.DefaultConfig()
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w%s", err, configHint(err, name))
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkStyles(cfg); err != nil {
		return nil, err
	}

	timeout, err := resolveTimeout(flags.backend.timeout, envCfg.Timeout)
	if err != nil {
		return nil, err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg, timeout: timeout, workers: workers}

	if cfg.HTMLTemplate != "" {
		data, err := os.ReadFile(fileutil.ExpandHome(cfg.HTMLTemplate)) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadTemplate, err)
		}
		s.template = string(data)
	}

	for _, ref := range cfg.References {
		data, err := os.ReadFile(fileutil.ExpandHome(ref)) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadReference, err)
		}
		s.references = append(s.references, string(data))
	}

	return s, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Backend
	if flags.backend.parser != "" {
		cfg.Parser = flags.backend.parser
	}
	if flags.backend.githubMode != "" {
		cfg.GitHubMode = flags.backend.githubMode
	}

	// Paths
	if flags.paths.images != "" {
		cfg.ImagePathConversion = flags.paths.images
	}
	if flags.paths.files != "" {
		cfg.FilePathConversions = flags.paths.files
	}
	if flags.paths.basePath != "" {
		cfg.BasePath = flags.paths.basePath
	}
	if flags.paths.destination != "" {
		cfg.Destination = flags.paths.destination
	}

	// Content (boolean flags only enable)
	if flags.content.critic != "" {
		cfg.StripCriticMarks = flags.content.critic
	}
	if flags.content.stripFrontMatter {
		cfg.StripYAMLFrontMatter = true
	}
	if flags.content.headerIDs {
		cfg.GitHubInjectHeaderIDs = true
	}
	if flags.content.simple {
		cfg.HTMLSimple = true
	}

	// Page
	if len(flags.page.css) > 0 {
		cfg.CSS = flags.page.css
	}
	if flags.page.noStyle {
		cfg.CSS = nil
	}
	if len(flags.page.js) > 0 {
		cfg.JS = flags.page.js
	}
	if flags.page.template != "" {
		cfg.HTMLTemplate = flags.page.template
	}
	if flags.page.styleDir != "" {
		cfg.StyleDir = flags.page.styleDir
	}
	if flags.page.overrides {
		cfg.AllowCSSOverrides = true
	}
	if flags.page.mathjax {
		cfg.EnableMathJax = true
	}
}

// checkStyles rejects css entries naming a style that does not exist.
// Files and URLs are resolved per document and skipped when missing.
func checkStyles(cfg *config.Config) error {
	resolver, err := assets.NewAssetResolver(fileutil.ExpandHome(cfg.StyleDir))
	if err != nil {
		return fmt.Errorf("%w: %v", mdpreview.ErrInvalidStyleDir, err)
	}
	for _, entry := range cfg.CSS {
		if !isStyleName(entry) {
			continue
		}
		if _, err := resolver.LoadStyle(entry); err != nil {
			return fmt.Errorf("css %q: %w%s", entry, err, hints.ForStyleNotFound(assets.StyleNames()))
		}
	}
	return nil
}

func isStyleName(entry string) bool {
	return entry != "" &&
		entry != mdpreview.DefaultStyle &&
		!fileutil.IsURL(entry) &&
		!fileutil.IsFilePath(entry) &&
		filepath.Ext(entry) != ".css"
}

// resolveTimeout picks the flag value, then the environment, then the default.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, flagValue)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return defaultTimeout, nil
}

// defaultTimeout leaves room for the remote API on slow networks.
const defaultTimeout = 30 * time.Second

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// backendFor maps the parser setting to a backend.
func backendFor(cfg *config.Config) mdpreview.Backend {
	switch cfg.Parser {
	case "", config.ParserBuiltIn:
		return mdpreview.BuiltIn()
	case config.ParserGitHub:
		return mdpreview.RemoteAPI(cfg.GitHubMode, cfg.GitHubOAuthToken)
	default:
		return mdpreview.ExternalBinary(cfg.MarkdownBinaryMap[cfg.Parser]...)
	}
}

// buildConverter creates the library converter for the resolved settings.
func buildConverter(s *settings) (*mdpreview.Converter, error) {
	cfg := s.cfg
	opts := []mdpreview.Option{
		mdpreview.WithBackend(backendFor(cfg)),
		mdpreview.WithTimeout(s.timeout),
		mdpreview.WithPostProcess(mdpreview.PostProcess{
			ImagePaths: mdpreview.PathMode(cfg.ImagePathConversion),
			FilePaths:  mdpreview.PathMode(cfg.FilePathConversions),
			HeaderIDs:  cfg.GitHubInjectHeaderIDs,
			Simple:     cfg.HTMLSimple,
		}),
		mdpreview.WithPreprocess(mdpreview.Preprocess{
			StripFrontMatter: cfg.StripYAMLFrontMatter,
			Critic:           mdpreview.CriticMode(cfg.StripCriticMarks),
		}),
		mdpreview.WithPage(mdpreview.Page{
			Styles:                cfg.CSS,
			AllowOverrides:        cfg.AllowCSSOverrides,
			Scripts:               cfg.JS,
			Template:              s.template,
			SkipDefaultStylesheet: cfg.SkipDefaultStylesheet,
			Meta:                  cfg.Meta,
			MathJax:               cfg.EnableMathJax,
		}),
	}
	if cfg.StyleDir != "" {
		opts = append(opts, mdpreview.WithStyleDir(cfg.StyleDir))
	}
	return mdpreview.NewConverter(opts...)
}

// hintFor returns an actionable hint for a conversion error, or "".
func hintFor(err error, cfg *config.Config) string {
	switch {
	case errors.Is(err, mdpreview.ErrRemoteAuth):
		return hints.ForRemoteAuth()
	case errors.Is(err, mdpreview.ErrRemoteRateLimit):
		return hints.ForRateLimit(cfg.GitHubOAuthToken != "")
	case errors.Is(err, mdpreview.ErrBinaryNotFound):
		return hints.ForBinaryNotFound(cfg.Parser)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, mdpreview.ErrHTMLConversion) && cfg.Parser == config.ParserGitHub:
		return hints.ForRemoteUnreachable()
	}
	return ""
}

// configHint suggests where a named config file could be created.
func configHint(err error, name string) string {
	if !errors.Is(err, config.ErrConfigNotFound) || fileutil.IsFilePath(name) {
		return ""
	}
	var searched []string
	if dir, dirErr := os.UserConfigDir(); dirErr == nil {
		searched = append(searched, filepath.Join(dir, "go-mdpreview", name+".yaml"))
	}
	return hints.ForConfigNotFound(searched)
}
