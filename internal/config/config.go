package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpreview/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // File paths and URLs
	MaxTokenLength     = 255  // OAuth token
	MaxMetaNameLength  = 100  // <meta name>
	MaxMetaValueLength = 500  // <meta content>
	MaxParserLength    = 50   // Parser name
)

// Parser names that do not need a markdownBinaryMap entry.
const (
	ParserBuiltIn = "builtin"
	ParserGitHub  = "github"
)

// Valid values for the conversion mode keys.
var (
	imageModes  = []string{"absolute", "relative", "base64", "none"}
	fileModes   = []string{"absolute", "relative", "none"}
	criticModes = []string{"accept", "reject", "none"}
	githubModes = []string{"gfm", "markdown"}
)

// Config holds the preview settings.
type Config struct {
	Parser                string              `yaml:"parser"`                // builtin, github, or a markdownBinaryMap key
	CSS                   []string            `yaml:"css"`                   // "default", URLs, or stylesheet files
	StyleDir              string              `yaml:"styleDir"`              // Directory overriding embedded stylesheets
	AllowCSSOverrides     bool                `yaml:"allowCSSOverrides"`     // Inline <doc>.css next to the source
	JS                    []string            `yaml:"js"`                    // Absolute paths are inlined, others linked
	SkipDefaultStylesheet bool                `yaml:"skipDefaultStylesheet"` // No stylesheets with a custom template
	HTMLTemplate          string              `yaml:"htmlTemplate"`          // File with {{ HEAD }} and {{ BODY }}
	HTMLSimple            bool                `yaml:"htmlSimple"`            // Bare body, no ids, classes, styles, comments
	ImagePathConversion   string              `yaml:"imagePathConversion"`   // absolute, relative, base64, none
	FilePathConversions   string              `yaml:"filePathConversions"`   // absolute, relative, none
	StripCriticMarks      string              `yaml:"stripCriticMarks"`      // accept, reject, none
	StripYAMLFrontMatter  bool                `yaml:"stripYAMLFrontMatter"`  // Remove and apply front matter
	GitHubMode            string              `yaml:"githubMode"`            // gfm or markdown
	GitHubOAuthToken      string              `yaml:"githubOAuthToken"`      // Raises the API rate limit
	GitHubInjectHeaderIDs bool                `yaml:"githubInjectHeaderIDs"` // Add ids to headers lacking one
	MarkdownBinaryMap     map[string][]string `yaml:"markdownBinaryMap"`     // Parser name -> argv
	BasePath              string              `yaml:"basePath"`              // Overrides the source directory
	Destination           string              `yaml:"destination"`           // Output file for relative links
	OutputDir             string              `yaml:"outputDir"`             // Default output directory
	References            []string            `yaml:"references"`            // Files appended to every document
	Meta                  map[string]string   `yaml:"meta"`                  // Extra <meta> tags
	EnableMathJax         bool                `yaml:"enableMathJax"`         // Load MathJax for TeX math
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Parser:              ParserBuiltIn,
		CSS:                 []string{"default"},
		ImagePathConversion: "absolute",
		FilePathConversions: "absolute",
		StripCriticMarks:    "none",
		GitHubMode:          "gfm",
	}
}

// Validate checks enumerated values and field lengths.
// Called automatically by LoadConfig, but can be called manually for users
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	if err := validateFieldLength("parser", c.Parser, MaxParserLength); err != nil {
		return err
	}
	if c.Parser != "" && c.Parser != ParserBuiltIn && c.Parser != ParserGitHub {
		argv, ok := c.MarkdownBinaryMap[c.Parser]
		if !ok {
			return fmt.Errorf("%w: parser %q is not builtin, github, or a markdownBinaryMap entry", ErrInvalidValue, c.Parser)
		}
		if len(argv) == 0 || argv[0] == "" {
			return fmt.Errorf("%w: markdownBinaryMap.%s has no command", ErrInvalidValue, c.Parser)
		}
	}

	if err := validateOneOf("imagePathConversion", c.ImagePathConversion, imageModes); err != nil {
		return err
	}
	if err := validateOneOf("filePathConversions", c.FilePathConversions, fileModes); err != nil {
		return err
	}
	if err := validateOneOf("stripCriticMarks", c.StripCriticMarks, criticModes); err != nil {
		return err
	}
	if err := validateOneOf("githubMode", c.GitHubMode, githubModes); err != nil {
		return err
	}

	if err := validateFieldLength("githubOAuthToken", c.GitHubOAuthToken, MaxTokenLength); err != nil {
		return err
	}

	paths := map[string]string{
		"styleDir":     c.StyleDir,
		"htmlTemplate": c.HTMLTemplate,
		"basePath":     c.BasePath,
		"destination":  c.Destination,
		"outputDir":    c.OutputDir,
	}
	for name, value := range paths {
		if err := validateFieldLength(name, value, MaxPathLength); err != nil {
			return err
		}
	}
	for i, css := range c.CSS {
		if err := validateFieldLength(fmt.Sprintf("css[%d]", i), css, MaxPathLength); err != nil {
			return err
		}
	}
	for i, js := range c.JS {
		if err := validateFieldLength(fmt.Sprintf("js[%d]", i), js, MaxPathLength); err != nil {
			return err
		}
	}
	for i, ref := range c.References {
		if err := validateFieldLength(fmt.Sprintf("references[%d]", i), ref, MaxPathLength); err != nil {
			return err
		}
	}

	for name, value := range c.Meta {
		if name == "" {
			return fmt.Errorf("%w: meta name cannot be empty", ErrInvalidValue)
		}
		if err := validateFieldLength("meta name", name, MaxMetaNameLength); err != nil {
			return err
		}
		if err := validateFieldLength("meta."+name, value, MaxMetaValueLength); err != nil {
			return err
		}
	}

	return nil
}

// validateOneOf accepts an empty value (meaning the default) or one of allowed.
func validateOneOf(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (want one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mdpreview/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-mdpreview", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
