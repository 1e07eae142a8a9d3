package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// backendFlags selects and configures the Markdown renderer.
type backendFlags struct {
	parser     string
	githubMode string
	timeout    string
}

// pathFlags controls reference rewriting.
type pathFlags struct {
	images      string
	files       string
	basePath    string
	destination string
}

// contentFlags controls Markdown and HTML transformations.
type contentFlags struct {
	critic           string
	stripFrontMatter bool
	headerIDs        bool
	simple           bool
}

// pageFlags controls page assembly.
type pageFlags struct {
	css       []string
	js        []string
	template  string
	styleDir  string
	noStyle   bool
	overrides bool
	mathjax   bool
}

// convertFlags holds all flags for the convert and watch commands.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	preview bool
	backend backendFlags
	paths   pathFlags
	content contentFlags
	page    pageFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addBackendFlags adds renderer flags to a FlagSet.
func addBackendFlags(fs *flag.FlagSet, f *backendFlags) {
	fs.StringVarP(&f.parser, "parser", "p", "", "renderer: builtin, github, or a markdownBinaryMap name")
	fs.StringVar(&f.githubMode, "github-mode", "", "GitHub API mode: gfm, markdown")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout per file (e.g., 30s, 2m)")
}

// addPathFlags adds reference rewriting flags to a FlagSet.
func addPathFlags(fs *flag.FlagSet, f *pathFlags) {
	fs.StringVar(&f.images, "images", "", "image paths: absolute, relative, base64, none")
	fs.StringVar(&f.files, "files", "", "link/script paths: absolute, relative, none")
	fs.StringVar(&f.basePath, "base-path", "", "directory relative references resolve against")
	fs.StringVar(&f.destination, "destination", "", "output file relative paths are computed from")
}

// addContentFlags adds transformation flags to a FlagSet.
func addContentFlags(fs *flag.FlagSet, f *contentFlags) {
	fs.StringVar(&f.critic, "critic", "", "CriticMarkup: accept, reject, none")
	fs.BoolVar(&f.stripFrontMatter, "strip-front-matter", false, "remove YAML front matter and use its title and meta")
	fs.BoolVar(&f.headerIDs, "header-ids", false, "add ids to headers without one")
	fs.BoolVar(&f.simple, "simple", false, "bare HTML without ids, classes, styles, comments or page")
}

// addPageFlags adds page assembly flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringArrayVar(&f.css, "css", nil, "stylesheet: default, URL, file or style name (repeatable)")
	fs.StringArrayVar(&f.js, "js", nil, "script path or URL (repeatable)")
	fs.StringVar(&f.template, "template", "", "HTML template file with {{ HEAD }} and {{ BODY }}")
	fs.StringVar(&f.styleDir, "style-dir", "", "directory of <name>.css stylesheets")
	fs.BoolVar(&f.noStyle, "no-style", false, "no stylesheets")
	fs.BoolVar(&f.overrides, "css-overrides", false, "inline <document>.css when it exists")
	fs.BoolVar(&f.mathjax, "mathjax", false, "load MathJax for TeX math")
}

// registerConvertFlags adds every convert and watch flag to fs.
// Shell completion reads the same registration.
func registerConvertFlags(fs *flag.FlagSet, f *convertFlags) {
	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.preview, "preview", false, "write to a stable file in the temp directory")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addBackendFlags(fs, &f.backend)
	addPathFlags(fs, &f.paths)
	addContentFlags(fs, &f.content)
	addPageFlags(fs, &f.page)
}

// parseConvertFlags parses convert or watch flags and returns positional args.
func parseConvertFlags(name string, args []string, usage func(io.Writer), stderr io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &convertFlags{}
	registerConvertFlags(fs, f)

	fs.Usage = func() { usage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
