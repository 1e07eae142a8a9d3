package mdpreview

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-mdpreview/internal/assets"
	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/pathclass"
	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.SourcePreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.RemoteConverter)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.ExternalConverter)(nil)
	_ pipeline.HeaderAnchorer       = (*pipeline.HeaderIDInjector)(nil)
	_ pipeline.PathRewriter         = (*pipeline.LinkRewriter)(nil)
	_ pipeline.ImageEmbedder        = (*pipeline.Base64Embedder)(nil)
	_ pipeline.HTMLSimplifier       = (*pipeline.AttributeStripper)(nil)
	_ pipeline.PageAssembler        = (*pipeline.DocumentAssembler)(nil)
	_ FS                            = fileutil.OSFS{}
)

// Converter orchestrates the Markdown-to-HTML preview pipeline.
// A Converter holds no per-document state and is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	fs            FS
	styles        assets.AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	anchorer      pipeline.HeaderAnchorer
	rewriter      pipeline.PathRewriter
	embedder      pipeline.ImageEmbedder
	simplifier    pipeline.HTMLSimplifier
	assembler     pipeline.PageAssembler
}

// NewConverter creates a Converter. Without options it renders with the
// built-in backend, rewrites local references to absolute file:// links and
// wraps the body in a page using the default stylesheet.
// Returns error if the backend, modes or style directory are invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:  defaultTimeout,
			backend:  BuiltIn(),
			post:     DefaultPostProcess(),
			page:     DefaultPage(),
			platform: pathclass.Host(),
		},
		fs:           fileutil.OSFS{},
		preprocessor: &pipeline.SourcePreprocessor{},
		anchorer:     &pipeline.HeaderIDInjector{},
		simplifier:   &pipeline.AttributeStripper{},
		assembler:    &pipeline.DocumentAssembler{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.backend.Validate(); err != nil {
		return nil, err
	}
	if err := c.cfg.post.Validate(); err != nil {
		return nil, err
	}
	if err := c.cfg.pre.Validate(); err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(c.cfg.styleDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStyleDir, err)
	}
	c.styles = resolver

	// Stages may be injected by tests
	if c.htmlConverter == nil {
		c.htmlConverter = c.cfg.backend.converter()
	}
	if c.rewriter == nil {
		c.rewriter = pipeline.NewLinkRewriter(c.fs, c.cfg.platform)
	}
	if c.embedder == nil {
		c.embedder = pipeline.NewBase64Embedder(c.fs, c.cfg.platform)
	}

	return c, nil
}

// Backend returns the backend the Converter renders with.
func (c *Converter) Backend() Backend {
	return c.cfg.backend
}

// Convert runs the full pipeline: preprocessing, backend rendering, HTML
// post-processing and page assembly.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	action, _ := criticAction(c.cfg.pre.Critic)
	pre := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown, pipeline.PreprocessOptions{
		StripFrontMatter: c.cfg.pre.StripFrontMatter,
		References:       input.References,
		Critic:           action,
	})
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	body, err := c.htmlConverter.ToHTML(ctx, pre.Markdown)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML with %s backend: %w", c.cfg.backend, err)
	}

	loc := c.locate(input)
	body = c.postProcess(body, loc)
	title := documentTitle(pre.FrontMatter.Title, input, loc)

	if c.cfg.post.Simple {
		return &Result{HTML: []byte(body), Title: title}, nil
	}

	page := c.buildPage(loc, pre.FrontMatter, title)
	doc := c.assembler.AssemblePage(ctx, body, page)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return &Result{HTML: []byte(doc), Title: title}, nil
}

// PostProcess runs only the HTML stages on htmlContent rendered elsewhere.
// input.Markdown is ignored; its paths drive reference resolution.
func (c *Converter) PostProcess(input Input, htmlContent string) string {
	return c.postProcess(htmlContent, c.locate(input))
}

// locations holds the absolute, slash-separated paths of one conversion.
type locations struct {
	source     string // Markdown file, may be empty
	base       string // directory relative references resolve against
	relativeTo string // directory of the output, empty when unknown
}

// locate resolves the input paths. The output directory defaults to the
// source's because the preview is written next to it.
func (c *Converter) locate(input Input) locations {
	loc := locations{source: c.absolute(input.SourcePath)}

	loc.base = c.absolute(input.BasePath)
	if loc.base == "" && loc.source != "" {
		loc.base = pathclass.Dir(loc.source, c.cfg.platform)
	}

	if dest := c.absolute(input.DestinationPath); dest != "" {
		loc.relativeTo = pathclass.Dir(dest, c.cfg.platform)
	} else if loc.source != "" {
		loc.relativeTo = pathclass.Dir(loc.source, c.cfg.platform)
	}

	return loc
}

// absolute makes p absolute and slash-separated. Relative paths are only
// resolved against the working directory when targeting the host platform.
func (c *Converter) absolute(p string) string {
	if p == "" {
		return ""
	}
	p = fileutil.ExpandHome(p)
	if c.cfg.platform == pathclass.Host() && !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return pathclass.Clean(p, c.cfg.platform)
}

// postProcess applies the HTML stages in order: header ids, absolute path
// pass, relative path pass, image embedding, attribute stripping.
func (c *Converter) postProcess(htmlContent string, loc locations) string {
	post := c.cfg.post

	if post.HeaderIDs {
		htmlContent = c.anchorer.InjectHeaderIDs(htmlContent)
	}

	images := normalizeMode(post.ImagePaths)
	files := normalizeMode(post.FilePaths)

	htmlContent = c.rewriter.RewritePaths(htmlContent, pipeline.RewriteOptions{
		BasePath: loc.base,
		Images:   images == PathAbsolute,
		Files:    files == PathAbsolute,
	})
	htmlContent = c.rewriter.RewritePaths(htmlContent, pipeline.RewriteOptions{
		BasePath:   loc.base,
		RelativeTo: loc.relativeTo,
		Images:     images == PathRelative,
		Files:      files == PathRelative,
	})

	if images == PathBase64 {
		htmlContent = c.embedder.EmbedImages(htmlContent, loc.base)
	}

	if post.Simple {
		htmlContent = c.simplifier.StripAttributes(htmlContent)
	}

	return htmlContent
}
