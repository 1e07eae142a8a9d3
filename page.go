package mdpreview

import (
	"maps"
	"path"
	"strings"

	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/pathclass"
	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// buildPage collects the head content for one document.
func (c *Converter) buildPage(loc locations, fm pipeline.FrontMatter, title string) *pipeline.Page {
	cfg := c.cfg.page
	page := &pipeline.Page{
		Title:    title,
		Template: cfg.Template,
		Meta:     mergeMeta(cfg.Meta, fm.Meta),
		MathJax:  cfg.MathJax,
	}

	if cfg.Template == "" || !cfg.SkipDefaultStylesheet {
		for _, entry := range cfg.Styles {
			if sheet, ok := c.resolveStyle(entry, loc.base); ok {
				page.Styles = append(page.Styles, sheet)
			}
		}
	}

	if cfg.AllowOverrides && loc.source != "" {
		override := strings.TrimSuffix(loc.source, path.Ext(loc.source)) + ".css"
		if data, err := c.fs.ReadFile(override); err == nil {
			page.Styles = append(page.Styles, pipeline.Stylesheet{CSS: string(data)})
		}
	}

	for _, entry := range cfg.Scripts {
		if script, ok := c.resolveScript(entry); ok {
			page.Scripts = append(page.Scripts, script)
		}
	}

	return page
}

// resolveStyle turns a Page.Styles entry into a stylesheet.
// Entries that resolve to nothing are skipped.
func (c *Converter) resolveStyle(entry, base string) (pipeline.Stylesheet, bool) {
	entry = strings.TrimSpace(entry)
	switch {
	case entry == "":
		return pipeline.Stylesheet{}, false
	case entry == DefaultStyle:
		css, err := c.styles.LoadStyle(c.cfg.backend.defaultStyle())
		if err != nil {
			return pipeline.Stylesheet{}, false
		}
		return pipeline.Stylesheet{CSS: css}, true
	case fileutil.IsURL(entry):
		return pipeline.Stylesheet{Href: entry}, true
	case fileutil.IsFilePath(entry) || strings.HasSuffix(strings.ToLower(entry), ".css"):
		data, ok := c.readLocal(entry, base)
		if !ok {
			return pipeline.Stylesheet{}, false
		}
		return pipeline.Stylesheet{CSS: data}, true
	default:
		css, err := c.styles.LoadStyle(entry)
		if err != nil {
			return pipeline.Stylesheet{}, false
		}
		return pipeline.Stylesheet{CSS: css}, true
	}
}

// resolveScript turns a Page.Scripts entry into a script. Absolute paths to
// readable files are inlined; everything else is referenced as is.
func (c *Converter) resolveScript(entry string) (pipeline.Script, bool) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return pipeline.Script{}, false
	}
	if fileutil.IsURL(entry) {
		return pipeline.Script{Src: entry}, true
	}

	local := pathclass.ToSlash(fileutil.ExpandHome(entry), c.cfg.platform)
	if pathclass.IsAbs(local, c.cfg.platform) {
		if data, err := c.fs.ReadFile(pathclass.Clean(local, c.cfg.platform)); err == nil {
			return pipeline.Script{Code: string(data)}, true
		}
	}
	return pipeline.Script{Src: entry}, true
}

// readLocal reads a file given as an absolute path or relative to base.
func (c *Converter) readLocal(p, base string) (string, bool) {
	p = pathclass.ToSlash(fileutil.ExpandHome(p), c.cfg.platform)
	if !pathclass.IsAbs(p, c.cfg.platform) {
		if base == "" {
			return "", false
		}
		p = pathclass.Join(base, p, c.cfg.platform)
	}
	data, err := c.fs.ReadFile(pathclass.Clean(p, c.cfg.platform))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// mergeMeta copies configured meta tags and overlays front matter values.
func mergeMeta(configured, frontMatter map[string]string) map[string]string {
	if len(configured) == 0 && len(frontMatter) == 0 {
		return nil
	}
	meta := make(map[string]string, len(configured)+len(frontMatter))
	maps.Copy(meta, configured)
	maps.Copy(meta, frontMatter)
	return meta
}

// documentTitle picks the front matter title, then the input title, then
// the source file name. Empty lets the page fall back to "untitled".
func documentTitle(frontMatter string, input Input, loc locations) string {
	if frontMatter != "" {
		return frontMatter
	}
	if input.Title != "" {
		return input.Title
	}
	if loc.source != "" {
		name := path.Base(loc.source)
		return strings.TrimSuffix(name, path.Ext(name))
	}
	return ""
}
