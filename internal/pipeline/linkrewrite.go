package pipeline

import (
	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/pathclass"
	"golang.org/x/net/html/atom"
)

// PathRewriter defines the contract for rewriting asset references in HTML.
type PathRewriter interface {
	RewritePaths(htmlContent string, opts RewriteOptions) string
}

// RewriteOptions selects what a rewrite pass touches and how.
type RewriteOptions struct {
	// BasePath is the directory relative references are resolved against.
	// An empty BasePath disables the pass.
	BasePath string

	// RelativeTo is the absolute directory the output document will live in.
	// Empty means references are rewritten to absolute file:// links.
	RelativeTo string

	Images bool // rewrite img[src]
	Files  bool // rewrite a, link and script href/src
}

// LinkRewriter rewrites href and src attributes of img, a, link and script
// tags to absolute or relative form.
//
// Rewrites only references that resolve to an existing local file:
//   - URLs (http, data, mailto, ...) and fragment-only links are skipped
//   - missing files are left untouched, no path is ever invented
//   - comments are copied verbatim and never scanned
//   - quote characters of the original value are preserved
type LinkRewriter struct {
	FS       fileutil.FS
	Platform pathclass.Platform
}

// NewLinkRewriter creates a LinkRewriter reading from fsys.
func NewLinkRewriter(fsys fileutil.FS, p pathclass.Platform) *LinkRewriter {
	return &LinkRewriter{FS: fsys, Platform: p}
}

// RewritePaths rewrites eligible references in htmlContent.
// Returns the HTML unchanged when no tag kind is selected or BasePath is empty.
func (r *LinkRewriter) RewritePaths(htmlContent string, opts RewriteOptions) string {
	if opts.BasePath == "" || (!opts.Images && !opts.Files) {
		return htmlContent
	}

	return rewriteTags(htmlContent, func(t *token) bool {
		switch t.atom() {
		case atom.Img:
			if !opts.Images {
				return false
			}
		case atom.A, atom.Link, atom.Script:
			if !opts.Files {
				return false
			}
		default:
			return false
		}

		changed := false
		for i := range t.attrs {
			a := &t.attrs[i]
			if a.quote == 0 || !(a.is("href") || a.is("src")) {
				continue
			}
			if v, ok := r.rewriteValue(a.value, opts); ok && v != a.value {
				a.value = v
				changed = true
			}
		}
		return changed
	})
}

// rewriteValue returns the rewritten form of one reference.
func (r *LinkRewriter) rewriteValue(raw string, opts RewriteOptions) (string, bool) {
	d := pathclass.Classify(raw, r.Platform)
	abs, ok := resolveLocal(r.FS, d, opts.BasePath, r.Platform)
	if !ok {
		return "", false
	}

	if opts.RelativeTo != "" {
		if rel, ok := pathclass.Rel(opts.RelativeTo, abs, r.Platform); ok {
			return pathclass.RelativeRef(rel, d).String(), true
		}
		// Cross-drive targets have no relative form; keep them absolute.
	}
	return pathclass.FileURL(abs, d).String(), true
}

// resolveLocal returns the absolute, existing local path d refers to.
func resolveLocal(fsys fileutil.FS, d pathclass.Descriptor, basePath string, p pathclass.Platform) (string, bool) {
	if d.IsURL {
		return "", false
	}
	local, err := d.LocalPath(p)
	if err != nil || local == "" {
		return "", false
	}

	var abs string
	switch {
	case d.IsAbsolute || pathclass.IsAbs(local, p):
		abs = pathclass.Clean(local, p)
	case basePath == "":
		return "", false
	default:
		abs = pathclass.Join(basePath, local, p)
	}

	if !fsys.Exists(abs) {
		return "", false
	}
	return abs, true
}
