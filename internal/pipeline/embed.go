package pipeline

import (
	"encoding/base64"
	"path"
	"strings"

	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/pathclass"
	"golang.org/x/net/html/atom"
)

// embeddableTypes maps lowercase file extensions to the MIME type used in
// data URIs.
var embeddableTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// ImageEmbedder defines the contract for inlining images into HTML.
type ImageEmbedder interface {
	EmbedImages(htmlContent, basePath string) string
}

// Base64Embedder replaces local image references with base64 data URIs so
// the document is self-contained.
type Base64Embedder struct {
	FS       fileutil.FS
	Platform pathclass.Platform
}

// NewBase64Embedder creates a Base64Embedder reading from fsys.
func NewBase64Embedder(fsys fileutil.FS, p pathclass.Platform) *Base64Embedder {
	return &Base64Embedder{FS: fsys, Platform: p}
}

// EmbedImages inlines every img src that resolves to a PNG, JPEG or GIF file.
// Remote, already embedded, missing, unreadable or unsupported images are
// left as they are; one bad image never affects the others.
func (e *Base64Embedder) EmbedImages(htmlContent, basePath string) string {
	return rewriteTags(htmlContent, func(t *token) bool {
		if t.atom() != atom.Img {
			return false
		}

		changed := false
		for i := range t.attrs {
			a := &t.attrs[i]
			if a.quote == 0 || !a.is("src") {
				continue
			}
			if uri, ok := e.dataURI(a.value, basePath); ok {
				a.value = uri
				changed = true
			}
		}
		return changed
	})
}

// dataURI reads the image referenced by raw and encodes it.
func (e *Base64Embedder) dataURI(raw, basePath string) (string, bool) {
	d := pathclass.Classify(raw, e.Platform)
	abs, ok := resolveLocal(e.FS, d, basePath, e.Platform)
	if !ok {
		return "", false
	}

	mime, ok := embeddableTypes[strings.ToLower(path.Ext(abs))]
	if !ok {
		return "", false
	}

	data, err := e.FS.ReadFile(abs)
	if err != nil {
		return "", false
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), true
}
