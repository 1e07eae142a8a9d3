package pipeline

import (
	"encoding/base64"
	"testing"

	"github.com/alnah/go-mdpreview/internal/pathclass"
)

// ---------------------------------------------------------------------------
// TestEmbedImages - Local images become data URIs
// ---------------------------------------------------------------------------

func TestEmbedImages(t *testing.T) {
	t.Parallel()

	png := []byte{0x89, 'P', 'N', 'G'}
	encoded := base64.StdEncoding.EncodeToString(png)

	fsys := memFS{
		"/docs/a.png":       png,
		"/docs/b.JPG":       png,
		"/docs/c.gif":       png,
		"/docs/d.svg":       []byte("<svg/>"),
		"/abs/e.jpeg":       png,
		"/docs/space x.png": png,
	}
	e := NewBase64Embedder(fsys, pathclass.Posix)

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "png relative to base",
			html: `<img src="a.png">`,
			want: `<img src="data:image/png;base64,` + encoded + `">`,
		},
		{
			name: "extension matched case-insensitively",
			html: `<img src="b.JPG">`,
			want: `<img src="data:image/jpeg;base64,` + encoded + `">`,
		},
		{
			name: "gif",
			html: `<img src="c.gif">`,
			want: `<img src="data:image/gif;base64,` + encoded + `">`,
		},
		{
			name: "absolute jpeg",
			html: `<img src="/abs/e.jpeg">`,
			want: `<img src="data:image/jpeg;base64,` + encoded + `">`,
		},
		{
			name: "file URL",
			html: `<img src="file:///docs/a.png">`,
			want: `<img src="data:image/png;base64,` + encoded + `">`,
		},
		{
			name: "percent-encoded name",
			html: `<img src="space%20x.png">`,
			want: `<img src="data:image/png;base64,` + encoded + `">`,
		},
		{
			name: "single quotes kept",
			html: `<img src='a.png' alt='x'>`,
			want: `<img src='data:image/png;base64,` + encoded + `' alt='x'>`,
		},
		{
			name: "unsupported type untouched",
			html: `<img src="d.svg">`,
			want: `<img src="d.svg">`,
		},
		{
			name: "missing file untouched",
			html: `<img src="missing.png">`,
			want: `<img src="missing.png">`,
		},
		{
			name: "remote image untouched",
			html: `<img src="https://example.com/a.png">`,
			want: `<img src="https://example.com/a.png">`,
		},
		{
			name: "existing data URI untouched",
			html: `<img src="data:image/png;base64,AAAA">`,
			want: `<img src="data:image/png;base64,AAAA">`,
		},
		{
			name: "anchors not embedded",
			html: `<a href="a.png">a</a>`,
			want: `<a href="a.png">a</a>`,
		},
		{
			name: "bad image does not block others",
			html: `<img src="missing.png"><img src="a.png">`,
			want: `<img src="missing.png"><img src="data:image/png;base64,` + encoded + `">`,
		},
		{
			name: "commented image untouched",
			html: `<!-- <img src="a.png"> -->`,
			want: `<!-- <img src="a.png"> -->`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := e.EmbedImages(tt.html, "/docs"); got != tt.want {
				t.Errorf("EmbedImages() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmbedImages_UnreadableFile(t *testing.T) {
	t.Parallel()

	e := NewBase64Embedder(failingReadFS{}, pathclass.Posix)
	in := `<img src="a.png">`
	if got := e.EmbedImages(in, "/docs"); got != in {
		t.Errorf("EmbedImages() = %q, want unchanged", got)
	}
}

// failingReadFS reports every file as present but fails to read it.
type failingReadFS struct{}

func (failingReadFS) Exists(string) bool { return true }

func (failingReadFS) ReadFile(string) ([]byte, error) {
	return nil, errReadFailed
}
