package pipeline

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestStripAttributes - Denied attributes and comments are removed
// ---------------------------------------------------------------------------

func TestStripAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "id class and handler removed",
			html: `<div id="x" class="y" onclick="z()">`,
			want: `<div>`,
		},
		{
			name: "other attributes kept",
			html: `<a href="u" style="color:red" title="t">x</a>`,
			want: `<a href="u" title="t">x</a>`,
		},
		{
			name: "case-insensitive names",
			html: `<p ID="a" Class='b' OnMouseOver="c">x</p>`,
			want: `<p>x</p>`,
		},
		{
			name: "bare and unquoted attributes",
			html: `<input class=big disabled onfocus=go()>`,
			want: `<input disabled>`,
		},
		{
			name: "self-closing tag",
			html: `<img src="a.png" class="c" />`,
			want: `<img src="a.png" />`,
		},
		{
			name: "attribute named on alone kept",
			html: `<x-el on="1">`,
			want: `<x-el on="1">`,
		},
		{
			name: "inline comment dropped",
			html: `<p>a<!-- note -->b</p>`,
			want: `<p>ab</p>`,
		},
		{
			name: "comment on its own line takes the line",
			html: "<p>a</p>\n  <!-- note -->\n<p>b</p>",
			want: "<p>a</p>\n<p>b</p>",
		},
		{
			name: "comment with CRLF line endings",
			html: "<p>a</p>\r\n<!-- note -->\r\n<p>b</p>",
			want: "<p>a</p>\r\n<p>b</p>",
		},
		{
			name: "attributes inside comments never kept",
			html: `<!-- <div class="x"> -->`,
			want: ``,
		},
		{
			name: "text untouched",
			html: `class="x" id="y"`,
			want: `class="x" id="y"`,
		},
	}

	s := &AttributeStripper{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.StripAttributes(tt.html); got != tt.want {
				t.Errorf("StripAttributes() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripAttributes_Idempotent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mixed document", "<h1 id=\"t\">T</h1>\n<!-- c -->\n<div class=\"a\" data-k=\"v\"><span style=\"x\">y</span></div>", ""},
		{"comment splits a tag", `<<!-- c -->div id="x">`, "<div>"},
		{"comment splits a comment", "<!<!-- a -->-- b -->", ""},
		{"nested splits", `<<!-- a --><!-- b -->p class="k">t</p>`, "<p>t</p>"},
	}

	s := &AttributeStripper{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			once := s.StripAttributes(tt.in)
			if twice := s.StripAttributes(once); twice != once {
				t.Errorf("second pass = %q, want %q", twice, once)
			}
			if tt.want != "" && once != tt.want {
				t.Errorf("StripAttributes(%q) = %q, want %q", tt.in, once, tt.want)
			}
			if strings.Contains(once, "<!--") {
				t.Errorf("StripAttributes(%q) = %q, comments must not survive", tt.in, once)
			}
		})
	}
}
