package pipeline

import (
	"context"
	"html"
	"strings"
)

// Template placeholders replaced by AssemblePage, first occurrence only.
const (
	HeadPlaceholder = "{{ HEAD }}"
	BodyPlaceholder = "{{ BODY }}"
)

// Stylesheet is either a linked (Href) or an inline (CSS) stylesheet.
type Stylesheet struct {
	Href string
	CSS  string
}

// Script is either an external (Src) or an inline (Code) script.
type Script struct {
	Src  string
	Code string
}

// Page describes the document wrapped around a converted body.
type Page struct {
	Title    string
	Meta     map[string]string // emitted sorted by name
	Styles   []Stylesheet
	Scripts  []Script
	Template string // custom document with HEAD/BODY placeholders; empty for the default
	MathJax  bool   // load MathJax for TeX math in the body
}

// mathJaxScripts configures TeX delimiters and loads MathJax from its CDN.
const mathJaxScripts = `<script>window.MathJax = {tex: {inlineMath: [['$', '$'], ['\\(', '\\)']]}};</script>
<script async src="https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"></script>
`

// PageAssembler defines the contract for wrapping a body into a document.
type PageAssembler interface {
	AssemblePage(ctx context.Context, body string, page *Page) string
}

// DocumentAssembler builds complete HTML documents.
type DocumentAssembler struct{}

// AssemblePage wraps body into a document. With a custom template the head
// and body replace the first HEAD and BODY placeholders; otherwise body is
// placed inside <article class="markdown-body">.
func (a *DocumentAssembler) AssemblePage(ctx context.Context, body string, page *Page) string {
	if page == nil {
		page = &Page{}
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return body
	}

	head := a.Head(page)

	if page.Template != "" {
		return fillTemplate(page.Template, head, body)
	}

	var b strings.Builder
	b.Grow(len(body) + len(head) + 160)
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString(head)
	b.WriteString("</head>\n<body>\n<article class=\"markdown-body\">\n")
	b.WriteString(body)
	b.WriteString("\n</article>\n</body>\n</html>\n")
	return b.String()
}

// Head renders meta tags, stylesheets, scripts and the title, one per line.
func (a *DocumentAssembler) Head(page *Page) string {
	var b strings.Builder

	for _, name := range SortedKeys(page.Meta) {
		b.WriteString(`<meta name="`)
		b.WriteString(html.EscapeString(name))
		b.WriteString(`" content="`)
		b.WriteString(html.EscapeString(page.Meta[name]))
		b.WriteString("\">\n")
	}

	for _, s := range page.Styles {
		switch {
		case s.Href != "":
			b.WriteString(`<link href="`)
			b.WriteString(html.EscapeString(s.Href))
			b.WriteString("\" rel=\"stylesheet\" type=\"text/css\">\n")
		case s.CSS != "":
			b.WriteString("<style>")
			b.WriteString(sanitizeCSS(s.CSS))
			b.WriteString("</style>\n")
		}
	}

	for _, s := range page.Scripts {
		switch {
		case s.Src != "":
			b.WriteString(`<script type="text/javascript" src="`)
			b.WriteString(html.EscapeString(s.Src))
			b.WriteString("\"></script>\n")
		case s.Code != "":
			b.WriteString("<script>")
			b.WriteString(sanitizeScript(s.Code))
			b.WriteString("</script>\n")
		}
	}

	if page.MathJax {
		b.WriteString(mathJaxScripts)
	}

	title := page.Title
	if title == "" {
		title = "untitled"
	}
	b.WriteString("<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n")

	return b.String()
}

// fillTemplate replaces the first HEAD and the first BODY placeholder of
// tmpl. Both are located in tmpl itself, so placeholder text inside head or
// body content is never substituted.
func fillTemplate(tmpl, head, body string) string {
	type slot struct {
		at      int
		marker  string
		content string
	}
	var slots []slot
	if i := strings.Index(tmpl, HeadPlaceholder); i >= 0 {
		slots = append(slots, slot{i, HeadPlaceholder, head})
	}
	if i := strings.Index(tmpl, BodyPlaceholder); i >= 0 {
		slots = append(slots, slot{i, BodyPlaceholder, body})
	}
	if len(slots) == 2 && slots[1].at < slots[0].at {
		slots[0], slots[1] = slots[1], slots[0]
	}

	var b strings.Builder
	b.Grow(len(tmpl) + len(head) + len(body))
	last := 0
	for _, s := range slots {
		b.WriteString(tmpl[last:s.at])
		b.WriteString(s.content)
		last = s.at + len(s.marker)
	}
	b.WriteString(tmpl[last:])
	return b.String()
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// sanitizeScript escapes closing script tags inside inline JavaScript.
// Only "</script" is touched so that string literals such as "</div>" survive.
func sanitizeScript(code string) string {
	if !strings.Contains(strings.ToLower(code), "</script") {
		return code
	}
	var b strings.Builder
	for i := 0; i < len(code); {
		if i+8 <= len(code) && strings.EqualFold(code[i:i+8], "</script") {
			b.WriteString(`<\/`)
			b.WriteString(code[i+2 : i+8])
			i += 8
			continue
		}
		b.WriteByte(code[i])
		i++
	}
	return b.String()
}
