//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alnah/go-mdpreview/internal/pathclass"
)

// BenchmarkGoldmarkToHTML benchmarks the built-in backend.
func BenchmarkGoldmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter()
	ctx := context.Background()

	for _, sections := range []int{10, 50, 200} {
		content := generateMixedMarkdown(sections)
		b.Run(fmt.Sprintf("sections_%d", sections), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := converter.ToHTML(ctx, content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkHTMLStages benchmarks each post-processing stage on the same
// converted document.
func BenchmarkHTMLStages(b *testing.B) {
	html, err := NewGoldmarkConverter().ToHTML(context.Background(), generateMixedMarkdown(100))
	if err != nil {
		b.Fatal(err)
	}

	fsys := memFS{"/docs/images/pic.png": []byte("png")}
	rewriter := NewLinkRewriter(fsys, pathclass.Posix)
	embedder := NewBase64Embedder(fsys, pathclass.Posix)

	stages := []struct {
		name string
		run  func(string) string
	}{
		{"tokenize", func(s string) string { return render(tokenize(s)) }},
		{"header_ids", (&HeaderIDInjector{}).InjectHeaderIDs},
		{"absolute_paths", func(s string) string {
			return rewriter.RewritePaths(s, RewriteOptions{BasePath: "/docs", Images: true, Files: true})
		}},
		{"relative_paths", func(s string) string {
			return rewriter.RewritePaths(s, RewriteOptions{BasePath: "/docs", RelativeTo: "/docs/out", Images: true, Files: true})
		}},
		{"base64", func(s string) string { return embedder.EmbedImages(s, "/docs") }},
		{"strip", (&AttributeStripper{}).StripAttributes},
	}

	for _, stage := range stages {
		b.Run(stage.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(html)))
			for i := 0; i < b.N; i++ {
				_ = stage.run(html)
			}
		})
	}
}

// BenchmarkResolveCritic benchmarks CriticMarkup resolution.
func BenchmarkResolveCritic(b *testing.B) {
	content := strings.Repeat("Some {++added++} and {--removed--} text, {~~old~>new~~}.\n", 1000)
	b.ReportAllocs()
	b.SetBytes(int64(len(content)))
	for i := 0; i < b.N; i++ {
		_ = ResolveCritic(content, true)
	}
}

func generateMixedMarkdown(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Document Title\n\n")
	sb.WriteString("Introduction paragraph with **bold** and *italic* text.\n\n")

	for i := 0; i < sections; i++ {
		sb.WriteString(fmt.Sprintf("## Section %d\n\n", i+1))
		sb.WriteString("It includes [links](https://example.com), [local](other.md) and `inline code`.\n\n")
		sb.WriteString("![picture](images/pic.png)\n\n")
		sb.WriteString("- Item one\n- Item two\n\n")

		if i%3 == 0 {
			sb.WriteString("```go\nfunc main() {\n    fmt.Println(\"Hello\")\n}\n```\n\n")
		}
		if i%5 == 0 {
			sb.WriteString("<!-- section note -->\n\n| A | B |\n|---|---|\n| 1 | 2 |\n\n")
		}
	}
	return sb.String()
}
