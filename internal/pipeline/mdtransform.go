package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/alnah/go-mdpreview/internal/yamlutil"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// YAML front matter block at the very start of the document
	frontMatterPattern = regexp.MustCompile(`(?s)\A---(.*?)---[ \t]*\n`)
)

// CriticAction selects how CriticMarkup is resolved before conversion.
type CriticAction int

const (
	CriticKeep CriticAction = iota // leave markup in the source
	CriticAccept
	CriticReject
)

// PreprocessOptions controls Markdown preprocessing.
type PreprocessOptions struct {
	StripFrontMatter bool
	References       []string // contents appended to the source, in order
	Critic           CriticAction
}

// FrontMatter holds what was extracted from a YAML front matter block.
type FrontMatter struct {
	Title string
	Meta  map[string]string
}

// Preprocessed is the result of Markdown preprocessing.
type Preprocessed struct {
	Markdown    string
	FrontMatter FrontMatter
}

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string, opts PreprocessOptions) Preprocessed
}

// SourcePreprocessor prepares Markdown source for a backend.
type SourcePreprocessor struct{}

// PreprocessMarkdown normalizes line endings, strips front matter, appends
// references and resolves CriticMarkup, in that order.
func (p *SourcePreprocessor) PreprocessMarkdown(ctx context.Context, content string, opts PreprocessOptions) Preprocessed {
	out := Preprocessed{Markdown: content}

	// Check for cancellation before processing
	if ctx.Err() != nil {
		return out
	}

	content = normalizeLineEndings(content)
	if opts.StripFrontMatter {
		out.FrontMatter, content = stripFrontMatter(content)
	}
	for _, ref := range opts.References {
		content += normalizeLineEndings(ref)
	}

	switch opts.Critic {
	case CriticAccept:
		content = ResolveCritic(content, true)
	case CriticReject:
		content = ResolveCritic(content, false)
	}

	out.Markdown = content
	return out
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// stripFrontMatter removes a leading ---...--- block. A block that is not
// valid YAML is still removed, its content is just ignored.
func stripFrontMatter(content string) (FrontMatter, string) {
	loc := frontMatterPattern.FindStringSubmatchIndex(content)
	if loc == nil {
		return FrontMatter{}, content
	}

	block := content[loc[2]:loc[3]]
	rest := content[loc[1]:]

	var raw map[string]any
	if strings.TrimSpace(block) == "" || yamlutil.Unmarshal([]byte(block), &raw) != nil {
		return FrontMatter{}, rest
	}
	return frontMatterFields(raw), rest
}

// frontMatterFields flattens front matter values into page metadata.
// Lists are joined with commas; a list title uses its first element.
// Nested mappings and null values are skipped.
func frontMatterFields(raw map[string]any) FrontMatter {
	fm := FrontMatter{Meta: make(map[string]string)}

	for key, value := range raw {
		if key == "title" {
			if list, ok := value.([]any); ok {
				value = nil
				if len(list) > 0 {
					value = list[0]
				}
			}
			if value != nil {
				fm.Title = scalarString(value)
			}
			continue
		}

		switch v := value.(type) {
		case nil, map[string]any:
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, scalarString(item))
			}
			fm.Meta[key] = strings.Join(parts, ",")
		default:
			fm.Meta[key] = scalarString(v)
		}
	}
	return fm
}

func scalarString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
