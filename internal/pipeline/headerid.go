package pipeline

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html/atom"
)

var (
	commentPattern  = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
	slugDropPattern = regexp.MustCompile(`[^\p{L}\p{N}_\- ]`)
)

// HeaderAnchorer defines the contract for adding anchor ids to headers.
type HeaderAnchorer interface {
	InjectHeaderIDs(htmlContent string) string
}

// HeaderIDInjector adds anchor ids to h1-h6 tags that do not carry one.
// Ids are slugs of the header text, made unique within the document by
// numeric suffixes: first occurrence bare, then -1, -2, ...
type HeaderIDInjector struct{}

// InjectHeaderIDs returns htmlContent with ids on id-less headers.
// Headers with an explicit id are left alone and do not reserve their id.
// Headers whose text slugs to nothing get no id.
func (h *HeaderIDInjector) InjectHeaderIDs(htmlContent string) string {
	tokens := tokenize(htmlContent)
	seen := make(map[string]int)
	changed := false

	for i := range tokens {
		t := &tokens[i]
		if t.kind != tagToken || strings.HasSuffix(t.close, "/>") || !isHeading(t.atom()) || t.attr("id") >= 0 {
			continue
		}

		inner, ok := headerText(htmlContent, tokens, i)
		if !ok {
			continue
		}
		slug := Slugify(inner)
		if slug == "" {
			continue
		}

		id := slug
		if n, dup := seen[slug]; dup {
			n++
			id = slug + "-" + strconv.Itoa(n)
			seen[slug] = n
		} else {
			seen[slug] = 0
		}

		t.attrs = append(t.attrs, attribute{lead: " ", name: "id", eq: "=", quote: '"', value: id})
		changed = true
	}

	if !changed {
		return htmlContent
	}
	return render(tokens)
}

// Slugify turns header text into an anchor id: comments and tags removed, lowercased,
// everything except letters, digits, underscores, hyphens and spaces
// dropped, spaces turned into hyphens, the result percent-encoded.
func Slugify(text string) string {
	s := commentPattern.ReplaceAllString(text, "")
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	s = slugDropPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "-")
	return url.PathEscape(s)
}

func isHeading(a atom.Atom) bool {
	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// headerText returns the raw content between the opening tag tokens[i] and
// the first matching closing tag. Comments in between are never searched.
func headerText(src string, tokens []token, i int) (string, bool) {
	open := tokens[i]
	closing := "</" + strings.ToLower(open.name)
	contentStart := open.start + len(open.raw)

	for j := i + 1; j < len(tokens); j++ {
		t := tokens[j]
		if t.kind != textToken {
			continue
		}
		if at := findClosing(t.raw, closing); at >= 0 {
			return src[contentStart : t.start+at], true
		}
	}
	return "", false
}

// findClosing returns the offset of the first "</hN>" in text, matching the
// tag name case-insensitively and allowing blanks before '>'.
func findClosing(text, closing string) int {
	for at := strings.Index(text, "</"); at >= 0; {
		end := at + len(closing)
		if end <= len(text) && strings.EqualFold(text[at:end], closing) {
			rest := strings.TrimLeft(text[end:], " \t\r\n")
			if strings.HasPrefix(rest, ">") {
				return at
			}
		}
		next := strings.Index(text[at+2:], "</")
		if next < 0 {
			return -1
		}
		at += 2 + next
	}
	return -1
}
