package pipeline

import "strings"

// HTMLSimplifier defines the contract for producing simplified HTML.
type HTMLSimplifier interface {
	StripAttributes(htmlContent string) string
}

// AttributeStripper removes presentation and scripting hooks from every
// start tag: id, class, style and on* event handlers. All comments are
// dropped; a comment alone on its line takes the line with it.
// Everything else is copied as written. Removing a comment can join the text
// around it into a new tag or comment, so passes repeat until nothing changes.
type AttributeStripper struct{}

// StripAttributes returns htmlContent without comments and denied attributes.
func (s *AttributeStripper) StripAttributes(htmlContent string) string {
	for {
		out := stripOnce(htmlContent)
		// Every change removes bytes, so the loop ends.
		if out == htmlContent || len(out) >= len(htmlContent) {
			return out
		}
		htmlContent = out
	}
}

func stripOnce(htmlContent string) string {
	tokens := tokenize(htmlContent)
	out := make([]byte, 0, len(htmlContent))
	skipLead := false

	for i := range tokens {
		t := &tokens[i]
		switch t.kind {
		case commentToken:
			out, skipLead = dropComment(out, tokens, i)
		case tagToken:
			kept := t.attrs[:0:0]
			for _, a := range t.attrs {
				if !isDeniedAttr(a.name) {
					kept = append(kept, a)
				}
			}
			t.attrs = kept
			out = append(out, t.String()...)
			skipLead = false
		default:
			raw := t.raw
			if skipLead {
				raw = strings.TrimLeft(raw, " \t")
				skipLead = false
			}
			out = append(out, raw...)
		}
	}
	return string(out)
}

// dropComment removes the comment at tokens[i]. When the comment is the only
// content on its line, the indentation before it and the preceding line
// break are removed from out, and skipLead tells the caller to drop the
// blanks that follow it up to the line break.
func dropComment(out []byte, tokens []token, i int) ([]byte, bool) {
	lineStart := len(out)
	for lineStart > 0 && (out[lineStart-1] == ' ' || out[lineStart-1] == '\t') {
		lineStart--
	}
	aloneBefore := lineStart == 0 || out[lineStart-1] == '\n'

	aloneAfter := true
	if i+1 < len(tokens) {
		next := tokens[i+1]
		rest := strings.TrimLeft(next.raw, " \t")
		aloneAfter = next.kind == textToken && (strings.HasPrefix(rest, "\n") || strings.HasPrefix(rest, "\r\n"))
	}

	if !aloneBefore || !aloneAfter {
		return out, false
	}

	out = out[:lineStart]
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
		if n := len(out); n > 0 && out[n-1] == '\r' {
			out = out[:n-1]
		}
	}
	return out, true
}

// deniedAttrs are removed by AttributeStripper, matched case-insensitively.
var deniedAttrs = map[string]bool{
	"id":    true,
	"class": true,
	"style": true,
}

func isDeniedAttr(name string) bool {
	lower := strings.ToLower(name)
	if deniedAttrs[lower] {
		return true
	}
	return isEventHandler(lower)
}

// isEventHandler reports whether name is on<word> (onclick, onload, ...).
func isEventHandler(name string) bool {
	if len(name) <= 2 || !strings.HasPrefix(name, "on") {
		return false
	}
	for i := 2; i < len(name); i++ {
		c := name[i]
		if !(isASCIILetter(c) || c >= '0' && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}
