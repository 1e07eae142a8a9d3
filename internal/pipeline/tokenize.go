package pipeline

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// tokenKind classifies a span of HTML source.
type tokenKind int

const (
	textToken tokenKind = iota
	commentToken
	tagToken
)

// token is one span of HTML source. Concatenating the raw text of every
// token reproduces the input byte for byte.
type token struct {
	kind  tokenKind
	raw   string
	start int // byte offset of raw in the source

	// Start tags only.
	name  string
	attrs []attribute
	close string // whitespace, optional '/', and '>'
}

// attribute is one attribute of a start tag, split so that it can be
// reassembled exactly as written.
type attribute struct {
	lead  string // whitespace before the name
	name  string
	eq    string // '=' with its surrounding whitespace; empty for bare attributes
	quote byte   // '"' or '\'' for quoted values, 0 otherwise
	value string // value without quotes
}

// String reassembles the attribute.
func (a attribute) String() string {
	switch {
	case a.eq == "":
		return a.lead + a.name
	case a.quote == 0:
		return a.lead + a.name + a.eq + a.value
	default:
		q := string(a.quote)
		return a.lead + a.name + a.eq + q + a.value + q
	}
}

// is reports whether the attribute has the given lowercase name.
func (a attribute) is(name string) bool {
	return strings.EqualFold(a.name, name)
}

// String reassembles the token. For an unmodified tag this equals raw.
func (t *token) String() string {
	if t.kind != tagToken {
		return t.raw
	}
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(t.name)
	for _, a := range t.attrs {
		b.WriteString(a.String())
	}
	b.WriteString(t.close)
	return b.String()
}

// atom returns the tag's atom, or 0 for unknown tag names.
func (t *token) atom() atom.Atom {
	return atom.Lookup([]byte(strings.ToLower(t.name)))
}

// attr returns the index of the first attribute with the given name, or -1.
func (t *token) attr(name string) int {
	for i, a := range t.attrs {
		if a.is(name) {
			return i
		}
	}
	return -1
}

// tokenize splits src into text, comment and start-tag tokens in a single
// left-to-right pass. Anything that does not scan as a well-formed start tag
// or comment stays text, so the tokenizer never fails.
//
// Comments are recognized before tags: nothing inside <!-- --> is ever
// reported as a tag. An unterminated comment runs to the end of the input.
func tokenize(src string) []token {
	s := &scanner{src: src}
	var tokens []token
	textStart := 0

	flushText := func(end int) {
		if end > textStart {
			tokens = append(tokens, token{kind: textToken, raw: src[textStart:end], start: textStart})
		}
	}

	for s.pos < len(src) {
		i := strings.IndexByte(src[s.pos:], '<')
		if i < 0 {
			break
		}
		lt := s.pos + i

		if strings.HasPrefix(src[lt:], "<!--") {
			end := strings.Index(src[lt+4:], "-->")
			if end < 0 {
				end = len(src)
			} else {
				end = lt + 4 + end + 3
			}
			flushText(lt)
			tokens = append(tokens, token{kind: commentToken, raw: src[lt:end], start: lt})
			s.pos, textStart = end, end
			continue
		}

		if tok, ok := s.startTag(lt); ok {
			flushText(lt)
			tokens = append(tokens, tok)
			textStart = s.pos
			continue
		}

		s.pos = lt + 1
	}

	flushText(len(src))
	return tokens
}

// render concatenates tokens back into HTML.
func render(tokens []token) string {
	var b strings.Builder
	for i := range tokens {
		b.WriteString(tokens[i].String())
	}
	return b.String()
}

// rewriteTags copies src, replacing every start tag for which fn reports a
// change. Comments and text are copied verbatim.
func rewriteTags(src string, fn func(t *token) bool) string {
	tokens := tokenize(src)
	changed := false
	for i := range tokens {
		if tokens[i].kind == tagToken && fn(&tokens[i]) {
			changed = true
		}
	}
	if !changed {
		return src
	}
	return render(tokens)
}

// scanner holds state shared across start-tag attempts.
type scanner struct {
	src string
	pos int

	// Smallest offset from which a quote character is known not to occur
	// again, so repeated attempts on unterminated values do not rescan the
	// input. Zero means unknown.
	noDoubleFrom int
	noSingleFrom int
}

// startTag scans a start tag beginning at the '<' at offset lt.
// On success it advances s.pos past the tag.
func (s *scanner) startTag(lt int) (token, bool) {
	src := s.src
	i := lt + 1
	if i >= len(src) || !isASCIILetter(src[i]) {
		return token{}, false
	}

	nameEnd := i + 1
	for nameEnd < len(src) && isTagNameByte(src[nameEnd]) {
		nameEnd++
	}
	tok := token{kind: tagToken, start: lt, name: src[i:nameEnd]}
	i = nameEnd

	afterQuoted := false
	for {
		wsStart := i
		for i < len(src) && isSpace(src[i]) {
			i++
		}
		ws := src[wsStart:i]
		if i >= len(src) {
			return token{}, false
		}

		if src[i] == '>' {
			tok.close = ws + ">"
			i++
			break
		}
		if src[i] == '/' && i+1 < len(src) && src[i+1] == '>' {
			tok.close = ws + "/>"
			i += 2
			break
		}
		if ws == "" && !afterQuoted {
			return token{}, false
		}

		a, next, ok := s.attribute(i)
		if !ok {
			return token{}, false
		}
		a.lead = ws
		tok.attrs = append(tok.attrs, a)
		afterQuoted = a.quote != 0
		i = next
	}

	tok.raw = src[lt:i]
	s.pos = i
	return tok, true
}

// attribute scans one name[=value] pair starting at offset i.
func (s *scanner) attribute(i int) (attribute, int, bool) {
	src := s.src
	start := i
	for i < len(src) && isAttrNameByte(src[i]) {
		i++
	}
	if i == start {
		return attribute{}, 0, false
	}
	a := attribute{name: src[start:i]}

	j := i
	for j < len(src) && isSpace(src[j]) {
		j++
	}
	if j >= len(src) || src[j] != '=' {
		// Bare attribute; trailing whitespace belongs to the next lead.
		return a, i, true
	}
	j++
	for j < len(src) && isSpace(src[j]) {
		j++
	}
	a.eq = src[i:j]
	if j >= len(src) {
		return attribute{}, 0, false
	}

	switch q := src[j]; q {
	case '"', '\'':
		end, ok := s.closingQuote(j+1, q)
		if !ok {
			return attribute{}, 0, false
		}
		a.quote = q
		a.value = src[j+1 : end]
		return a, end + 1, true
	default:
		k := j
		for k < len(src) && !isSpace(src[k]) && src[k] != '>' && src[k] != '"' && src[k] != '\'' {
			k++
		}
		if k == j {
			return attribute{}, 0, false
		}
		a.value = src[j:k]
		return a, k, true
	}
}

func (s *scanner) closingQuote(from int, q byte) (int, bool) {
	none := &s.noDoubleFrom
	if q == '\'' {
		none = &s.noSingleFrom
	}
	if *none > 0 && from >= *none {
		return 0, false
	}
	k := strings.IndexByte(s.src[from:], q)
	if k < 0 {
		if *none == 0 || from < *none {
			*none = from
		}
		return 0, false
	}
	return from + k, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isTagNameByte(c byte) bool {
	return isASCIILetter(c) || c >= '0' && c <= '9' || c == ':' || c == '.' || c == '-' || c == '_'
}

func isAttrNameByte(c byte) bool {
	return !isSpace(c) && c != '"' && c != '\'' && c != '>' && c != '/' && c != '=' && c != '<'
}
