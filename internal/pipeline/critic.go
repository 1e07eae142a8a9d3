package pipeline

import "strings"

// criticMark describes one CriticMarkup construct.
type criticMark struct {
	open  string
	close string
}

var criticMarks = []criticMark{
	{open: "{++", close: "++}"}, // insertion
	{open: "{--", close: "--}"}, // deletion
	{open: "{==", close: "==}"}, // highlight
	{open: "{>>", close: "<<}"}, // comment
	{open: "{~~", close: "~~}"}, // substitution, split by "~>"
}

const criticSubstSep = "~>"

// ResolveCritic resolves CriticMarkup spans in text.
//
// With accept, insertions and substitution replacements are kept and
// deletions dropped; without it the reverse. Highlights keep their text and
// comments vanish either way. Each span ends at the first closing marker
// after its opening; an opening marker with no closing marker is plain text.
// Runs in time linear in the length of text.
func ResolveCritic(text string, accept bool) string {
	if !strings.Contains(text, "{") {
		return text
	}

	finders := make(map[string]*forwardFinder, len(criticMarks)+1)
	find := func(needle string, from int) int {
		f, ok := finders[needle]
		if !ok {
			f = &forwardFinder{src: text, needle: needle, at: -2}
			finders[needle] = f
		}
		return f.index(from)
	}

	var b strings.Builder
	b.Grow(len(text))
	copied := 0

	for i := 0; i < len(text); {
		k := strings.IndexByte(text[i:], '{')
		if k < 0 {
			break
		}
		i += k

		end, repl, ok := resolveSpan(text, i, accept, find)
		if !ok {
			i++
			continue
		}
		b.WriteString(text[copied:i])
		b.WriteString(repl)
		i, copied = end, end
	}

	b.WriteString(text[copied:])
	return b.String()
}

// resolveSpan resolves the span opening at offset i. It returns the offset
// just past the span and its replacement text.
func resolveSpan(text string, i int, accept bool, find func(string, int) int) (int, string, bool) {
	for _, m := range criticMarks {
		if !strings.HasPrefix(text[i:], m.open) {
			continue
		}
		body := i + len(m.open)

		if m.open == "{~~" {
			sep := find(criticSubstSep, body)
			if sep < 0 {
				return 0, "", false
			}
			end := find(m.close, sep+len(criticSubstSep))
			if end < 0 {
				return 0, "", false
			}
			if accept {
				return end + len(m.close), text[sep+len(criticSubstSep) : end], true
			}
			return end + len(m.close), text[body:sep], true
		}

		end := find(m.close, body)
		if end < 0 {
			return 0, "", false
		}
		inner := text[body:end]
		next := end + len(m.close)

		switch m.open {
		case "{++":
			if accept {
				return next, inner, true
			}
			return next, "", true
		case "{--":
			if accept {
				return next, "", true
			}
			return next, inner, true
		case "{==":
			return next, inner, true
		default:
			return next, "", true
		}
	}
	return 0, "", false
}

// forwardFinder answers "first occurrence of needle at or after from" for
// non-decreasing queries without rescanning.
type forwardFinder struct {
	src    string
	needle string
	from   int // query that produced at
	at     int // -1 when no occurrence at or after from, -2 before the first query
}

func (f *forwardFinder) index(from int) int {
	if f.at != -2 && from >= f.from {
		if f.at == -1 {
			return -1
		}
		if f.at >= from {
			return f.at
		}
	}
	k := strings.Index(f.src[from:], f.needle)
	f.from = from
	if k < 0 {
		f.at = -1
	} else {
		f.at = from + k
	}
	return f.at
}
