package pathclass

import (
	"net/url"
	"path"
	"strings"
)

// LocalPath returns the percent-decoded filesystem path of d, using forward
// slashes. It fails when the path carries an invalid escape sequence.
func (d Descriptor) LocalPath(p Platform) (string, error) {
	decoded, err := url.PathUnescape(d.Path)
	if err != nil {
		return "", err
	}
	return ToSlash(decoded, p), nil
}

// ToSlash converts Windows separators to forward slashes.
// POSIX paths are returned unchanged: a backslash is a valid file name byte there.
func ToSlash(s string, p Platform) string {
	if p == Windows {
		return strings.ReplaceAll(s, `\`, "/")
	}
	return s
}

// HasDrive reports whether s starts with a drive letter followed by a
// separator (C:/ or C:\).
func HasDrive(s string) bool {
	return len(s) >= 3 && isLetter(s[0]) && s[1] == ':' && (s[2] == '/' || s[2] == '\\')
}

// IsAbs reports whether the slash-separated path s is absolute on platform p.
func IsAbs(s string, p Platform) bool {
	if p == Windows {
		return HasDrive(s) || strings.HasPrefix(s, "//")
	}
	return strings.HasPrefix(s, "/")
}

// Clean normalizes a slash-separated path. UNC prefixes survive cleaning.
func Clean(s string, p Platform) string {
	s = ToSlash(s, p)
	if p == Windows && strings.HasPrefix(s, "//") {
		return "/" + path.Clean(s[1:])
	}
	return path.Clean(s)
}

// Join resolves target against base. An absolute target is only cleaned.
func Join(base, target string, p Platform) string {
	target = ToSlash(target, p)
	if IsAbs(target, p) {
		return Clean(target, p)
	}
	return Clean(ToSlash(base, p)+"/"+target, p)
}

// Dir returns the directory part of a slash-separated path. The root of a
// drive keeps its trailing slash.
func Dir(s string, p Platform) string {
	d := Join(s, "..", p)
	if p == Windows && len(d) == 2 && d[1] == ':' && isLetter(d[0]) {
		return d + "/"
	}
	return d
}

// Rel returns the path of target relative to the directory fromDir.
// Both arguments must be absolute. On Windows the conversion only happens
// when both paths share a drive letter (case-insensitive) or both are UNC
// paths; otherwise ok is false and the caller should keep the absolute form.
func Rel(fromDir, target string, p Platform) (rel string, ok bool) {
	fromDir = Clean(fromDir, p)
	target = Clean(target, p)

	if !IsAbs(fromDir, p) || !IsAbs(target, p) {
		return "", false
	}
	if p == Windows && !sameRoot(fromDir, target) {
		return "", false
	}

	from := components(fromDir)
	to := components(target)

	common := 0
	for common < len(from) && common < len(to) && sameComponent(from[common], to[common], p) {
		common++
	}

	parts := make([]string, 0, len(from)-common+len(to)-common)
	for i := common; i < len(from); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, to[common:]...)

	if len(parts) == 0 {
		return ".", true
	}
	return strings.Join(parts, "/"), true
}

// sameRoot reports whether two Windows paths live on the same drive, or are
// both UNC paths.
func sameRoot(a, b string) bool {
	if strings.HasPrefix(a, "//") && strings.HasPrefix(b, "//") {
		return true
	}
	return HasDrive(a) && HasDrive(b) && strings.EqualFold(a[:1], b[:1])
}

func sameComponent(a, b string, p Platform) bool {
	if p == Windows {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func components(s string) []string {
	var out []string
	for _, c := range strings.Split(s, "/") {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Encode percent-encodes a slash-separated path for use in an href or src
// attribute. Unreserved characters and slashes are kept, as is the colon of
// a leading drive letter.
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldKeep(c) || (c == ':' && i == 1 && isLetter(s[0])) || (c == ':' && i == 2 && s[0] == '/' && isLetter(s[1])) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}

const hexDigits = "0123456789ABCDEF"

func shouldKeep(c byte) bool {
	switch {
	case isLetter(c), c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '~', '/':
		return true
	}
	return false
}

// FileURL returns a file:// descriptor for the absolute path abs, carrying
// over the params, query and fragment of orig.
func FileURL(abs string, orig Descriptor) Descriptor {
	p := Encode(abs)
	if !strings.HasPrefix(p, "/") {
		// Drive paths become file:///C:/...
		p = "/" + p
	}
	return Descriptor{
		Scheme:   "file",
		Path:     p,
		Params:   orig.Params,
		Query:    orig.Query,
		Fragment: orig.Fragment,
	}
}

// RelativeRef returns a scheme-less descriptor for the relative path rel,
// carrying over the params, query and fragment of orig.
func RelativeRef(rel string, orig Descriptor) Descriptor {
	return Descriptor{
		Path:     Encode(rel),
		Params:   orig.Params,
		Query:    orig.Query,
		Fragment: orig.Fragment,
	}
}
