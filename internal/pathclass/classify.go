package pathclass

import (
	"runtime"
	"strings"
)

// Platform selects the path syntax used to interpret link targets.
type Platform int

// Supported platforms.
const (
	Posix Platform = iota
	Windows
)

// Host returns the platform the process runs on.
func Host() Platform {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Posix
}

// String returns the lowercase platform name.
func (p Platform) String() string {
	if p == Windows {
		return "windows"
	}
	return "posix"
}

// networkSchemes are schemes that always denote a remote or opaque resource.
var networkSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"ftp":    true,
	"ftps":   true,
	"data":   true,
	"mailto": true,
	"tel":    true,
	"news":   true,
}

// usesNetloc lists schemes whose reassembled form carries "//" even when the
// network location is empty (file:///path).
var usesNetloc = map[string]bool{
	"file":  true,
	"http":  true,
	"https": true,
	"ftp":   true,
	"ftps":  true,
}

// Descriptor is the decomposed form of a link target.
//
// IsURL and IsAbsolute are independent flags: a URL is never absolute in the
// filesystem sense, and a descriptor with neither flag set is a relative
// filesystem path.
type Descriptor struct {
	Scheme     string
	Netloc     string
	Path       string
	Params     string
	Query      string
	Fragment   string
	IsURL      bool
	IsAbsolute bool
}

// Classify decomposes raw and decides how it should be treated on platform p.
// It never fails: input that cannot be interpreted ends up as a relative path
// that will not resolve on disk, which callers leave untouched.
func Classify(raw string, p Platform) Descriptor {
	d := split(raw)

	switch {
	case networkSchemes[d.Scheme]:
		d.IsURL = true
	case d.Scheme == "" && d.Netloc == "" && d.Path == "":
		// Fragment or query only (#section, ?v=2).
		d.IsURL = true
	case p == Windows:
		classifyWindows(&d, raw)
	default:
		classifyPosix(&d)
	}
	return d
}

func classifyWindows(d *Descriptor, raw string) {
	switch {
	case d.Scheme == "file" && isDrive(d.Netloc):
		// file://c:/path
		d.Path = driveOf(d.Netloc) + d.Path
		d.Netloc = ""
		d.Scheme = ""
		d.IsAbsolute = true
	case d.Scheme == "file" && d.Netloc == "" && HasDrive(strings.TrimPrefix(d.Path, "/")):
		// file:///c:/path
		d.Path = strings.TrimPrefix(d.Path, "/")
		d.Scheme = ""
		d.IsAbsolute = true
	case d.Scheme == "file" && d.Netloc != "":
		// file://server/share/path
		d.Path = "//" + d.Netloc + d.Path
		d.Netloc = ""
		d.Scheme = ""
		d.IsAbsolute = true
	case len(d.Scheme) == 1 && d.Netloc == "":
		// c:/path parses as scheme "c"; keep the drive letter as written.
		d.Path = raw[:1] + ":" + d.Path
		d.Scheme = ""
		d.IsAbsolute = true
	case d.Scheme == "" && d.Netloc != "":
		// //server/share/path
		d.Path = "//" + d.Netloc + d.Path
		d.Netloc = ""
		d.IsAbsolute = true
	case d.Scheme != "" || d.Netloc != "":
		d.IsURL = true
	case strings.HasPrefix(d.Path, `\\`):
		d.IsAbsolute = true
	}
}

func classifyPosix(d *Descriptor) {
	if d.Scheme != "file" && d.Netloc != "" {
		// Unknown scheme with a host, or protocol-relative (//cdn/x.js).
		d.IsURL = true
		return
	}
	if d.Scheme == "file" && d.Netloc != "" && !strings.EqualFold(d.Netloc, "localhost") {
		// file://host/path names a file on another machine.
		d.IsURL = true
		return
	}
	if d.Scheme == "file" {
		d.Netloc = ""
	}
	d.Scheme = ""
	d.IsAbsolute = strings.HasPrefix(d.Path, "/")
}

// String reassembles the descriptor into a link target.
func (d Descriptor) String() string {
	u := d.Path
	if d.Params != "" {
		u += ";" + d.Params
	}
	if d.Netloc != "" || (usesNetloc[d.Scheme] && !strings.HasPrefix(u, "//")) {
		if u != "" && u[0] != '/' {
			u = "/" + u
		}
		u = "//" + d.Netloc + u
	}
	if d.Scheme != "" {
		u = d.Scheme + ":" + u
	}
	if d.Query != "" {
		u += "?" + d.Query
	}
	if d.Fragment != "" {
		u += "#" + d.Fragment
	}
	return u
}

// split breaks raw into its six URL components.
// Scheme is lowercased; everything else is returned as written.
func split(raw string) Descriptor {
	var d Descriptor
	rest := raw

	if i := strings.IndexByte(rest, ':'); i > 0 && validScheme(rest[:i]) {
		d.Scheme = strings.ToLower(rest[:i])
		rest = rest[i+1:]
	}

	if strings.HasPrefix(rest, "//") {
		end := len(rest)
		if j := strings.IndexAny(rest[2:], "/?#"); j >= 0 {
			end = j + 2
		}
		d.Netloc = rest[2:end]
		rest = rest[end:]
	}

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		d.Fragment = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		d.Query = rest[i+1:]
		rest = rest[:i]
	}

	// Params only belong to the last path segment.
	lastSlash := strings.LastIndexByte(rest, '/')
	if i := strings.IndexByte(rest[lastSlash+1:], ';'); i >= 0 {
		cut := lastSlash + 1 + i
		d.Params = rest[cut+1:]
		rest = rest[:cut]
	}

	d.Path = rest
	return d
}

func validScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isLetter(c):
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return s != ""
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// isDrive reports whether s is a bare drive designator ("c:" or "c").
func isDrive(s string) bool {
	switch len(s) {
	case 1:
		return isLetter(s[0])
	case 2:
		return isLetter(s[0]) && s[1] == ':'
	}
	return false
}

func driveOf(netloc string) string {
	if len(netloc) == 1 {
		return netloc + ":"
	}
	return netloc
}
