package pathclass

import "testing"

// ---------------------------------------------------------------------------
// TestJoin - Resolving targets against a base directory
// ---------------------------------------------------------------------------

func TestJoin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     string
		target   string
		platform Platform
		want     string
	}{
		{"posix relative", "/docs", "images/pic.png", Posix, "/docs/images/pic.png"},
		{"posix dot segments", "/docs/sub", "../images/./pic.png", Posix, "/docs/images/pic.png"},
		{"posix absolute target", "/docs", "/other/pic.png", Posix, "/other/pic.png"},
		{"windows relative", `C:\docs`, `images\pic.png`, Windows, "C:/docs/images/pic.png"},
		{"windows absolute target", "C:/docs", "D:/pic.png", Windows, "D:/pic.png"},
		{"windows UNC base", "//server/share/docs", "pic.png", Windows, "//server/share/docs/pic.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Join(tt.base, tt.target, tt.platform); got != tt.want {
				t.Errorf("Join(%q, %q) = %q, want %q", tt.base, tt.target, got, tt.want)
			}
		})
	}
}

func TestDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		platform Platform
		want     string
	}{
		{"posix file", "/docs/readme.md", Posix, "/docs"},
		{"posix root file", "/readme.md", Posix, "/"},
		{"windows file", `C:\docs\readme.md`, Windows, "C:/docs"},
		{"windows drive root", "C:/readme.md", Windows, "C:/"},
		{"windows UNC", "//server/share/readme.md", Windows, "//server/share"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Dir(tt.in, tt.platform); got != tt.want {
				t.Errorf("Dir(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRel - Relative path computation
// ---------------------------------------------------------------------------

func TestRel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from     string
		target   string
		platform Platform
		want     string
		wantOK   bool
	}{
		{"posix sibling dir", "/docs/out", "/docs/images/pic.png", Posix, "../images/pic.png", true},
		{"posix same dir", "/docs", "/docs/pic.png", Posix, "pic.png", true},
		{"posix target is dir", "/docs", "/docs", Posix, ".", true},
		{"posix root", "/", "/a/b.png", Posix, "a/b.png", true},
		{"posix relative input rejected", "docs", "/docs/pic.png", Posix, "", false},
		{"windows same drive", "C:/docs/out", "c:/docs/pic.png", Windows, "../pic.png", true},
		{"windows case-insensitive components", "C:/Docs", "C:/docs/pic.png", Windows, "pic.png", true},
		{"windows cross drive", "C:/docs", "D:/pic.png", Windows, "", false},
		{"windows UNC pair", "//server/share/out", "//server/share/pic.png", Windows, "../pic.png", true},
		{"windows UNC and drive", "//server/share", "C:/pic.png", Windows, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Rel(tt.from, tt.target, tt.platform)
			if ok != tt.wantOK {
				t.Fatalf("Rel(%q, %q) ok = %v, want %v", tt.from, tt.target, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Rel(%q, %q) = %q, want %q", tt.from, tt.target, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEncode - Percent-encoding of paths
// ---------------------------------------------------------------------------

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/docs/images/pic.png", "/docs/images/pic.png"},
		{"/my docs/pic 1.png", "/my%20docs/pic%201.png"},
		{"C:/docs/pic.png", "C:/docs/pic.png"},
		{"/C:/docs/pic.png", "/C:/docs/pic.png"},
		{"a:b/c", "a:b/c"},
		{"dir/a:b", "dir/a%3Ab"},
		{"caf\u00e9.png", "caf%C3%A9.png"},
		{"it's.png", "it%27s.png"},
		{`say"hi".png`, "say%22hi%22.png"},
	}

	for _, tt := range tests {
		if got := Encode(tt.in); got != tt.want {
			t.Errorf("Encode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFileURL - Absolute paths as file:// links
// ---------------------------------------------------------------------------

func TestFileURL(t *testing.T) {
	t.Parallel()

	orig := Descriptor{Query: "v=1", Fragment: "top"}

	tests := []struct {
		abs  string
		want string
	}{
		{"/docs/images/pic.png", "file:///docs/images/pic.png?v=1#top"},
		{"C:/docs/pic.png", "file:///C:/docs/pic.png?v=1#top"},
		{"//server/share/pic.png", "file://server/share/pic.png?v=1#top"},
	}

	for _, tt := range tests {
		if got := FileURL(tt.abs, orig).String(); got != tt.want {
			t.Errorf("FileURL(%q) = %q, want %q", tt.abs, got, tt.want)
		}
	}
}

func TestFileURL_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		abs      string
		platform Platform
	}{
		{"/docs/my pic.png", Posix},
		{"C:/docs/my pic.png", Windows},
		{"//server/share/pic.png", Windows},
	}

	for _, tt := range tests {
		link := FileURL(tt.abs, Descriptor{}).String()
		d := Classify(link, tt.platform)
		if d.IsURL || !d.IsAbsolute {
			t.Errorf("Classify(%q) = url %v abs %v, want local absolute", link, d.IsURL, d.IsAbsolute)
			continue
		}
		got, err := d.LocalPath(tt.platform)
		if err != nil {
			t.Fatalf("LocalPath(%q) error = %v", link, err)
		}
		if got != tt.abs {
			t.Errorf("round trip %q -> %q -> %q", tt.abs, link, got)
		}
	}
}

func TestLocalPath_InvalidEscape(t *testing.T) {
	t.Parallel()

	d := Classify("images/%zz.png", Posix)
	if _, err := d.LocalPath(Posix); err == nil {
		t.Error("LocalPath() error = nil, want escape error")
	}
}
