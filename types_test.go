package mdpreview

import (
	"errors"
	"testing"

	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestPostProcess_Validate - Path mode combinations
// ---------------------------------------------------------------------------

func TestPostProcess_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		post    PostProcess
		wantErr bool
	}{
		{"zero value", PostProcess{}, false},
		{"defaults", DefaultPostProcess(), false},
		{"uppercase modes", PostProcess{ImagePaths: "RELATIVE", FilePaths: "Absolute"}, false},
		{"base64 images", PostProcess{ImagePaths: PathBase64, FilePaths: PathRelative}, false},
		{"base64 files", PostProcess{FilePaths: PathBase64}, true},
		{"unknown image mode", PostProcess{ImagePaths: "embed"}, true},
		{"unknown file mode", PostProcess{FilePaths: "copy"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.post.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPathMode) {
				t.Errorf("Validate() error = %v, want ErrInvalidPathMode", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCriticAction - Mode mapping
// ---------------------------------------------------------------------------

func TestCriticAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode   CriticMode
		want   pipeline.CriticAction
		wantOK bool
	}{
		{"", pipeline.CriticKeep, true},
		{CriticNone, pipeline.CriticKeep, true},
		{CriticAccept, pipeline.CriticAccept, true},
		{"REJECT", pipeline.CriticReject, true},
		{"both", pipeline.CriticKeep, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			t.Parallel()

			got, ok := criticAction(tt.mode)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("criticAction(%q) = %v, %v; want %v, %v", tt.mode, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPreprocess_Validate(t *testing.T) {
	t.Parallel()

	if err := (Preprocess{Critic: CriticReject}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := (Preprocess{Critic: "sometimes"}).Validate(); !errors.Is(err, ErrInvalidCriticMode) {
		t.Errorf("Validate() error = %v, want ErrInvalidCriticMode", err)
	}
}

// ---------------------------------------------------------------------------
// TestDocumentTitle - Title precedence
// ---------------------------------------------------------------------------

func TestDocumentTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		frontMatter string
		input       Input
		loc         locations
		want        string
	}{
		{"front matter wins", "FM", Input{Title: "In"}, locations{source: "/d/a.md"}, "FM"},
		{"input title", "", Input{Title: "In"}, locations{source: "/d/a.md"}, "In"},
		{"source name", "", Input{}, locations{source: "/d/notes.v2.md"}, "notes.v2"},
		{"nothing", "", Input{}, locations{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := documentTitle(tt.frontMatter, tt.input, tt.loc); got != tt.want {
				t.Errorf("documentTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMergeMeta(t *testing.T) {
	t.Parallel()

	if got := mergeMeta(nil, nil); got != nil {
		t.Errorf("mergeMeta(nil, nil) = %v, want nil", got)
	}

	configured := map[string]string{"author": "cfg", "generator": "mdpreview"}
	got := mergeMeta(configured, map[string]string{"author": "fm"})
	if got["author"] != "fm" || got["generator"] != "mdpreview" {
		t.Errorf("mergeMeta() = %v", got)
	}
	if configured["author"] != "cfg" {
		t.Error("mergeMeta mutated its input")
	}
}
