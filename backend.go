package mdpreview

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/alnah/go-mdpreview/internal/assets"
	"github.com/alnah/go-mdpreview/internal/pipeline"
)

type backendKind int

const (
	backendBuiltIn backendKind = iota
	backendRemote
	backendExternal
)

// Backend selects the Markdown-to-HTML engine. It is chosen once when the
// Converter is created. The zero value is BuiltIn.
type Backend struct {
	kind     backendKind
	mode     string
	token    string
	endpoint string
	client   *http.Client
	argv     []string
}

// BuiltIn renders Markdown in process with goldmark.
func BuiltIn() Backend {
	return Backend{kind: backendBuiltIn}
}

// RemoteAPI renders Markdown through the GitHub Markdown API.
// mode is "gfm" or "markdown" (empty means gfm); token is optional and
// raises the API rate limit.
func RemoteAPI(mode, token string) Backend {
	return Backend{kind: backendRemote, mode: mode, token: token}
}

// ExternalBinary renders Markdown by piping it to a program: argv[0] is the
// program, the rest are fixed arguments. The program reads Markdown on stdin
// and writes HTML on stdout.
func ExternalBinary(argv ...string) Backend {
	return Backend{kind: backendExternal, argv: append([]string(nil), argv...)}
}

// WithEndpoint returns a copy of a RemoteAPI backend posting to url.
func (b Backend) WithEndpoint(url string) Backend {
	b.endpoint = url
	return b
}

// WithHTTPClient returns a copy of a RemoteAPI backend using client.
func (b Backend) WithHTTPClient(client *http.Client) Backend {
	b.client = client
	return b
}

// String returns a short description of the backend.
func (b Backend) String() string {
	switch b.kind {
	case backendRemote:
		return "github"
	case backendExternal:
		if len(b.argv) == 0 {
			return "external"
		}
		return "external:" + strings.Join(b.argv, " ")
	default:
		return "builtin"
	}
}

// Validate checks that the backend can be built.
func (b Backend) Validate() error {
	switch b.kind {
	case backendRemote:
		switch strings.ToLower(b.mode) {
		case "", "gfm", "markdown":
		default:
			return fmt.Errorf("%w: github mode %q (must be gfm or markdown)", ErrInvalidBackend, b.mode)
		}
	case backendExternal:
		if len(b.argv) == 0 || strings.TrimSpace(b.argv[0]) == "" {
			return fmt.Errorf("%w: external backend needs a program", ErrInvalidBackend)
		}
	}
	return nil
}

// converter builds the pipeline stage for this backend.
func (b Backend) converter() pipeline.HTMLConverter {
	switch b.kind {
	case backendRemote:
		rc := pipeline.NewRemoteConverter(strings.ToLower(b.mode), b.token)
		if b.endpoint != "" {
			rc.Endpoint = b.endpoint
		}
		if b.client != nil {
			rc.Client = b.client
		}
		return rc
	case backendExternal:
		return pipeline.NewExternalConverter(b.argv)
	default:
		return pipeline.NewGoldmarkConverter()
	}
}

// defaultStyle names the embedded stylesheet matching the backend's markup.
func (b Backend) defaultStyle() string {
	if b.kind == backendRemote {
		return assets.GitHubStyleName
	}
	return assets.DefaultStyleName
}
