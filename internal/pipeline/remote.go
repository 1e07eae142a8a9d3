package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultRemoteEndpoint is the GitHub Markdown rendering API.
const DefaultRemoteEndpoint = "https://api.github.com/markdown"

// maxRemoteResponse bounds the rendered HTML read from the API (16MB).
const maxRemoteResponse = 16 << 20

// Sentinel errors for the remote rendering API.
var (
	ErrRemoteAuth      = errors.New("remote API authentication failed")
	ErrRemoteRateLimit = errors.New("remote API rate limit exceeded")
	ErrRemoteStatus    = errors.New("remote API returned an error")
)

// RemoteConverter renders Markdown through the GitHub Markdown API.
type RemoteConverter struct {
	Client   *http.Client
	Endpoint string
	Mode     string // gfm or markdown
	Token    string // OAuth token, optional
}

// NewRemoteConverter creates a RemoteConverter for the default endpoint.
func NewRemoteConverter(mode, token string) *RemoteConverter {
	return &RemoteConverter{
		Client:   http.DefaultClient,
		Endpoint: DefaultRemoteEndpoint,
		Mode:     mode,
		Token:    token,
	}
}

type remoteRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type remoteError struct {
	Message string `json:"message"`
}

// ToHTML posts the Markdown to the API and returns the rendered fragment.
// 401 maps to ErrRemoteAuth, 403 to ErrRemoteRateLimit, any other non-2xx
// status to ErrRemoteStatus; the API's message is included when present.
func (c *RemoteConverter) ToHTML(ctx context.Context, content string) (string, error) {
	mode := c.Mode
	if mode == "" {
		mode = "gfm"
	}
	body, err := json.Marshal(remoteRequest{Text: content, Mode: mode})
	if err != nil {
		return "", fmt.Errorf("%w: encoding request: %v", ErrHTMLConversion, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/html")
	if c.Token != "" {
		req.Header.Set("Authorization", "token "+c.Token)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteResponse))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrHTMLConversion, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return string(data), nil
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		sentinel = ErrRemoteAuth
	case http.StatusForbidden:
		sentinel = ErrRemoteRateLimit
	default:
		sentinel = ErrRemoteStatus
	}

	var apiErr remoteError
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
		return "", fmt.Errorf("%w: HTTP %d: %q", sentinel, resp.StatusCode, apiErr.Message)
	}
	return "", fmt.Errorf("%w: HTTP %d", sentinel, resp.StatusCode)
}
