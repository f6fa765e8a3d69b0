package kroki

import (
	"context"
	"io"
	"net/http"
	"path/filepath"

	"github.com/figtools/figgen/pkg/errors"
)

// Client issues rendering requests against a kroki service.
// The zero value is not usable; call New.
type Client struct {
	host string
	http *http.Client
}

// New creates a Client for the given service host. An empty host selects
// the public kroki.io service.
func New(host string) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{host: host, http: http.DefaultClient}
}

// Host returns the service host the client renders against.
func (c *Client) Host() string { return c.host }

// Render converts source markup (identified by its file extension) to the
// requested output format and returns the artifact bytes.
//
// Failures are per-request: an unknown extension, a transport error, or a
// non-200 response all return an error without retrying.
func (c *Client) Render(ctx context.Context, ext, format string, source []byte) ([]byte, error) {
	lang, err := Language(ext)
	if err != nil {
		return nil, err
	}

	url, err := RequestURL(c.host, lang, format, source)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRemoteResponse, err, "kroki request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.New(errors.ErrCodeRemoteResponse,
			"remote response error: %s %s: %s", resp.Status, lang, firstLine(body))
	}

	return io.ReadAll(resp.Body)
}

// RenderFile is a convenience wrapper deriving the language from path's
// extension.
func (c *Client) RenderFile(ctx context.Context, path, format string, source []byte) ([]byte, error) {
	return c.Render(ctx, filepath.Ext(path), format, source)
}

func firstLine(b []byte) string {
	for i, c := range b {
		if c == '\n' {
			b = b[:i]
			break
		}
	}
	return string(b)
}
