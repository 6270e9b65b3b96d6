package calameo

import (
	"net/http"
	"time"

	"github.com/spf13/afero"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client. The Client still closes its idle
// connections on Close.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithAPIURL overrides the standard API endpoint.
func WithAPIURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.apiURL = url
		}
	}
}

// WithUploadURL overrides the upload endpoint used by requests carrying a file.
func WithUploadURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.uploadURL = url
		}
	}
}

// WithFs sets the filesystem uploads are read from.
func WithFs(fs afero.Fs) Option {
	return func(c *Client) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// WithClock replaces the clock used to compute the expires field.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithPageSize sets the step used by the FetchAll* helpers. The API caps it at 50.
func WithPageSize(step int) Option {
	return func(c *Client) {
		if step > 0 && step <= MaxPageSize {
			c.pageSize = step
		}
	}
}
