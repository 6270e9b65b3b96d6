package calameo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const (
	// DefaultAPIURL is the endpoint for every action without a file.
	DefaultAPIURL = "https://api.calameo.com/1.0/"
	// DefaultUploadURL is the endpoint for actions carrying a file.
	DefaultUploadURL = "https://upload.calameo.com/1.0/"

	// OutputFormat is sent as the output field on every request.
	OutputFormat = "JSON"

	// MaxPageSize is the largest step the listing actions accept.
	MaxPageSize = 50

	expiresIn      = 120 * time.Minute
	defaultTimeout = 30 * time.Second
)

// Client is a Calaméo API client. It keeps no per-call state and is safe
// for concurrent use.
type Client struct {
	credentials Credentials
	apiURL      string
	uploadURL   string
	timeout     time.Duration
	pageSize    int
	httpClient  *http.Client
	fs          afero.Fs
	now         func() time.Time
	logger      zerolog.Logger
}

// NewClient creates a new Calaméo client. The returned client owns its HTTP
// transport; call Close when done with it.
func NewClient(credentials Credentials, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if err := credentials.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		credentials: credentials,
		apiURL:      DefaultAPIURL,
		uploadURL:   DefaultUploadURL,
		timeout:     defaultTimeout,
		pageSize:    MaxPageSize,
		fs:          afero.NewOsFs(),
		now:         time.Now,
		logger:      logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout:   c.timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}

	return c, nil
}

// Close releases idle connections held by the client's transport.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// APIKey returns the public key the client signs with.
func (c *Client) APIKey() string {
	return c.credentials.APIKey
}

// Execute signs and sends a single action and returns the JSON body. XML
// bodies are converted to their JSON equivalent. The caller's fields are
// never modified.
func (c *Client) Execute(ctx context.Context, action string, fields Fields) ([]byte, error) {
	req := fields.clone()
	req["action"] = action

	if spec, ok := LookupAction(action); ok {
		if err := spec.validate(req); err != nil {
			return nil, err
		}
	}

	c.sign(req)

	endpoint := c.apiURL
	if req.HasFile() {
		endpoint = c.uploadURL
	}

	body, contentType, err := c.encode(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", action, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calameo %s: request failed: %w", action, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("action", action).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Msg("Calameo API request")

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{
			Action:     action,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	// The API sometimes ignores output=JSON and answers in XML.
	if bytes.HasPrefix(raw, []byte("<?xml")) {
		converted, err := XMLToJSON(raw)
		if err != nil {
			return nil, &DecodeError{Action: action, Reason: "invalid XML body", Err: err}
		}
		return converted, nil
	}

	return raw, nil
}

// sign injects expires, output, apikey and finally signature.
func (c *Client) sign(req Fields) {
	delete(req, "signature")
	req["expires"] = c.now().Add(expiresIn).Unix()
	req["output"] = OutputFormat
	req["apikey"] = c.credentials.APIKey
	req["signature"] = Sign(req, c.credentials.Secret)
}

// encode writes the fields as multipart/form-data. Plain fields go first in
// name order, then the file part, then the signature.
func (c *Client) encode(req Fields) (io.Reader, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	names := make([]string, 0, len(req))
	for name := range req {
		if name == "signature" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var fileField string
	var file *File
	for _, name := range names {
		if f, ok := asFile(req[name]); ok {
			if f != nil {
				fileField, file = name, f
			}
			continue
		}
		if err := writer.WriteField(name, formatValue(req[name])); err != nil {
			return nil, "", err
		}
	}

	if file != nil {
		if err := c.writeFile(writer, fileField, file); err != nil {
			return nil, "", err
		}
	}

	if err := writer.WriteField("signature", formatValue(req["signature"])); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

func (c *Client) writeFile(writer *multipart.Writer, field string, file *File) error {
	src, err := c.fs.Open(file.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file.Path, err)
	}
	defer src.Close()

	name := file.Name
	if name == "" {
		name = filepath.Base(file.Path)
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(name))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(field), quoteEscaper.Replace(name)))
	h.Set("Content-Type", contentType)

	part, err := writer.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to read %s: %w", file.Path, err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
