package calameo

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey = "test-key"
	testSecret = "test-secret"
)

// formValues flattens the multipart text fields of a request.
func formValues(t *testing.T, r *http.Request) map[string]string {
	t.Helper()
	if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
		return nil
	}
	values := make(map[string]string, len(r.MultipartForm.Value))
	for name, v := range r.MultipartForm.Value {
		values[name] = v[0]
	}
	return values
}

func newTestClient(t *testing.T, serverURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithAPIURL(serverURL + "/api/"),
		WithUploadURL(serverURL + "/upload/"),
	}, opts...)
	client, err := NewClient(Credentials{APIKey: testAPIKey, Secret: testSecret}, zerolog.Nop(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		credentials Credentials
		wantErr     bool
		errMsg      string
	}{
		{
			name:        "valid credentials",
			credentials: Credentials{APIKey: "key", Secret: "secret"},
		},
		{
			name:        "missing API key",
			credentials: Credentials{Secret: "secret"},
			wantErr:     true,
			errMsg:      "apikey is required",
		},
		{
			name:        "missing secret",
			credentials: Credentials{APIKey: "key"},
			wantErr:     true,
			errMsg:      "secret is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.credentials, zerolog.Nop())
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			defer client.Close()
			assert.Equal(t, DefaultAPIURL, client.apiURL)
			assert.Equal(t, DefaultUploadURL, client.uploadURL)
			assert.Equal(t, MaxPageSize, client.pageSize)
			assert.Equal(t, "key", client.APIKey())
		})
	}
}

func TestClientOptions(t *testing.T) {
	httpClient := &http.Client{Timeout: time.Second}
	client, err := NewClient(Credentials{APIKey: "k", Secret: "s"}, zerolog.Nop(),
		WithHTTPClient(httpClient),
		WithPageSize(20),
		WithAPIURL("http://api.local/"),
		WithUploadURL("http://upload.local/"),
	)
	require.NoError(t, err)
	defer client.Close()

	assert.Same(t, httpClient, client.httpClient)
	assert.Equal(t, 20, client.pageSize)
	assert.Equal(t, "http://api.local/", client.apiURL)
	assert.Equal(t, "http://upload.local/", client.uploadURL)

	other, err := NewClient(Credentials{APIKey: "k", Secret: "s"}, zerolog.Nop(), WithPageSize(500), WithTimeout(5*time.Second))
	require.NoError(t, err)
	defer other.Close()
	assert.Equal(t, MaxPageSize, other.pageSize)
	assert.Equal(t, 5*time.Second, other.httpClient.Timeout)
	assert.NotSame(t, client.httpClient, other.httpClient)
}

func TestExecuteInjectsSignedFields(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/", r.URL.Path)

		values := formValues(t, r)
		assert.Equal(t, "getBookInfos", values["action"])
		assert.Equal(t, "abc123", values["book_id"])
		assert.Equal(t, "JSON", values["output"])
		assert.Equal(t, testAPIKey, values["apikey"])

		expires, err := strconv.ParseInt(values["expires"], 10, 64)
		assert.NoError(t, err)
		assert.Equal(t, now.Add(120*time.Minute).Unix(), expires)
		assert.GreaterOrEqual(t, expires, now.Unix())

		signed := Fields{}
		for name, v := range values {
			if name != "signature" {
				signed[name] = v
			}
		}
		assert.Equal(t, Sign(signed, testSecret), values["signature"])

		w.Write([]byte(`{"response":{"status":"ok","content":{"ID":"abc123"}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithClock(func() time.Time { return now }))

	fields := Fields{"book_id": "abc123"}
	body, err := client.Execute(context.Background(), ActionGetBookInfos, fields)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status":"ok"`)

	// The caller's mapping is left untouched
	assert.Equal(t, Fields{"book_id": "abc123"}, fields)
}

func TestExecuteUploadsFileValue(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/revision.pdf", []byte("%PDF-1.7"), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload/", r.URL.Path)

		values := formValues(t, r)
		assert.NotContains(t, values, "file")
		assert.Len(t, r.MultipartForm.File["file"], 1)

		signed := Fields{}
		for name, v := range values {
			if name != "signature" {
				signed[name] = v
			}
		}
		assert.Equal(t, Sign(signed, testSecret), values["signature"])

		w.Write([]byte(`{"response":{"status":"ok","content":{"ID":"abc"}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithFs(fs))
	_, err := client.Execute(context.Background(), ActionRevise, Fields{
		"book_id": "abc",
		"file":    File{Path: "/docs/revision.pdf"},
	})
	require.NoError(t, err)
}

func TestExecuteUploadsFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/report.pdf", []byte("%PDF-1.4 body"), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload/", r.URL.Path)

		values := formValues(t, r)
		assert.Equal(t, "publish", values["action"])
		assert.NotContains(t, values, "file")

		files := r.MultipartForm.File["file"]
		if assert.Len(t, files, 1) {
			assert.Equal(t, "report.pdf", files[0].Filename)
			f, err := files[0].Open()
			if assert.NoError(t, err) {
				content, _ := io.ReadAll(f)
				f.Close()
				assert.Equal(t, "%PDF-1.4 body", string(content))
			}
		}

		signed := Fields{}
		for name, v := range values {
			if name != "signature" {
				signed[name] = v
			}
		}
		assert.Equal(t, Sign(signed, testSecret), values["signature"])

		w.Write([]byte(`{"response":{"status":"ok","content":{"ID":"new1","Name":"Report","Status":"QUEUE"}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithFs(fs))

	book, err := client.Publish(context.Background(), &File{Path: "/docs/report.pdf"}, Fields{
		"subscription_id": 12,
		"category":        "BUSINESS",
		"format":          "REPORTS",
		"dialect":         "en",
	})
	require.NoError(t, err)
	assert.Equal(t, "new1", book.ID)
	assert.False(t, book.IsDone())
}

func TestExecuteMissingField(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.PublishFromURL(context.Background(), "https://example.com/doc.pdf", Fields{
		"subscription_id": 1,
		"format":          "BOOKS",
		"dialect":         "fr",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "category")

	_, err = client.GetBookInfos(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = client.Revise(context.Background(), "abc", nil)
	assert.ErrorIs(t, err, ErrMissingField)

	assert.Zero(t, requests.Load())
}

func TestExecuteUnknownAction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values := formValues(t, r)
		assert.Equal(t, "fetchBookStats", values["action"])
		w.Write([]byte(`{"response":{"status":"ok","content":{}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Execute(context.Background(), "fetchBookStats", Fields{"book_id": "x"})
	assert.NoError(t, err)
}

func TestExecuteHTTPError(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		isUnauthorized bool
		isNotFound     bool
	}{
		{name: "forbidden", status: http.StatusForbidden, isUnauthorized: true},
		{name: "not found", status: http.StatusNotFound, isNotFound: true},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("boom"))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			_, err := client.GetAccountInfos(context.Background())
			require.Error(t, err)

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, "boom", httpErr.Body)
			assert.Equal(t, ActionGetAccountInfos, httpErr.Action)
			assert.Equal(t, tt.isUnauthorized, httpErr.IsUnauthorized())
			assert.Equal(t, tt.isNotFound, httpErr.IsNotFound())
		})
	}
}

func TestTestConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"status":"ok","content":{"ID":"7","Name":"Acme","Country":"FR"}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	require.NoError(t, client.TestConnection(context.Background()))

	account, err := client.GetAccountInfos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Int(7), account.ID)
	assert.Equal(t, "Acme", account.Name)
}

func TestActions(t *testing.T) {
	specs := Actions()
	require.Len(t, specs, 21)
	for i := 1; i < len(specs); i++ {
		assert.Less(t, specs[i-1].Name, specs[i].Name)
	}

	spec, ok := LookupAction(ActionPublish)
	require.True(t, ok)
	assert.Equal(t, ActionPublish, spec.Name)
	assert.Contains(t, spec.Required, "file")

	_, ok = LookupAction("nope")
	assert.False(t, ok)
}
