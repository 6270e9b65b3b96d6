package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/calameo/calameo"
	"github.com/s0up4200/calameo/config"
)

// executeCommand runs the root command with args and returns what it printed
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetCommandState(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(bytes.NewBufferString("y\n"))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// resetCommandState puts every package-level flag variable back to its
// default and clears cobra's changed markers, so no flag leaks between runs
func resetCommandState(root *cobra.Command) {
	cfgFile, output = "", "table"
	cfg, client = nil, nil

	filterExpr, preset, subscriptionID = "", "", 0
	noConfirm = false
	setFields = nil
	commentListFlags = listFlags{step: calameo.MaxPageSize}

	subscriberListFlags = listFlags{step: calameo.MaxPageSize}
	accountSubscriberFlags = listFlags{step: calameo.MaxPageSize}
	subscriberPassword, subscriberFirstName, subscriberLastName, subscriberEmail = "", "", "", ""

	publishURL, publishSubscription = "", 0
	publishCategory, publishFormat, publishDialect, publishName = "", "", "", ""
	publishSet = nil

	exportFormat = "yaml"

	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		unmark := func(f *pflag.Flag) { f.Changed = false }
		c.Flags().VisitAll(unmark)
		c.PersistentFlags().VisitAll(unmark)
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(root)
}

func writeConfig(t *testing.T, serverURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf(`calameo:
  api_key: cli-key
  secret: cli-secret
  api_url: %s/api/
  upload_url: %s/upload/
filter:
  presets:
    travel: hasCategory("TRAVEL")
logging:
  level: error
`, serverURL, serverURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func booksServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "cli-key", r.FormValue("apikey"))

		switch r.FormValue("action") {
		case calameo.ActionFetchAccountBooks:
			w.Write([]byte(`{"response":{"status":"ok","content":{"total":3,"items":[
				{"ID":"c3","Name":"Guide","Category":"TRAVEL","Status":"DONE"},
				{"ID":"a1","Name":"Report","Category":"BUSINESS","Status":"DONE"},
				{"ID":"b2","Name":"Catalog","Category":"DESIGN","Status":"PROCESS"}]}}}`))
		case calameo.ActionGetAccountInfos:
			w.Write([]byte(`{"response":{"status":"ok","content":{"ID":"9","Name":"Acme"}}}`))
		case calameo.ActionDeleteBook:
			w.Write([]byte(`{"response":{"status":"ok"}}`))
		default:
			w.Write([]byte(`{"response":{"status":"error","error":{"code":1,"message":"unexpected action"}}}`))
		}
	}))
}

func TestBooksListCommand(t *testing.T) {
	server := booksServer(t)
	defer server.Close()
	path := writeConfig(t, server.URL)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "all publications sorted by ID",
			args: []string{"books", "list", "--config", path, "-o", "json"},
			want: []string{"a1", "b2", "c3"},
		},
		{
			name: "filter expression",
			args: []string{"books", "list", "--config", path, "-o", "json", "--filter", `isDone()`},
			want: []string{"a1", "c3"},
		},
		{
			name: "preset",
			args: []string{"books", "list", "--config", path, "-o", "json", "--preset", "travel"},
			want: []string{"c3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			require.NoError(t, err)

			var books []calameo.Publication
			require.NoError(t, json.Unmarshal([]byte(out), &books))
			ids := make([]string, len(books))
			for i, b := range books {
				ids[i] = b.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestBooksListInvalidFilter(t *testing.T) {
	server := booksServer(t)
	defer server.Close()

	_, err := executeCommand(t, "books", "list", "--config", writeConfig(t, server.URL), "-o", "table", "--filter", "Pages +")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter expression")

	_, err = executeCommand(t, "books", "list", "--config", writeConfig(t, server.URL), "-o", "table", "--preset", "nope")
	assert.Error(t, err)
}

func TestAccountCommand(t *testing.T) {
	server := booksServer(t)
	defer server.Close()

	out, err := executeCommand(t, "account", "--config", writeConfig(t, server.URL), "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Connection successful")
	assert.Contains(t, out, "Acme (ID: 9)")
}

func TestBooksDeleteCommand(t *testing.T) {
	server := booksServer(t)
	defer server.Close()

	out, err := executeCommand(t, "books", "delete", "a1", "--config", writeConfig(t, server.URL), "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Deleted a1")
}

func TestCommandFlagsDoNotLeakBetweenRuns(t *testing.T) {
	server := booksServer(t)
	defer server.Close()

	path := writeConfig(t, server.URL)
	_, err := executeCommand(t, "books", "list", "--config", path, "-o", "table", "--filter", `isDone()`)
	require.NoError(t, err)

	// The configured format applies once -o is no longer given
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("output:\n  format: json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, err := executeCommand(t, "books", "list", "--config", path)
	require.NoError(t, err)

	var books []calameo.Publication
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	assert.Len(t, books, 3)

	resetCommandState(rootCmd)
	assert.False(t, noConfirm)
	assert.False(t, booksListCmd.Flags().Lookup("filter").Changed)
	assert.False(t, rootCmd.PersistentFlags().Lookup("output").Changed)
}

func TestBooksUpdateRejectsUnknownCodes(t *testing.T) {
	server := booksServer(t)
	defer server.Close()

	_, err := executeCommand(t, "books", "update", "a1", "--config", writeConfig(t, server.URL), "-o", "table", "--set", "comment=9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid comments "9"`)
}

func TestConfigExportCommand(t *testing.T) {
	server := booksServer(t)
	defer server.Close()

	out, err := executeCommand(t, "config", "export", "--format", "xml", "--config", writeConfig(t, server.URL), "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "<calameoConfig>")
	assert.Contains(t, out, "<apikey>cli-key</apikey>")
	assert.Contains(t, out, "<page_size>50</page_size>")
}

func TestOptionsCommand(t *testing.T) {
	out, err := executeCommand(t, "options", "category", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "category (field: category)")
	assert.Contains(t, out, "Arts & Design")

	_, err = executeCommand(t, "options", "colors", "-o", "table")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3", "today")
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "calameo 1.2.3 (built today)\n", out)
}

func TestParseSetFlags(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    calameo.Fields
		wantErr string
	}{
		{
			name:  "plain fields",
			pairs: []string{"name=Annual report", "description=a=b"},
			want:  calameo.Fields{"name": "Annual report", "description": "a=b"},
		},
		{
			name:  "vocabulary fields",
			pairs: []string{"category=TECH", "download=2", "view=slide"},
			want:  calameo.Fields{"category": "TECH", "download": "2", "view": "slide"},
		},
		{
			name:    "missing separator",
			pairs:   []string{"name"},
			wantErr: "expected key=value",
		},
		{
			name:    "empty key",
			pairs:   []string{"=value"},
			wantErr: "expected key=value",
		},
		{
			name:    "unknown code",
			pairs:   []string{"publishing_mode=3"},
			wantErr: `invalid publishing "3"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSetFlags(tt.pairs)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListFlagsOptions(t *testing.T) {
	opts, err := (&listFlags{order: "Name", way: "DOWN", start: 10, step: 20}).options()
	require.NoError(t, err)
	assert.Equal(t, calameo.ListOptions{Order: "Name", Way: "DOWN", Start: 10, Step: 20}, opts)

	_, err = (&listFlags{way: "SIDEWAYS", step: 10}).options()
	assert.Error(t, err)

	_, err = (&listFlags{step: 100}).options()
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "INFO", want: zerolog.InfoLevel},
		{level: "", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			setupLogger(config.LoggingConfig{Level: tt.level, Format: "json"})
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}
