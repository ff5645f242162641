package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
  {"domain": ".example.com", "name": "session", "value": "abc", "path": "/", "secure": true, "httpOnly": true},
  {"domain": "api.example.com", "name": "old", "value": "1", "expirationDate": 1000},
  {"domain": ".other.org", "name": "pref", "value": "dark", "expirationDate": 32503680000}
]`

const sampleHAR = `{"log": {"version": "1.2", "creator": {"name": "t", "version": "1"}, "entries": [
  {"startedDateTime": "2024-01-01T00:00:00Z", "time": 1,
   "request": {"method": "GET", "url": "https://shop.example.com/", "httpVersion": "HTTP/1.1",
     "cookies": [{"name": "sid", "value": "abc"}], "headers": [], "queryString": [], "headersSize": -1, "bodySize": 0},
   "response": {"status": 200, "statusText": "OK", "httpVersion": "HTTP/1.1", "cookies": [], "headers": [],
     "content": {"size": 0, "mimeType": "text/html"}, "redirectURL": "", "headersSize": -1, "bodySize": 0},
   "cache": {}, "timings": {"send": 1, "wait": 1, "receive": 1}}
]}}`

// newTestFs returns an in-memory filesystem holding the sample files.
func newTestFs(t *testing.T) afero.Fs {
	t.Helper()
	memfs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memfs, "/data/cookies.json", []byte(sampleJSON), 0644))
	require.NoError(t, afero.WriteFile(memfs, "/data/capture.har", []byte(sampleHAR), 0644))
	return memfs
}

// resetFlags puts every flag of the tree back to its default so commands can
// run more than once in a test binary.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the command tree against memfs and returns everything written
// to stdout and stderr by the commands.
func execute(t *testing.T, memfs afero.Fs, args ...string) (string, error) {
	t.Helper()

	previous := fs
	fs = memfs
	t.Cleanup(func() {
		fs = previous
		cfg = DefaultConfig()
	})

	resetFlags(rootCmd)
	cfg = DefaultConfig()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateCookieFile(t *testing.T) {
	previous := fs
	fs = newTestFs(t)
	defer func() { fs = previous }()

	assert.NoError(t, ValidateCookieFile("/data/cookies.json"))
	assert.ErrorContains(t, ValidateCookieFile(""), "required")
	assert.ErrorContains(t, ValidateCookieFile("/data/missing.json"), "does not exist")
	assert.ErrorContains(t, ValidateCookieFile("/data"), "directory")
}

func TestResolveSource(t *testing.T) {
	tests := []struct {
		path     string
		from     string
		expected string
		har      bool
	}{
		{"cookies.json", "", "json", false},
		{"cookies.CSV", "", "csv", false},
		{"cookies.txt", "", "netscape", false},
		{"cookies.xml", "", "xml", false},
		{"capture.har", "", "json", true},
		{"cookies.dat", "", "json", false},
		{"cookies.json", "Netscape", "netscape", false},
		{"cookies.json", "har", "json", true},
	}

	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.from, func(t *testing.T) {
			src, err := resolveSource(tt.path, tt.from)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, src.format.String())
			assert.Equal(t, tt.har, src.har)
		})
	}

	_, err := resolveSource("cookies.json", "yaml")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    dev")
	assert.Contains(t, out, "OS/Arch:")
}
