package commands

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/pssraw/pkg/output"
	"github.com/ccollicutt/pssraw/pkg/webhook"
)

func TestRunParse_Text(t *testing.T) {
	resetExitCode(t)
	path := writeFile(t, t.TempDir(), "small.raw", smallCase)

	out, err := execute(t, NewParseCommand(), path)
	require.NoError(t, err)

	assert.Contains(t, out, "=== pssraw Case Report ===")
	assert.Contains(t, out, "File: "+path)
	assert.Contains(t, out, "Revision: 33 (legacy)")
	assert.Contains(t, out, "SMALL CASE")
	assert.Contains(t, out, "Summary: 3 records, 0 skipped, 0 malformed fields, 0 discarded lines")
	assert.Equal(t, 0, ExitCode)
}

func TestRunParse_JSON(t *testing.T) {
	resetExitCode(t)
	path := writeFile(t, t.TempDir(), "small.raw", smallCase)

	out, err := execute(t, NewParseCommand(), "-o", "json", "--workers", "2", path)
	require.NoError(t, err)

	var report output.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.Summary.Records)
	assert.Equal(t, 33, report.Header.Revision)
	assert.Equal(t, "legacy", report.Header.Era)
	assert.Equal(t, path, report.Metadata.Source)
	assert.Equal(t, 2, report.Metadata.Workers)
	assert.NotEmpty(t, report.Metadata.RunID)

	require.NotEmpty(t, report.Kinds)
	assert.Equal(t, output.KindResult{Kind: "bus", Start: 3, End: 5, Records: 2}, report.Kinds[0])
}

func TestRunParse_YAMLQuiet(t *testing.T) {
	resetExitCode(t)
	path := writeFile(t, t.TempDir(), "small.raw", smallCase)

	out, err := execute(t, NewParseCommand(), "-o", "yaml", "-q", path)
	require.NoError(t, err)

	var summary output.Summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 3, summary.Records)
	assert.Equal(t, 9, summary.LinesProcessed)
}

func TestRunParse_FullCase(t *testing.T) {
	resetExitCode(t)

	for _, name := range []string{"case14_v33.raw", "case14_v35.raw"} {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, NewParseCommand(), "-o", "json", "--no-mmap", fixture(name))
			require.NoError(t, err)

			var report output.Report
			require.NoError(t, json.Unmarshal([]byte(out), &report))
			assert.Zero(t, report.Summary.Skipped)
			assert.Zero(t, report.Summary.KindsWithIssues)
			assert.Equal(t, 4, report.Kinds[0].Records)
		})
	}
	assert.Equal(t, 0, ExitCode)
}

func TestRunParse_SkippedRecordsSetExitCode(t *testing.T) {
	resetExitCode(t)
	path := writeFile(t, t.TempDir(), "bad.raw", badBusCase)

	out, err := execute(t, NewParseCommand(), path)
	require.NoError(t, err)

	assert.Contains(t, out, "1 skipped")
	assert.Equal(t, 1, ExitCode)
}

func TestRunParse_KindFilter(t *testing.T) {
	resetExitCode(t)
	path := writeFile(t, t.TempDir(), "small.raw", smallCase)

	out, err := execute(t, NewParseCommand(), "-o", "json", "--kind", "load", path)
	require.NoError(t, err)

	var report output.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Summary.Records)
}

func TestRunParse_InvalidOptions(t *testing.T) {
	path := writeFile(t, t.TempDir(), "small.raw", smallCase)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown kind", []string{"--kind", "substation", path}, "unknown section kind"},
		{"unknown output", []string{"-o", "xml", path}, "output"},
		{"unknown encoding", []string{"--encoding", "ebcdic", path}, "encoding"},
		{"negative workers", []string{"--workers=-2", path}, "workers"},
		{"bad trigger", []string{"--webhook-trigger", "sometimes", path}, "invalid webhook trigger"},
		{"missing config", []string{"-c", "/nonexistent/pssraw.yaml", path}, "loading config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetExitCode(t)
			_, err := execute(t, NewParseCommand(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunParse_MissingFile(t *testing.T) {
	resetExitCode(t)
	_, err := execute(t, NewParseCommand(), filepath.Join(t.TempDir(), "missing.raw"))
	assert.Error(t, err)
}

func TestRunParse_Directory(t *testing.T) {
	resetExitCode(t)
	dir := t.TempDir()
	writeFile(t, dir, "a.raw", smallCase)
	writeFile(t, dir, "b.RAW", smallCase)
	writeFile(t, dir, "notes.txt", "not a case")

	out, err := execute(t, NewParseCommand(), "-q", dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "a.raw rev 33, 3 records")
	assert.Contains(t, lines[1], "b.RAW rev 33, 3 records")
}

func TestRunParse_EmptyDirectory(t *testing.T) {
	resetExitCode(t)
	_, err := execute(t, NewParseCommand(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no RAW files matched")
}

func TestRunParse_ConfigFile(t *testing.T) {
	resetExitCode(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "small.raw", smallCase)
	configPath := writeFile(t, dir, "pssraw.yaml", "output: json\nworkers: 3\n")

	out, err := execute(t, NewParseCommand(), "-c", configPath, path)
	require.NoError(t, err)

	var report output.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, configPath, report.Metadata.ConfigFile)
	assert.Equal(t, 3, report.Metadata.Workers)

	// Flags set on the command line win over the file.
	out, err = execute(t, NewParseCommand(), "-c", configPath, "-o", "text", path)
	require.NoError(t, err)
	assert.Contains(t, out, "=== pssraw Case Report ===")
}

// delivery is one request received by the test webhook endpoint.
type delivery struct {
	payload webhook.Payload
	auth    string
	run     string
}

func TestRunParse_Webhook(t *testing.T) {
	received := make(chan delivery, 10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := delivery{
			auth: r.Header.Get("Authorization"),
			run:  r.Header.Get(webhook.RunHeader),
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &d.payload)
		received <- d
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	dir := t.TempDir()
	clean := writeFile(t, dir, "small.raw", smallCase)
	bad := writeFile(t, dir, "bad.raw", badBusCase)

	t.Run("on_skipped ignores clean runs", func(t *testing.T) {
		resetExitCode(t)
		_, err := execute(t, NewParseCommand(), "-q", "--webhook-url", server.URL, clean)
		require.NoError(t, err)
		assert.Empty(t, received)
	})

	t.Run("on_skipped posts runs with skipped records", func(t *testing.T) {
		resetExitCode(t)
		out, err := execute(t, NewParseCommand(), "-q",
			"--webhook-url", server.URL, "--webhook-token", "secret", clean, bad)
		require.NoError(t, err)
		require.Len(t, received, 1)
		d := <-received
		assert.Contains(t, out, "Webhook "+server.URL+": sent (200")
		assert.Equal(t, "Bearer secret", d.auth)
		assert.Equal(t, d.payload.RunID, d.run)
		assert.Equal(t, 2, d.payload.Files)
		assert.Equal(t, 1, d.payload.Skipped)
		assert.Equal(t, 1, ExitCode)
	})

	t.Run("never", func(t *testing.T) {
		resetExitCode(t)
		_, err := execute(t, NewParseCommand(), "-q",
			"--webhook-url", server.URL, "--webhook-trigger", "never", bad)
		require.NoError(t, err)
		assert.Empty(t, received)
	})
}

func TestRunParse_WebhookFailureDoesNotFailRun(t *testing.T) {
	resetExitCode(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	path := writeFile(t, t.TempDir(), "small.raw", smallCase)
	out, err := execute(t, NewParseCommand(), "-q",
		"--webhook-url", server.URL, "--webhook-trigger", "always", path)
	require.NoError(t, err)
	assert.Contains(t, out, "failed (webhook returned status 500)")
	assert.Equal(t, 0, ExitCode)
}
