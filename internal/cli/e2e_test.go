package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/pssraw/internal/cli/commands"
	"github.com/ccollicutt/pssraw/pkg/config"
	"github.com/ccollicutt/pssraw/pkg/engine"
	"github.com/ccollicutt/pssraw/pkg/model"
	"github.com/ccollicutt/pssraw/pkg/output"
	"github.com/ccollicutt/pssraw/pkg/source"
	"github.com/ccollicutt/pssraw/pkg/webhook"
)

// projectRoot returns the module root based on this file's location.
func projectRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Dir(filepath.Dir(filepath.Dir(filename)))
}

// requireFile fails the test if a required fixture doesn't exist.
// Missing test data is a failure, never a skip.
func requireFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Required test file not found: %s", path)
	}
}

func fixtures(t *testing.T) (legacy, modern string) {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pkg", "engine", "testdata")
	legacy = filepath.Join(dir, "case14_v33.raw")
	modern = filepath.Join(dir, "case14_v35.raw")
	requireFile(t, legacy)
	requireFile(t, modern)
	return legacy, modern
}

// runRoot executes the root command and returns stdout and stderr.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	commands.ExitCode = 0
	t.Cleanup(func() { commands.ExitCode = 0 })

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// TestE2E_Pipeline drives both fixtures through the library pipeline the parse
// command uses: config, source, engine, report and webhook payload.
func TestE2E_Pipeline(t *testing.T) {
	legacy, modern := fixtures(t)
	ctx := context.Background()

	cfg, err := config.LoadOrDefault(ctx, "")
	require.NoError(t, err)

	files, err := source.ExpandGlobs([]string{filepath.Join(filepath.Dir(legacy), "*.raw")})
	require.NoError(t, err)
	require.Equal(t, []string{legacy, modern}, files)

	eng := engine.New(engine.WithWorkers(cfg.Workers), engine.WithDefaultRevision(cfg.DefaultRevision))
	runID := output.NewRunID()

	cases := make([]*model.Case, 0, len(files))
	reports := make([]*output.Report, 0, len(files))
	for _, path := range files {
		f, err := source.Open(path, source.WithEncoding(cfg.Encoding), source.WithMmap(cfg.Mmap))
		require.NoError(t, err)
		c := eng.Parse(f.Bytes())
		require.NoError(t, f.Close())

		cases = append(cases, c)
		reports = append(reports, output.NewReport(c, output.Metadata{RunID: runID, Source: path}))
	}

	assert.Equal(t, model.Legacy, cases[0].Header.Era())
	assert.Equal(t, model.Modern, cases[1].Header.Era())

	// Records survive closing their source.
	assert.Equal(t, "3WND", cases[0].Transformers[1].Name)
	if diff := cmp.Diff(cases[0].Buses, cases[1].Buses); diff != "" {
		t.Errorf("Buses differ between revisions (-v33 +v35):\n%s", diff)
	}

	payload := webhook.NewPayload(reports)
	assert.Equal(t, runID, payload.RunID)
	assert.Equal(t, 2, payload.Files)
	assert.Zero(t, payload.Skipped)
	assert.Equal(t, reports[0].Summary.Records+reports[1].Summary.Records, payload.Records)
	assert.False(t, webhook.ShouldSend(webhook.TriggerOnSkipped, payload))
}

func TestE2E_ParseCommand(t *testing.T) {
	legacy, modern := fixtures(t)

	stdout, stderr, err := runRoot(t, "--log-level", "debug", "--log-format", "json",
		"parse", "-o", "json", "--workers", "4", legacy, modern)
	require.NoError(t, err)
	assert.Equal(t, 0, commands.ExitCode)

	dec := json.NewDecoder(strings.NewReader(stdout))
	var runIDs []string
	for dec.More() {
		var report output.Report
		require.NoError(t, dec.Decode(&report))
		assert.Zero(t, report.Summary.Skipped, report.Metadata.Source)
		runIDs = append(runIDs, report.Metadata.RunID)
	}
	require.Len(t, runIDs, 2)
	assert.Equal(t, runIDs[0], runIDs[1])

	// Debug logs go to stderr as one JSON object per line.
	var parsed int
	scanner := bufio.NewScanner(strings.NewReader(stderr))
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry), scanner.Text())
		if entry["msg"] == "parsed case" {
			parsed++
			assert.Equal(t, "DEBUG", entry["level"])
		}
	}
	assert.Equal(t, 2, parsed)
}

func TestE2E_DefaultLogLevelIsQuiet(t *testing.T) {
	legacy, _ := fixtures(t)

	_, stderr, err := runRoot(t, "parse", "-q", legacy)
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestE2E_DetectThenParseWithStarterConfig(t *testing.T) {
	_, modern := fixtures(t)
	configPath := filepath.Join(t.TempDir(), "pssraw.yaml")

	stdout, _, err := runRoot(t, "detect", "--write-config", configPath, modern)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Revision: 35 (modern)")

	stdout, _, err = runRoot(t, "validate", configPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Default revision: 35")

	stdout, _, err = runRoot(t, "parse", "-q", "-c", configPath, modern)
	require.NoError(t, err)
	assert.Contains(t, stdout, "rev 35")
}

func TestE2E_DiagnoseCommand(t *testing.T) {
	legacy, _ := fixtures(t)

	stdout, _, err := runRoot(t, "diagnose", legacy)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Case looks good!")
}

func TestE2E_WebhookOnSkippedRecords(t *testing.T) {
	legacy, _ := fixtures(t)
	data, err := os.ReadFile(legacy)
	require.NoError(t, err)

	// Damage the second bus number so one record is skipped.
	lines := strings.Split(string(data), "\n")
	lines[4] = "   XX" + strings.TrimLeft(lines[4], " 0123456789")
	damaged := filepath.Join(t.TempDir(), "damaged.raw")
	require.NoError(t, os.WriteFile(damaged, []byte(strings.Join(lines, "\n")), 0644))

	received := make(chan webhook.Payload, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p webhook.Payload
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &p)
		received <- p
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	_, stderr, err := runRoot(t, "parse", "-q", "--webhook-url", server.URL, legacy, damaged)
	require.NoError(t, err)
	assert.Equal(t, 1, commands.ExitCode)
	assert.Contains(t, stderr, "sent (202")

	require.Len(t, received, 1)
	p := <-received
	assert.Equal(t, 2, p.Files)
	assert.Equal(t, 1, p.Skipped)
}
