package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/pssraw/pkg/config"
	"github.com/ccollicutt/pssraw/pkg/model"
)

func TestNewDetectCommand(t *testing.T) {
	cmd := NewDetectCommand()

	assert.Equal(t, "detect <raw-file>", cmd.Use)
	for _, flag := range []string{"output", "sample", "default-revision", "write-config"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), flag)
	}
}

func TestDetectOptions_Defaults(t *testing.T) {
	cmd := NewDetectCommand()

	sample, err := cmd.Flags().GetInt("sample")
	require.NoError(t, err)
	assert.Equal(t, 10000, sample)

	rev, err := cmd.Flags().GetInt("default-revision")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultRevision, rev)
}

func TestRunDetect_Text(t *testing.T) {
	path := writeFile(t, t.TempDir(), "small.raw", smallCase)

	out, err := execute(t, NewDetectCommand(), path)
	require.NoError(t, err)

	for _, want := range []string{
		"=== RAW Case Detection ===",
		"Lines: 9",
		"Revision: 33 (legacy)",
		"Base: 100.0 MVA, 60 Hz",
		"Title 1: SMALL CASE",
		"Title 2: SECOND TITLE",
		"Encoding: utf-8",
		"Markers: 2 of 19",
		"WARNING: file ends before its last sections",
	} {
		assert.Contains(t, out, want)
	}
	assert.Regexp(t, `bus\s+3\s+5\s+2`, out)
	assert.NotContains(t, out, "switching_device")
}

func TestRunDetect_JSON(t *testing.T) {
	out, err := execute(t, NewDetectCommand(), "-o", "json", fixture("case14_v35.raw"))
	require.NoError(t, err)

	var det Detection
	require.NoError(t, json.Unmarshal([]byte(out), &det))
	assert.Equal(t, 35, det.Header.Revision)
	assert.Equal(t, "modern", det.Header.Era)
	assert.Equal(t, "utf-8", det.Guess)
	assert.Len(t, det.Sections, 21)
	assert.Equal(t, 21, det.Expected)
	assert.Equal(t, det.Expected, det.Markers)
	assert.Equal(t, "switching_device", det.Sections[6].Kind)

	for i := 1; i < len(det.Sections); i++ {
		assert.GreaterOrEqual(t, det.Sections[i].Start, det.Sections[i-1].End, det.Sections[i].Kind)
	}
}

func TestRunDetect_CompleteLegacyCase(t *testing.T) {
	out, err := execute(t, NewDetectCommand(), fixture("case14_v33.raw"))
	require.NoError(t, err)

	assert.Contains(t, out, "Markers: 19 of 19")
	assert.NotContains(t, out, "WARNING")
}

func TestRunDetect_LegacyEncoding(t *testing.T) {
	content := strings.Replace(smallCase, "SECOND TITLE", "CAF\xc9 TITLE", 1)
	path := writeFile(t, t.TempDir(), "cp1252.raw", content)

	out, err := execute(t, NewDetectCommand(), "-o", "json", path)
	require.NoError(t, err)

	var det Detection
	require.NoError(t, json.Unmarshal([]byte(out), &det))
	assert.Equal(t, "windows-1252", det.Guess)
	assert.Equal(t, "CAFÉ TITLE", det.Header.Titles[1])
	assert.Contains(t, det.Note, "Several encodings")
}

func TestRunDetect_MissingFile(t *testing.T) {
	_, err := execute(t, NewDetectCommand(), "/nonexistent/case.raw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "case file not found")
}

func TestRunDetect_UnknownOutput(t *testing.T) {
	path := writeFile(t, t.TempDir(), "small.raw", smallCase)
	_, err := execute(t, NewDetectCommand(), "-o", "xml", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRunDetect_WriteConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "small.raw", smallCase)
	configPath := filepath.Join(dir, "pssraw.yaml")

	out, err := execute(t, NewDetectCommand(), "--write-config", configPath, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote starter config to: "+configPath)

	cfg, err := config.Load(context.Background(), configPath)
	require.NoError(t, err)
	assert.Equal(t, 33, cfg.DefaultRevision)
	assert.Equal(t, "utf-8", cfg.Encoding)
	assert.True(t, cfg.Mmap)
	assert.Empty(t, cfg.Kinds)
}

func TestWriteStarterConfig_NoOverwrite(t *testing.T) {
	configPath := writeFile(t, t.TempDir(), "existing.yaml", "# keep me\n")

	var buf strings.Builder
	err := writeStarterConfig(&buf, &Detection{File: "case.raw"}, configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "will not overwrite")

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "# keep me\n", string(data))
}

func TestGenerateStarterConfig(t *testing.T) {
	det := &Detection{File: "case.raw", Guess: "iso-8859-1"}
	det.Header.Revision = 35
	det.Header.Era = "modern"

	cfg := generateStarterConfig(det)

	assert.True(t, strings.HasPrefix(cfg, "# pssraw configuration"))
	assert.Contains(t, cfg, "# Detected revision: 35 (modern)")
	assert.Contains(t, cfg, "default_revision: 35")
	assert.Contains(t, cfg, "encoding: iso-8859-1")
	assert.Contains(t, cfg, "# kinds:")
}
