package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"parse", "detect", "diagnose", "validate", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"log-level", "log-format"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		opts    LogOptions
		wantErr bool
	}{
		{"default", LogOptions{Level: "warn", Format: "text"}, false},
		{"debug json", LogOptions{Level: "debug", Format: "json"}, false},
		{"lower case", LogOptions{Level: "info"}, false},
		{"bad level", LogOptions{Level: "loud"}, true},
		{"bad format", LogOptions{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(&bytes.Buffer{}, &tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNewLogger_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, &LogOptions{Level: "info", Format: "json"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", "file", "case.raw")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "case.raw", entry["file"])
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"--log-level", "loud", "version"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "invalid log level")
}
