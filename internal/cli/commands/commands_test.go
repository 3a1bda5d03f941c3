package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// smallCase is a legacy case with two buses and a load, ended early by Q.
const smallCase = `0, 100.00, 33, 0, 1, 60.00     / PSS(R)E-33 RAW created by test
SMALL CASE
SECOND TITLE
1,'ONE',138.0,3,1,1,1,1.06,0.0,1.1,0.9,1.1,0.9
2,'TWO',138.0,2,1,1,1,1.04,-4.98,1.1,0.9,1.1,0.9
0 / END OF BUS DATA, BEGIN LOAD DATA
2,'1',1,1,1,21.7,12.7,0,0,0,0,1,1,0
0 / END OF LOAD DATA, BEGIN FIXED SHUNT DATA
Q
`

// badBusCase has a bus record without a readable bus number.
const badBusCase = `0, 100.00, 33, 0, 1, 60.00
SMALL CASE
SECOND TITLE
1,'ONE',138.0,3,1,1,1,1.06,0.0,1.1,0.9,1.1,0.9
abc,'BAD',138.0,1,1,1,1,1.0,0.0,1.1,0.9,1.1,0.9
2,'TWO',138.0,2,1,1,1,1.04,-4.98,1.1,0.9,1.1,0.9
0 / END OF BUS DATA
Q
`

// fixture returns a complete case from the engine test data.
func fixture(name string) string {
	return filepath.Join("..", "..", "..", "pkg", "engine", "testdata", name)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// execute runs a command with args and returns everything it printed.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func resetExitCode(t *testing.T) {
	t.Helper()
	ExitCode = 0
	t.Cleanup(func() { ExitCode = 0 })
}

func TestNewParseCommand(t *testing.T) {
	cmd := NewParseCommand()

	if cmd.Use != "parse <raw-file|dir|glob>..." {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	flags := []string{"config", "output", "verbose", "quiet", "workers", "kind",
		"default-revision", "encoding", "no-mmap", "webhook-url", "webhook-token", "webhook-trigger"}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	if cmd.Use != "validate <config-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	if !strings.Contains(cmd.Long, "Validate") {
		t.Error("Missing description in Long")
	}
}

func TestNewVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand())
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "pssraw dev\n" {
		t.Errorf("Unexpected output: %q", out)
	}
}

func TestRunValidate_Success(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeFile(t, tmpDir, "pssraw.yaml", `workers: 4
default_revision: 34
encoding: windows-1252
mmap: false
output: json
kinds:
  - bus
  - switched-shunt
`)

	out, err := execute(t, NewValidateCommand(), configPath)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	for _, want := range []string{
		"Configuration valid!",
		"Workers:          4",
		"Default revision: 34",
		"Encoding:         windows-1252",
		"Memory mapping:   false",
		"Output:           json",
		"Kinds:            bus, switched_shunt",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestRunValidate_Defaults(t *testing.T) {
	configPath := writeFile(t, t.TempDir(), "pssraw.yaml", "{}\n")

	out, err := execute(t, NewValidateCommand(), configPath)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "Workers:          all CPUs") {
		t.Errorf("Expected default workers in output:\n%s", out)
	}
	if !strings.Contains(out, "Kinds:            all") {
		t.Errorf("Expected all kinds in output:\n%s", out)
	}
}

func TestRunValidate_EnvironmentOverride(t *testing.T) {
	t.Setenv("PSSRAW_WORKERS", "3")
	configPath := writeFile(t, t.TempDir(), "pssraw.yaml", "workers: 8\n")

	out, err := execute(t, NewValidateCommand(), configPath)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "Workers:          3") {
		t.Errorf("Expected environment override in output:\n%s", out)
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "workers: [\n", "parsing config file"},
		{"negative workers", "workers: -1\n", "workers"},
		{"unknown kind", "kinds: [substation]\n", "unknown section kind"},
		{"unknown encoding", "encoding: ebcdic\n", "encoding"},
		{"unknown output", "output: xml\n", "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeFile(t, t.TempDir(), "pssraw.yaml", tt.content)
			_, err := execute(t, NewValidateCommand(), configPath)
			if err == nil {
				t.Fatal("Expected error for invalid config")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	_, err := execute(t, NewValidateCommand(), "/nonexistent/pssraw.yaml")
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
