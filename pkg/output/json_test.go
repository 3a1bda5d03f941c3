package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewJSONFormatter() returned nil")
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := createTestReport()

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.Summary.Records != 19 {
		t.Errorf("Records = %d, want 19", parsed.Summary.Records)
	}
	if len(parsed.Kinds) != 3 {
		t.Errorf("Kinds = %d, want 3", len(parsed.Kinds))
	}
	if parsed.Metadata.RunID != "run-1" {
		t.Errorf("RunID = %q, want run-1", parsed.Metadata.RunID)
	}
}

func TestJSONFormatter_Format_FieldNames(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	for _, key := range []string{"summary", "header", "kinds", "metadata"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})
	report := createTestReport()

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Summary
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", parsed.Skipped)
	}
}

func TestJSONFormatter_Format_KeepsCaseText(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := createTestReport()
	report.Header.Titles = [2]string{"PEAK <2026> & LIGHT", ""}

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(buf.String(), `"PEAK <2026> & LIGHT"`) {
		t.Errorf("title was escaped:\n%s", buf.String())
	}
}

func TestDocument(t *testing.T) {
	report := createTestReport()

	if got, ok := document(report, FormatOptions{}).(*Report); !ok || got != report {
		t.Errorf("document() = %T, want the report", document(report, FormatOptions{}))
	}
	if _, ok := document(report, FormatOptions{Quiet: true, Verbose: true}).(Summary); !ok {
		t.Error("document() with Quiet should be the summary")
	}
}
