// Package output provides report generation and formatting for decoded cases.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/pssraw/pkg/model"
)

// Report is the summary of one decoded case.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary" yaml:"summary"`

	// Header is the case-wide metadata.
	Header HeaderInfo `json:"header" yaml:"header"`

	// Kinds holds one entry per section in file order.
	Kinds []KindResult `json:"kinds" yaml:"kinds"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// Records is the number of records decoded across all kinds.
	Records int `json:"records" yaml:"records"`

	// Skipped is the number of records rejected for a missing identifying field.
	Skipped int `json:"skipped" yaml:"skipped"`

	// MalformedFields counts tokens that failed to parse and were defaulted.
	MalformedFields int `json:"malformed_fields" yaml:"malformed_fields"`

	// DiscardedLines counts lines that were not valid text or ended a
	// record early.
	DiscardedLines int `json:"discarded_lines" yaml:"discarded_lines"`

	// KindsWithIssues is the number of kinds with non-zero diagnostics.
	KindsWithIssues int `json:"kinds_with_issues" yaml:"kinds_with_issues"`

	// LinesProcessed is the number of lines in the case.
	LinesProcessed int `json:"lines_processed" yaml:"lines_processed"`
}

// HeaderInfo is the case header as reported.
type HeaderInfo struct {
	Revision      int       `json:"revision" yaml:"revision"`
	Era           string    `json:"era" yaml:"era"`
	BaseMVA       float64   `json:"base_mva" yaml:"base_mva"`
	BaseFrequency float64   `json:"base_frequency" yaml:"base_frequency"`
	Titles        [2]string `json:"titles" yaml:"titles"`
}

// KindResult reports one section.
type KindResult struct {
	Kind            string `json:"kind" yaml:"kind"`
	Start           int    `json:"start" yaml:"start"`
	End             int    `json:"end" yaml:"end"`
	Records         int    `json:"records" yaml:"records"`
	Skipped         int    `json:"skipped" yaml:"skipped"`
	MalformedFields int    `json:"malformed_fields" yaml:"malformed_fields"`
	DiscardedLines  int    `json:"discarded_lines" yaml:"discarded_lines"`
}

// HasIssues reports whether anything in the section was skipped, defaulted
// from a malformed token or discarded.
func (k KindResult) HasIssues() bool {
	return k.Skipped > 0 || k.MalformedFields > 0 || k.DiscardedLines > 0
}

// Metadata provides context about the run.
type Metadata struct {
	// RunID identifies the run across reports of several files.
	RunID string `json:"run_id" yaml:"run_id"`

	// Source is the path of the decoded file.
	Source string `json:"source" yaml:"source"`

	// ConfigFile is the path to the configuration file used, if any.
	ConfigFile string `json:"config_file,omitempty" yaml:"config_file,omitempty"`

	// Workers is the decode concurrency bound.
	Workers int `json:"workers" yaml:"workers"`

	// ParsedAt is when decoding finished.
	ParsedAt time.Time `json:"parsed_at" yaml:"parsed_at"`

	// Duration is how long decoding took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// NewReport creates a Report from a decoded case. A missing RunID is filled in.
func NewReport(c *model.Case, meta Metadata) *Report {
	if meta.RunID == "" {
		meta.RunID = NewRunID()
	}
	report := &Report{
		Header: HeaderInfo{
			Revision:      c.Header.Revision,
			Era:           c.Header.Era().String(),
			BaseMVA:       c.Header.BaseMVA,
			BaseFrequency: c.Header.BaseFrequency,
			Titles:        c.Header.Titles,
		},
		Kinds:    make([]KindResult, 0, len(c.Sections)),
		Metadata: meta,
	}
	report.Summary.LinesProcessed = c.Lines

	for _, sec := range c.Sections {
		if !sec.Kind.Decodable() {
			continue
		}
		d := c.DiagnosticsFor(sec.Kind)
		k := KindResult{
			Kind:            sec.Kind.String(),
			Start:           sec.Start,
			End:             sec.End,
			Records:         c.Count(sec.Kind),
			Skipped:         d.Skipped,
			MalformedFields: d.MalformedFields,
			DiscardedLines:  d.DiscardedLines,
		}
		report.Kinds = append(report.Kinds, k)

		report.Summary.Records += k.Records
		report.Summary.Skipped += k.Skipped
		report.Summary.MalformedFields += k.MalformedFields
		report.Summary.DiscardedLines += k.DiscardedLines
		if k.HasIssues() {
			report.Summary.KindsWithIssues++
		}
	}

	return report
}

// HasIssues returns true if any record was skipped.
func (r *Report) HasIssues() bool {
	return r.Summary.Skipped > 0
}
