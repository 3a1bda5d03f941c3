package output

import (
	"context"
	"fmt"
	"io"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "pssraw: %s rev %d, %d records, %d skipped, %d malformed fields\n",
		report.Metadata.Source,
		report.Header.Revision,
		report.Summary.Records,
		report.Summary.Skipped,
		report.Summary.MalformedFields)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== pssraw Case Report ===")
	if report.Metadata.Source != "" {
		fmt.Fprintf(w, "File: %s\n", report.Metadata.Source)
	}
	fmt.Fprintf(w, "Revision: %d (%s), base %.1f MVA, %.0f Hz\n",
		report.Header.Revision, report.Header.Era,
		report.Header.BaseMVA, report.Header.BaseFrequency)
	for _, title := range report.Header.Titles {
		if title != "" {
			fmt.Fprintf(w, "  %s\n", title)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-22s %8s %8s %10s %10s\n", "SECTION", "RECORDS", "SKIPPED", "MALFORMED", "DISCARDED")
	for _, k := range report.Kinds {
		if k.Records == 0 && !k.HasIssues() && !f.opts.Verbose {
			continue
		}
		fmt.Fprintf(w, "%-22s %8d %8d %10d %10d\n",
			k.Kind, k.Records, k.Skipped, k.MalformedFields, k.DiscardedLines)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d records, %d skipped, %d malformed fields, %d discarded lines\n",
		report.Summary.Records,
		report.Summary.Skipped,
		report.Summary.MalformedFields,
		report.Summary.DiscardedLines)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Lines processed: %d\n", report.Summary.LinesProcessed)
		fmt.Fprintf(w, "Workers: %d\n", report.Metadata.Workers)
		fmt.Fprintf(w, "Run: %s\n", report.Metadata.RunID)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}
