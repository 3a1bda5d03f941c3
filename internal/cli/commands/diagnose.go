package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pssraw/pkg/detector"
	"github.com/ccollicutt/pssraw/pkg/engine"
	"github.com/ccollicutt/pssraw/pkg/model"
	"github.com/ccollicutt/pssraw/pkg/parser"
	"github.com/ccollicutt/pssraw/pkg/source"
)

// Revisions whose column layouts are well known. Others still decode with the
// layout of their era.
const (
	knownMinRevision = 29
	knownMaxRevision = 36
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose         bool
	DefaultRevision int
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <raw-file>",
		Short: "Diagnose common problems in a RAW file",
		Long: `Diagnose common problems in a RAW case file.

This command checks a case file for problems that lose or default data:
- File existence and size
- Text encoding (bytes that are not valid UTF-8)
- Header recognition and revision
- Section markers missing at the end of the file
- Records skipped, fields defaulted and lines discarded per section

Example:
  pssraw diagnose case14.raw
  pssraw diagnose -v case14.raw  # verbose output`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")
	cmd.Flags().IntVar(&opts.DefaultRevision, "default-revision", model.DefaultRevision, "Revision assumed when the header has none")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, path string, opts *DiagnoseOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	results := []DiagnosticResult{}

	// 1. Check file existence
	result := checkFileExists(path)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 2. Check encoding
	encoding, result := checkEncoding(ctx, path)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	f, err := source.Open(path, source.WithEncoding(encoding), source.WithMmap(false))
	if err != nil {
		results = append(results, DiagnosticResult{
			Check:   "Read File",
			Status:  "error",
			Message: err.Error(),
		})
		printDiagnostics(w, results, opts)
		return nil
	}
	defer func() { _ = f.Close() }()

	layout := parser.Scan(parser.NewLines(f.Bytes()), opts.DefaultRevision)

	// 3. Check header and revision
	results = append(results, checkHeader(layout, opts))
	results = append(results, checkRevision(layout))

	// 4. Check section markers
	results = append(results, checkMarkers(layout))

	// 5. Check records per section
	c := engine.New(engine.WithDefaultRevision(opts.DefaultRevision)).Parse(f.Bytes())
	results = append(results, checkSections(c, opts)...)

	printDiagnostics(w, results, opts)
	return nil
}

func checkFileExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Case File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Case file not found: %s", path)
		result.Suggests = []string{"Check the file path is correct"}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access case file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		result.Suggests = []string{"Use 'pssraw parse <dir>' to decode every .raw file in a directory"}
		return result
	}
	if info.Size() == 0 {
		result.Status = "error"
		result.Message = "Case file is empty"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

// checkEncoding returns the encoding the rest of the checks read the file with.
func checkEncoding(ctx context.Context, path string) (string, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Encoding",
	}

	f, err := source.Open(path, source.WithEncoding(source.EncodingUTF8))
	if err != nil {
		result.Status = "error"
		result.Message = err.Error()
		return "", result
	}
	invalid := source.InvalidLines(f.Bytes())
	_ = f.Close()

	if invalid == 0 {
		result.Status = "ok"
		result.Message = "Valid UTF-8"
		return source.EncodingUTF8, result
	}

	result.Status = "warning"
	result.Message = fmt.Sprintf("%d line(s) are not valid UTF-8", invalid)

	detection, err := detector.New().DetectFromFile(ctx, path)
	if err != nil || !detection.HasMatch() {
		result.Suggests = []string{"Convert the file to UTF-8 before decoding"}
		return source.EncodingUTF8, result
	}

	best := detection.BestMatch()
	result.Details = append(result.Details, fmt.Sprintf("Sample: %s", truncate(best.SampleLine, 60)))
	if detection.Note != "" {
		result.Details = append(result.Details, detection.Note)
	}
	result.Suggests = []string{
		fmt.Sprintf("Decode with --encoding %s (%.0f%% of non-ASCII lines match)", best.Encoding.Name, best.Confidence*100),
	}
	return best.Encoding.Name, result
}

func checkHeader(layout *parser.Layout, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Header",
	}

	if layout.HeaderLine < 0 {
		result.Status = "warning"
		result.Message = "No header line recognized"
		result.Details = []string{
			fmt.Sprintf("Assumed revision %d, base %.1f MVA", opts.DefaultRevision, model.DefaultBaseMVA),
		}
		result.Suggests = []string{
			"The first data line should hold IC, SBASE, REV, XFRRAT, NXFRAT, BASFRQ",
			"Use --default-revision if the file is known to use another revision",
		}
		return result
	}

	h := layout.Header
	result.Status = "ok"
	result.Message = fmt.Sprintf("Line %d: revision %d, base %.1f MVA, %.0f Hz", layout.HeaderLine+1, h.Revision, h.BaseMVA, h.BaseFrequency)
	for i, t := range h.Titles {
		if t != "" {
			result.Details = append(result.Details, fmt.Sprintf("Title %d: %s", i+1, truncate(t, 60)))
		}
	}
	return result
}

func checkRevision(layout *parser.Layout) DiagnosticResult {
	rev := layout.Header.Revision
	era := layout.Era()
	result := DiagnosticResult{
		Check:   "Revision",
		Status:  "ok",
		Message: fmt.Sprintf("Revision %d uses the %s column layout", rev, era),
	}

	if rev < knownMinRevision || rev > knownMaxRevision {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Unusual revision %d, decoding with the %s column layout", rev, era)
		result.Suggests = []string{"Check the REV field of the header line"}
	}
	return result
}

func checkMarkers(layout *parser.Layout) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Section Markers",
	}

	expected := layout.ExpectedMarkers()
	if layout.Markers >= expected {
		result.Status = "ok"
		result.Message = fmt.Sprintf("Found all %d section markers", expected)
		return result
	}

	result.Status = "warning"
	result.Message = fmt.Sprintf("Found %d of %d section markers", layout.Markers, expected)
	for _, s := range layout.Sections {
		if s.Empty() && s.Start == layout.End && s.Kind.Decodable() {
			result.Details = append(result.Details, fmt.Sprintf("%s: not reached", s.Kind))
		}
	}
	result.Suggests = []string{"The file may be truncated; sections after the last marker are empty"}
	return result
}

func checkSections(c *model.Case, opts *DiagnoseOptions) []DiagnosticResult {
	results := []DiagnosticResult{}

	for _, d := range c.Diagnostics {
		result := DiagnosticResult{
			Check: fmt.Sprintf("Section: %s", d.Kind),
		}

		switch {
		case d.Skipped > 0:
			result.Status = "error"
			result.Message = fmt.Sprintf("%d of %d record(s) skipped", d.Skipped, d.Groups)
			result.Suggests = []string{"Skipped records lack a readable identifying field such as a bus number"}
		case d.MalformedFields > 0 || d.DiscardedLines > 0:
			result.Status = "warning"
			result.Message = fmt.Sprintf("%d record(s) decoded with losses", d.Decoded)
		default:
			if !opts.Verbose {
				continue
			}
			result.Status = "ok"
			result.Message = fmt.Sprintf("%d record(s) decoded", d.Decoded)
		}

		if d.MalformedFields > 0 {
			result.Details = append(result.Details, fmt.Sprintf("%d malformed field(s) defaulted", d.MalformedFields))
		}
		if d.DiscardedLines > 0 {
			result.Details = append(result.Details, fmt.Sprintf("%d line(s) discarded", d.DiscardedLines))
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		results = append(results, DiagnosticResult{
			Check:   "Sections",
			Status:  "ok",
			Message: fmt.Sprintf("%d record(s) decoded without losses", c.Records()),
		})
	}
	return results
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	_, _ = fmt.Fprintln(w, "=== pssraw Case Diagnostics ===")
	_, _ = fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		// Status icon
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		_, _ = fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		_, _ = fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				_, _ = fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			_, _ = fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		_, _ = fmt.Fprintln(w)
	}

	// Summary
	_, _ = fmt.Fprintln(w, "---")
	_, _ = fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		_, _ = fmt.Fprintln(w, "\nRecords were lost. Fix the errors above for a complete case.")
	} else if warnCount > 0 {
		_, _ = fmt.Fprintln(w, "\nCase is usable but has warnings.")
	} else {
		_, _ = fmt.Fprintln(w, "\nCase looks good!")
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
