package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pssraw/pkg/config"
	"github.com/ccollicutt/pssraw/pkg/detector"
	"github.com/ccollicutt/pssraw/pkg/model"
	"github.com/ccollicutt/pssraw/pkg/output"
	"github.com/ccollicutt/pssraw/pkg/parser"
	"github.com/ccollicutt/pssraw/pkg/source"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output          string
	SampleSize      int
	DefaultRevision int
	WriteConfig     string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <raw-file>",
		Short: "Detect the revision, encoding and section layout of a RAW file",
		Long: `Inspect a RAW case file without decoding its records.

Reports the header (revision, era, base MVA and frequency, titles), the
line range of every section, how many section markers were found against
how many a complete file of that revision holds, and the most likely text
encoding.

Optionally generates a starter config file with --write-config.

Example:
  pssraw detect case14.raw
  pssraw detect -o json case14.raw
  pssraw detect --write-config pssraw.yaml case14.raw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 10000, "Number of lines sampled for encoding detection")
	cmd.Flags().IntVar(&opts.DefaultRevision, "default-revision", model.DefaultRevision, "Revision assumed when the header has none")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

// Detection is everything detect learns about a file.
type Detection struct {
	File     string                    `json:"file"`
	Header   output.HeaderInfo         `json:"header"`
	Lines    int                       `json:"lines"`
	Sections []DetectedSection         `json:"sections"`
	Markers  int                       `json:"markers"`
	Expected int                       `json:"expected_markers"`
	Encoding *detector.DetectionResult `json:"-"`
	Guess    string                    `json:"encoding"`
	Note     string                    `json:"encoding_note,omitempty"`
}

// DetectedSection is one located section.
type DetectedSection struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Lines int    `json:"lines"`
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	rawFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(rawFile); os.IsNotExist(err) {
		return fmt.Errorf("case file not found: %s", rawFile)
	}

	det, err := detect(ctx, rawFile, opts)
	if err != nil {
		return err
	}

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(cmd.OutOrStdout(), det, opts.WriteConfig); err != nil {
			return err
		}
	}

	switch opts.Output {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(det)
	case "text":
		outputDetectText(cmd.OutOrStdout(), det)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

// detect guesses the encoding first so the layout scan sees decoded text.
func detect(ctx context.Context, path string, opts *DetectOptions) (*Detection, error) {
	d := detector.New(detector.WithSampleSize(opts.SampleSize))
	result, err := d.DetectFromFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("detection failed: %w", err)
	}

	det := &Detection{
		File:     path,
		Encoding: result,
		Guess:    source.EncodingUTF8,
		Note:     result.Note,
	}
	if best := result.BestMatch(); best != nil {
		det.Guess = best.Encoding.Name
	}

	f, err := source.Open(path, source.WithEncoding(det.Guess), source.WithMmap(false))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	lines := parser.NewLines(f.Bytes())
	layout := parser.Scan(lines, opts.DefaultRevision)

	det.Header = output.HeaderInfo{
		Revision:      layout.Header.Revision,
		Era:           layout.Era().String(),
		BaseMVA:       layout.Header.BaseMVA,
		BaseFrequency: layout.Header.BaseFrequency,
		Titles:        layout.Header.Titles,
	}
	det.Lines = lines.Len()
	det.Markers = layout.Markers
	det.Expected = layout.ExpectedMarkers()
	det.Sections = make([]DetectedSection, 0, len(layout.Sections))
	for _, s := range layout.Sections {
		det.Sections = append(det.Sections, DetectedSection{
			Kind:  s.Kind.String(),
			Start: s.Start,
			End:   s.End,
			Lines: s.Len(),
		})
	}
	return det, nil
}

func outputDetectText(w io.Writer, det *Detection) {
	_, _ = fmt.Fprintln(w, "=== RAW Case Detection ===")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "File: %s\n", det.File)
	_, _ = fmt.Fprintf(w, "Lines: %d\n", det.Lines)
	_, _ = fmt.Fprintf(w, "Revision: %d (%s)\n", det.Header.Revision, det.Header.Era)
	_, _ = fmt.Fprintf(w, "Base: %.1f MVA, %.0f Hz\n", det.Header.BaseMVA, det.Header.BaseFrequency)
	for i, t := range det.Header.Titles {
		if t != "" {
			_, _ = fmt.Fprintf(w, "Title %d: %s\n", i+1, t)
		}
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "Encoding: %s\n", det.Guess)
	if det.Note != "" {
		_, _ = fmt.Fprintf(w, "Note: %s\n", det.Note)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "%-22s %8s %8s %8s\n", "SECTION", "START", "END", "LINES")
	for _, s := range det.Sections {
		_, _ = fmt.Fprintf(w, "%-22s %8d %8d %8d\n", s.Kind, s.Start, s.End, s.Lines)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "Markers: %d of %d\n", det.Markers, det.Expected)
	if det.Markers < det.Expected {
		_, _ = fmt.Fprintln(w, "WARNING: file ends before its last sections; they are empty.")
	}
}

// writeStarterConfig generates a starter config file from a detection.
func writeStarterConfig(w io.Writer, det *Detection, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, []byte(generateStarterConfig(det)), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig creates a YAML config template.
func generateStarterConfig(det *Detection) string {
	return fmt.Sprintf(`# pssraw configuration
# Generated by: pssraw detect %s
# Detected revision: %d (%s)

# Concurrent decode tasks. 0 uses every CPU.
workers: %d

# Revision assumed for files whose header carries none.
default_revision: %d

# Text encoding of input files (utf-8, windows-1252, iso-8859-1).
encoding: %s

# Memory-map input files where supported.
mmap: true

# Report format (text, json, yaml).
output: %s

# Decode only these section kinds. Leave empty for all.
# kinds:
#   - bus
#   - branch
#   - transformer
`, det.File, det.Header.Revision, det.Header.Era,
		config.DefaultWorkers,
		det.Header.Revision,
		det.Guess,
		config.DefaultOutput)
}
