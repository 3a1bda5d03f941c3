// Package detector guesses the text encoding of RAW case files.
package detector

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"sort"
)

// maxLineSize bounds a single sampled line.
const maxLineSize = 1024 * 1024

// DetectionResult holds the result of analyzing a case file.
type DetectionResult struct {
	Matches       []EncodingMatch // Encodings that read every non-ASCII line, best first
	SampledLines  int             // Number of lines sampled
	NonASCIILines int             // Number of sampled lines with bytes above 0x7F
	Note          string          // Remark about the certainty of the result
}

// EncodingMatch represents an encoding with its confidence score.
type EncodingMatch struct {
	Encoding   *TextEncoding
	Confidence float64 // 0.0 to 1.0 (share of non-ASCII lines accepted)
	MatchCount int     // Number of non-ASCII lines accepted
	SampleLine string  // First accepted non-ASCII line, decoded
}

// Detector analyzes case files to identify their encoding.
type Detector struct {
	encodings  []*TextEncoding
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 10000).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector with the default encodings.
func New(opts ...Option) *Detector {
	d := &Detector{
		encodings:  DefaultEncodings(),
		sampleSize: 10000,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples a case file and returns the candidate encodings.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes raw lines. Pure ASCII input matches UTF-8 only,
// since every candidate reads it the same way.
func (d *Detector) DetectFromLines(lines [][]byte) *DetectionResult {
	result := &DetectionResult{SampledLines: len(lines)}

	var nonASCII [][]byte
	for _, line := range lines {
		if !isASCII(line) {
			nonASCII = append(nonASCII, line)
		}
	}
	result.NonASCIILines = len(nonASCII)

	if len(nonASCII) == 0 {
		if len(lines) > 0 {
			result.Matches = []EncodingMatch{{Encoding: d.encodings[0], Confidence: 1}}
			result.Note = "All sampled lines are ASCII; every supported encoding reads them identically."
		}
		return result
	}

	for _, enc := range d.encodings {
		m := EncodingMatch{Encoding: enc}
		for _, line := range nonASCII {
			if !enc.Accepts(line) {
				continue
			}
			if m.MatchCount == 0 {
				m.SampleLine = enc.Decode(line)
			}
			m.MatchCount++
		}
		if m.MatchCount == 0 {
			continue
		}
		m.Confidence = float64(m.MatchCount) / float64(len(nonASCII))
		result.Matches = append(result.Matches, m)
	}

	// Candidates keep preference order on equal confidence.
	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].Confidence > result.Matches[j].Confidence
	})

	if len(result.Matches) > 1 && result.Matches[0].Confidence == result.Matches[1].Confidence {
		result.Note = "Several encodings read this file equally well. " +
			"Check the decoded sample lines to choose between them."
	}

	return result
}

func isASCII(line []byte) bool {
	for _, b := range line {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// sampleFile reads up to sampleSize non-blank lines from a file.
func (d *Detector) sampleFile(_ context.Context, path string) ([][]byte, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines [][]byte
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() && len(lines) < d.sampleSize {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) > 0 {
			lines = append(lines, bytes.Clone(line))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *EncodingMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one encoding matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
