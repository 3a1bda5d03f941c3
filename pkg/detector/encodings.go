package detector

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ccollicutt/pssraw/pkg/source"
)

// TextEncoding is a candidate encoding for RAW files.
type TextEncoding struct {
	Name        string // Name accepted by --encoding and the config file
	Description string

	// Accepts reports whether a line containing non-ASCII bytes reads as text
	// in this encoding.
	Accepts func(line []byte) bool

	// Decode converts a line to UTF-8 for display.
	Decode func(line []byte) string
}

// undefined1252 are the byte values Windows-1252 leaves unassigned.
var undefined1252 = [256]bool{0x81: true, 0x8D: true, 0x8F: true, 0x90: true, 0x9D: true}

// DefaultEncodings returns the built-in candidates in order of preference.
func DefaultEncodings() []*TextEncoding {
	return []*TextEncoding{
		{
			Name:        source.EncodingUTF8,
			Description: "UTF-8 (default)",
			Accepts:     utf8.Valid,
			Decode:      func(line []byte) string { return string(line) },
		},
		{
			Name:        source.EncodingWindows1252,
			Description: "Windows-1252 (Western European code page)",
			Accepts: func(line []byte) bool {
				if utf8.Valid(line) {
					return false
				}
				for _, b := range line {
					if undefined1252[b] {
						return false
					}
				}
				return true
			},
			Decode: decodeWith(charmap.Windows1252),
		},
		{
			Name:        source.EncodingISO88591,
			Description: "ISO-8859-1 (Latin-1)",
			Accepts: func(line []byte) bool {
				if utf8.Valid(line) {
					return false
				}
				for _, b := range line {
					if b >= 0x80 && b <= 0x9F {
						return false
					}
				}
				return true
			},
			Decode: decodeWith(charmap.ISO8859_1),
		},
	}
}

func decodeWith(cm *charmap.Charmap) func([]byte) string {
	return func(line []byte) string {
		out, err := cm.NewDecoder().Bytes(line)
		if err != nil {
			return string(line)
		}
		return string(out)
	}
}
