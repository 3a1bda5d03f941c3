// Package source acquires RAW case bytes from disk: memory-mapped where the
// platform supports it and transcoded from legacy code pages on request.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Supported encoding names.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingISO88591    = "iso-8859-1"
)

var charmaps = map[string]*charmap.Charmap{
	EncodingWindows1252: charmap.Windows1252,
	EncodingISO88591:    charmap.ISO8859_1,
}

// Encodings lists the accepted encoding names.
func Encodings() []string {
	return []string{EncodingUTF8, EncodingWindows1252, EncodingISO88591}
}

// ValidEncoding reports whether name is an accepted encoding. Matching ignores
// case; an empty name means UTF-8.
func ValidEncoding(name string) bool {
	name = normalize(name)
	if name == EncodingUTF8 {
		return true
	}
	_, ok := charmaps[name]
	return ok
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "utf8":
		return EncodingUTF8
	case "cp1252":
		return EncodingWindows1252
	case "latin1", "latin-1":
		return EncodingISO88591
	}
	return name
}

// File is an opened case. Its bytes stay valid until Close.
type File struct {
	Path string

	// Mapped reports whether the bytes are a memory mapping of the file.
	Mapped bool

	data    []byte
	release func() error
}

// Bytes returns the case contents.
func (f *File) Bytes() []byte {
	return f.data
}

// Close releases the file contents. It is safe to call more than once.
func (f *File) Close() error {
	f.data = nil
	if f.release == nil {
		return nil
	}
	release := f.release
	f.release = nil
	return release()
}

type options struct {
	encoding string
	mmap     bool
}

// Option configures Open.
type Option func(*options)

// WithEncoding sets the encoding of the file. Non-UTF-8 files are transcoded
// into memory and never mapped.
func WithEncoding(name string) Option {
	return func(o *options) {
		o.encoding = name
	}
}

// WithMmap enables or disables memory mapping. It is enabled by default.
func WithMmap(on bool) Option {
	return func(o *options) {
		o.mmap = on
	}
}

// errNoMmap reports that the platform cannot map files.
var errNoMmap = errors.New("memory mapping not supported")

// Open reads a case file.
func Open(path string, opts ...Option) (*File, error) {
	o := options{encoding: EncodingUTF8, mmap: true}
	for _, opt := range opts {
		opt(&o)
	}
	enc := normalize(o.encoding)
	cm, ok := charmaps[enc]
	if !ok && enc != EncodingUTF8 {
		return nil, fmt.Errorf("unsupported encoding %q", o.encoding)
	}

	f, err := os.Open(path) // #nosec G304 -- path is user-provided by design
	if err != nil {
		return nil, fmt.Errorf("opening case file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading case file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("opening case file: %s is a directory", path)
	}

	file := &File{Path: path}
	if o.mmap && cm == nil && info.Size() > 0 {
		data, release, err := mapFile(f, int(info.Size()))
		if err == nil {
			file.data, file.release, file.Mapped = data, release, true
			return file, nil
		}
		if !errors.Is(err, errNoMmap) {
			return nil, fmt.Errorf("mapping case file: %w", err)
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided by design
	if err != nil {
		return nil, fmt.Errorf("reading case file: %w", err)
	}
	if cm != nil {
		data, err = cm.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", enc, err)
		}
	}
	file.data = data
	return file, nil
}

// InvalidLines counts lines that are not valid UTF-8. Such lines are skipped
// by the decoder; a high count usually means the encoding is wrong.
func InvalidLines(data []byte) int {
	n := 0
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		if !utf8.Valid(line) {
			n++
		}
	}
	return n
}
