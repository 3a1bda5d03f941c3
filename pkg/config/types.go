// Package config provides configuration loading and validation for pssraw.
package config

import "github.com/ccollicutt/pssraw/pkg/model"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Workers bounds concurrent record decoding. Zero selects GOMAXPROCS.
	Workers int `yaml:"workers"`

	// DefaultRevision is assumed when a case header carries no revision.
	DefaultRevision int `yaml:"default_revision"`

	// Encoding is the text encoding of input files.
	Encoding string `yaml:"encoding"`

	// Mmap memory-maps input files where the platform supports it.
	Mmap bool `yaml:"mmap"`

	// Output is the report format: text, json or yaml.
	Output string `yaml:"output"`

	// Kinds restricts decoding to the named section kinds. Empty means all.
	Kinds []string `yaml:"kinds,omitempty"`

	// kinds holds the parsed Kinds (populated during validation).
	kinds []model.SectionKind
}

// SectionKinds returns the parsed kind filter, or nil when every kind is decoded.
func (c *Config) SectionKinds() []model.SectionKind {
	return c.kinds
}
