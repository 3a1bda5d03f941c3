package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/ccollicutt/pssraw/pkg/model"
	"github.com/ccollicutt/pssraw/pkg/source"
)

// Default values for configuration.
const (
	DefaultWorkers = 0
	DefaultOutput  = "text"
)

// Environment variable names.
const (
	EnvWorkers  = "PSSRAW_WORKERS"
	EnvEncoding = "PSSRAW_ENCODING"
	EnvOutput   = "PSSRAW_OUTPUT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Workers:         DefaultWorkers,
		DefaultRevision: model.DefaultRevision,
		Encoding:        source.EncodingUTF8,
		Mmap:            true,
		Output:          DefaultOutput,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
// A PSSRAW_WORKERS value that is not an integer is ignored.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvWorkers); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv(EnvEncoding); v != "" {
		c.Encoding = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
}
