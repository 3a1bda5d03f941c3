package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/pssraw/pkg/model"
	"github.com/ccollicutt/pssraw/pkg/source"
)

// Revision bounds accepted for default_revision.
const (
	MinRevision = 1
	MaxRevision = 99
)

// Outputs lists the accepted report formats.
var Outputs = []string{"text", "json", "yaml"}

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it is set and otherwise returns the defaults
// with environment overrides applied.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}
	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating environment: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and parses the kind filter.
func Validate(cfg *Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("workers: must be >= 0, got %d", cfg.Workers)
	}

	if cfg.DefaultRevision < MinRevision || cfg.DefaultRevision > MaxRevision {
		return fmt.Errorf("default_revision: must be between %d and %d, got %d",
			MinRevision, MaxRevision, cfg.DefaultRevision)
	}

	if !source.ValidEncoding(cfg.Encoding) {
		return fmt.Errorf("encoding: invalid value %q (must be %s)",
			cfg.Encoding, strings.Join(source.Encodings(), ", "))
	}

	if err := validateOutput(cfg.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	kinds, err := ParseKinds(cfg.Kinds)
	if err != nil {
		return fmt.Errorf("kinds: %w", err)
	}
	cfg.kinds = kinds

	return nil
}

func validateOutput(name string) error {
	if name == "" {
		return errors.New("is required")
	}
	for _, o := range Outputs {
		if name == o {
			return nil
		}
	}
	return fmt.Errorf("invalid value %q (must be %s)", name, strings.Join(Outputs, ", "))
}

// ParseKinds resolves kind names. Only kinds that carry records are accepted.
func ParseKinds(names []string) ([]model.SectionKind, error) {
	if len(names) == 0 {
		return nil, nil
	}
	kinds := make([]model.SectionKind, 0, len(names))
	for _, name := range names {
		k, ok := model.ParseKind(name)
		if !ok || !k.Decodable() {
			return nil, fmt.Errorf("unknown section kind %q", name)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
