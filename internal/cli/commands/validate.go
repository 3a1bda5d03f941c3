package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pssraw/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a pssraw configuration file without decoding anything.

Checks:
  - YAML syntax
  - Worker count and default revision ranges
  - Encoding and output format names
  - Section kind names

Environment overrides (PSSRAW_WORKERS, PSSRAW_ENCODING, PSSRAW_OUTPUT) are
applied before validation.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	workers := "all CPUs"
	if cfg.Workers > 0 {
		workers = fmt.Sprintf("%d", cfg.Workers)
	}
	kinds := "all"
	if len(cfg.Kinds) > 0 {
		names := make([]string, len(cfg.SectionKinds()))
		for i, k := range cfg.SectionKinds() {
			names[i] = k.String()
		}
		kinds = strings.Join(names, ", ")
	}

	_, _ = fmt.Fprintf(w, "\nConfiguration valid!\n")
	_, _ = fmt.Fprintf(w, "  Workers:          %s\n", workers)
	_, _ = fmt.Fprintf(w, "  Default revision: %d\n", cfg.DefaultRevision)
	_, _ = fmt.Fprintf(w, "  Encoding:         %s\n", cfg.Encoding)
	_, _ = fmt.Fprintf(w, "  Memory mapping:   %t\n", cfg.Mmap)
	_, _ = fmt.Fprintf(w, "  Output:           %s\n", cfg.Output)
	_, _ = fmt.Fprintf(w, "  Kinds:            %s\n", kinds)

	return nil
}
